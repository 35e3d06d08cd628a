package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
	"github.com/riscy-lib/rbuild/internal/descriptor"
	"github.com/riscy-lib/rbuild/internal/pathres"
)

// Builder performs one recursive tree construction. It memoizes nodes by
// canonical path so a descriptor referenced through several branches is
// read and represented exactly once, and threads the live ancestor chain
// through the recursion to detect dependency loops. A Builder is scoped to
// a single Build call and is not safe for concurrent use.
type Builder struct {
	nodes map[string]*Node
}

// NewBuilder returns a Builder with an empty node cache.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*Node)}
}

// Build resolves each root descriptor and its transitive dependencies into
// a Tree, with roots in input order. A root that is missing, unreadable or
// structurally broken fails the whole build; unusable dependencies behind
// needs edges are dropped per the policy in load.
func (b *Builder) Build(ctx context.Context, roots ...string) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)

	t := &Tree{}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("tree: resolve root %s: %w", root, err)
		}

		if _, err := os.Stat(abs); err != nil {
			logger.Error("Root build file does not exist.", "path", root)
		}

		node, err := b.load(ctx, abs, nil)
		if err != nil {
			return nil, fmt.Errorf("tree: root %s: %w", root, err)
		}
		t.Roots = append(t.Roots, node)
	}
	return t, nil
}

// load is the recursive core. ancestors holds the chain of descriptors
// currently being loaded, nearest last; each frame appends its own path for
// the duration of its recursive calls only, so sibling subtrees never see
// each other's entries.
func (b *Builder) load(ctx context.Context, path string, ancestors []string) (*Node, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDescriptor, path)
		}
		return nil, fmt.Errorf("tree: stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	// The cache is consulted before the loop check so a diamond reference
	// to an already-built descriptor is served from cache rather than
	// misreported as a loop.
	if node, ok := b.nodes[path]; ok {
		return node, nil
	}

	if slices.Contains(ancestors, path) {
		return nil, fmt.Errorf("%w: %s referenced from %s",
			ErrDependencyLoop, path, ancestors[len(ancestors)-1])
	}

	file, err := descriptor.Load(path)
	if err != nil {
		return nil, err
	}

	node := &Node{Path: path}
	if file.Empty {
		logger.Warn("Build descriptor is empty.", "path", path)
		b.nodes[path] = node
		return node, nil
	}

	dir := filepath.Dir(path)
	for _, src := range file.Src {
		node.Src = append(node.Src, pathres.Resolve(src, dir))
	}
	for _, inc := range file.Include {
		node.Includes = append(node.Includes, pathres.Resolve(inc, dir))
	}

	for _, need := range file.Needs {
		needPath := pathres.Resolve(need, dir)
		child, err := b.load(ctx, needPath, append(ancestors, path))
		if err != nil {
			if droppable(err) {
				logger.Warn("Dropping unusable dependency.",
					"path", needPath, "from", path, "reason", err)
				continue
			}
			return nil, err
		}
		node.Needs = append(node.Needs, child)
	}

	b.nodes[path] = node
	return node, nil
}
