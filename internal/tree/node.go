package tree

import (
	"fmt"
	"strings"
)

// Node is the in-memory form of one resolved descriptor file. Nodes are
// shared references: a node needed by several parents is the same instance,
// owned by the builder's cache for the duration of one build.
type Node struct {
	// Path is the canonical absolute path of the descriptor file. It is
	// unique within one build.
	Path string
	// Src holds the node's resolved source file paths, in document order.
	Src []string
	// Includes holds the node's resolved include directories, in document order.
	Includes []string
	// Needs holds the node's dependencies, in document order.
	Needs []*Node
}

// Render returns a human-readable outline of the node: its own path line
// followed by the recursive rendering of each needs entry, indented two
// extra spaces per depth level. Nodes reachable through several branches
// are rendered once per reference.
func (n *Node) Render() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s- %s\n", strings.Repeat("  ", depth), n.Path)
	for _, need := range n.Needs {
		need.render(sb, depth+1)
	}
}
