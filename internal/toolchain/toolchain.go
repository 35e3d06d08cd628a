package toolchain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
	"github.com/riscy-lib/rbuild/internal/executil"
	"github.com/riscy-lib/rbuild/internal/project"
	"github.com/riscy-lib/rbuild/internal/tree"
)

// Runner drives the external compile and elaboration commands over a built
// dependency tree.
type Runner struct {
	cfg *project.Config
}

// New returns a Runner using the given project configuration.
func New(cfg *project.Config) *Runner {
	return &Runner{cfg: cfg}
}

// includeDirs aggregates the include directories of every node, first
// occurrence first, and records the result on the tree for later phases.
func (r *Runner) includeDirs(t *tree.Tree) []string {
	if t.Includes != nil {
		return t.Includes
	}

	seen := make(map[string]bool)
	dirs := []string{}
	for node := range t.Traverse(true) {
		for _, inc := range node.Includes {
			if !seen[inc] {
				seen[inc] = true
				dirs = append(dirs, inc)
			}
		}
	}
	t.Includes = dirs
	return dirs
}

// IncludeArgs renders the tree's aggregate include directories as repeated
// -i arguments, or an empty string when there are none.
func (r *Runner) IncludeArgs(t *tree.Tree) string {
	dirs := r.includeDirs(t)
	if len(dirs) == 0 {
		return ""
	}
	return "-i " + strings.Join(dirs, " -i ")
}

// Parse compiles every source file in the tree, walking nodes in
// dependency order. A source that fails to compile is reported and the
// remaining sources are still attempted; any failure fails the phase.
func (r *Runner) Parse(ctx context.Context, t *tree.Tree) error {
	logger := ctxlog.FromContext(ctx)
	includes := r.IncludeArgs(t)

	ok := true
	for node := range t.Traverse(true) {
		for _, src := range node.Src {
			fields := []string{r.compileCmd(src)}
			if includes != "" {
				fields = append(fields, includes)
			}
			fields = append(fields, src)

			code, err := executil.Run(ctx, strings.Join(fields, " "))
			if err != nil {
				return err
			}
			if code != 0 {
				logger.Error("Error parsing source.", "src", src, "exit_code", code)
				ok = false
			}
		}
	}

	if !ok {
		return errors.New("toolchain: stopping due to parsing errors")
	}
	return nil
}

// compileCmd picks the compiler invocation for one source file by
// extension, appending the UVM library flag for sources under the project
// root.
func (r *Runner) compileCmd(src string) string {
	cmd := r.cfg.Toolchain.VHDLCmd
	switch filepath.Ext(src) {
	case ".sv", ".v":
		cmd = r.cfg.Toolchain.VerilogCmd
	}
	if r.underRoot(src) && r.cfg.Toolchain.UVMLib != "" {
		cmd += " " + r.cfg.Toolchain.UVMLib
	}
	return cmd
}

func (r *Runner) underRoot(src string) bool {
	if r.cfg.Root == "" {
		return false
	}
	rel, err := filepath.Rel(r.cfg.Root, src)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, "../")
}

// Elaborate runs the single elaboration command for the configured top
// unit, with the tree's include directories and one -d flag per define.
func (r *Runner) Elaborate(ctx context.Context, t *tree.Tree) error {
	fields := []string{r.cfg.Toolchain.ElabCmd, r.cfg.Top}
	if includes := r.IncludeArgs(t); includes != "" {
		fields = append(fields, includes)
	}
	if r.cfg.Toolchain.UVMLib != "" {
		fields = append(fields, r.cfg.Toolchain.UVMLib)
	}
	fields = append(fields, "--debug", "all", "-O0")
	for _, define := range r.cfg.Defines {
		fields = append(fields, "-d", define)
	}

	code, err := executil.Run(ctx, strings.Join(fields, " "))
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New("toolchain: error performing elaboration")
	}
	return nil
}
