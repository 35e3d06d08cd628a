package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
	"github.com/riscy-lib/rbuild/internal/toolchain"
	"github.com/riscy-lib/rbuild/internal/tree"
)

// Run executes the main application logic: build the dependency tree from
// the configured roots, then either print it or drive the compile pipeline
// over it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	builder := tree.NewBuilder()
	t, err := builder.Build(ctx, a.config.Roots...)
	if err != nil {
		return fmt.Errorf("failed to build dependency tree: %w", err)
	}
	a.logger.Debug("Dependency tree built.", "roots", len(t.Roots))

	if a.config.TreeOnly || a.config.Verbose {
		a.logger.Info("Build tree generated:")
		fmt.Fprint(a.outW, t.Render())
	}
	if a.config.TreeOnly {
		return nil
	}

	runner := toolchain.New(a.project)
	if err := runner.Parse(ctx, t); err != nil {
		return err
	}
	if err := runner.Elaborate(ctx, t); err != nil {
		return err
	}

	banner := color.New(color.FgGreen, color.Bold)
	banner.Fprintln(a.outW, "Test-bench compiled successfully!")
	a.logger.Debug("App.Run method finished.")
	return nil
}
