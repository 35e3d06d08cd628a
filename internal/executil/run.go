// Package executil runs shell commands and streams their output to the
// context logger.
package executil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
)

// Run executes command through the shell, forwarding each line of the
// combined stdout and stderr to the context logger as the process produces
// it. It returns the command's exit code. The error is non-nil only when
// the command could not be started or its output could not be read; a
// nonzero exit is reported through the code, not the error.
func Run(ctx context.Context, command string) (int, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Running command.", "cmd", command)

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("executil: pipe: %w", err)
	}
	// StdoutPipe installed the pipe's write end as cmd.Stdout; pointing
	// Stderr at the same writer interleaves both streams in process order.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("executil: start %q: %w", command, err)
	}

	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		logger.Info(scanner.Text())
	}
	scanErr := scanner.Err()

	err = cmd.Wait()
	if scanErr != nil {
		return -1, fmt.Errorf("executil: read output of %q: %w", command, scanErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("executil: wait for %q: %w", command, err)
	}
	return 0, nil
}
