package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/riscy-lib/rbuild/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rbuild - builds the .bld dependency tree and compiles the test-bench for simulation.

Usage:
  rbuild [options] ROOT_BLD [ROOT_BLD...]

Arguments:
  ROOT_BLD
    Path to a root .bld build descriptor. Several roots may be given.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "rbuild.hcl", "Path to the project configuration file.")
	treeOnlyFlag := flagSet.Bool("tree-only", false, "Only construct and print the build tree, don't compile.")
	verboseFlag := flagSet.Bool("verbose", false, "Print the build tree before compiling.")
	definesFlag := flagSet.String("defines", "", "Comma-separated defines for the elaboration stage.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No root descriptor provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var defines []string
	for _, define := range strings.Split(*definesFlag, ",") {
		if define = strings.TrimSpace(define); define != "" {
			defines = append(defines, define)
		}
	}

	config, err := app.NewConfig(app.Config{
		Roots:       flagSet.Args(),
		ProjectFile: *configFlag,
		Defines:     defines,
		TreeOnly:    *treeOnlyFlag,
		Verbose:     *verboseFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "roots", config.Roots)
	return config, false, nil
}
