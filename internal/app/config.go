package app

import "errors"

// Config holds everything an App instance needs to run one build.
type Config struct {
	// Roots are the root .bld descriptor paths, in command-line order.
	Roots []string
	// ProjectFile is the path to the rbuild.hcl project file; a missing
	// file falls back to built-in defaults.
	ProjectFile string
	// Defines are extra elaboration defines from the command line, merged
	// after the project file's own.
	Defines []string
	// TreeOnly stops after printing the build tree.
	TreeOnly bool
	// Verbose prints the build tree before compiling.
	Verbose bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Roots) == 0 {
		return nil, errors.New("at least one root descriptor path is required")
	}
	return &cfg, nil
}
