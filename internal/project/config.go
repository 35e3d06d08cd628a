package project

// Config holds the project-level settings read from an rbuild.hcl file,
// overlaid on built-in defaults.
type Config struct {
	// Root is the project root directory. Sources under it are compiled
	// against the UVM library.
	Root string
	// Top is the design unit passed to elaboration.
	Top string
	// Defines are passed to elaboration, one -d flag each.
	Defines []string

	Toolchain Toolchain
}

// Toolchain names the external commands the compile pipeline invokes.
type Toolchain struct {
	// VerilogCmd compiles .sv and .v sources.
	VerilogCmd string
	// VHDLCmd compiles everything else.
	VHDLCmd string
	// ElabCmd elaborates the top unit.
	ElabCmd string
	// UVMLib is the library flag appended for project sources and elaboration.
	UVMLib string
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Top: "tb_top",
		Toolchain: Toolchain{
			VerilogCmd: "xvlog -sv",
			VHDLCmd:    "xvhdl",
			ElabCmd:    "xelab",
			UVMLib:     "-L uvm",
		},
	}
}
