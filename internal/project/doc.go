// Package project loads the optional rbuild.hcl project file that names
// the toolchain commands, elaboration top and compile defines.
package project
