// Package descriptor reads .bld build-description files. A descriptor is a
// small YAML document declaring a node's source files, include directories
// and dependencies on other descriptors.
package descriptor
