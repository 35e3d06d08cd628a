// Package pathres resolves descriptor path strings into canonical
// absolute paths.
package pathres

import "path/filepath"

// Resolve turns a path string from a descriptor into a canonical absolute
// path. A path with a leading separator is treated as absolute and only
// cleaned; anything else is joined to baseDir and cleaned, normalizing any
// "." and ".." elements. baseDir must itself be absolute.
func Resolve(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
