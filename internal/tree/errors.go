package tree

import "errors"

// Error kinds raised while loading descriptors. The three kinds below mark
// a referenced descriptor as unusable: when one surfaces through a needs
// edge the edge is dropped and the build continues. Structural errors from
// the descriptor package (malformed documents, non-string needs entries)
// always abort the whole build.
var (
	// ErrMissingDescriptor reports a descriptor path that does not exist.
	ErrMissingDescriptor = errors.New("descriptor does not exist")
	// ErrNotAFile reports a descriptor path that exists but is not a regular file.
	ErrNotAFile = errors.New("descriptor is not a file")
	// ErrDependencyLoop reports a descriptor that transitively depends on itself.
	ErrDependencyLoop = errors.New("loop in build dependencies")
)

// droppable reports whether err merely makes the referenced dependency
// unusable, as opposed to indicating broken descriptor content.
func droppable(err error) bool {
	return errors.Is(err, ErrMissingDescriptor) ||
		errors.Is(err, ErrNotAFile) ||
		errors.Is(err, ErrDependencyLoop)
}
