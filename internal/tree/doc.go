// Package tree builds the dependency tree from a set of root .bld
// descriptors.
//
// The builder recursively loads each root and its transitive needs entries
// into shared Node values, memoized by canonical path so diamond
// dependencies converge on a single instance. Loop edges, missing files and
// non-file paths behind a needs reference are dropped so a tree with
// optional dependencies still builds; the same conditions on a root, and
// structurally broken descriptors anywhere, fail the whole build.
//
// Consumers walk the finished Tree with Traverse, which guarantees every
// node is produced after all of its dependencies, or print it with Render.
package tree
