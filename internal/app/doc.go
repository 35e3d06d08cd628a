// Package app wires configuration, logging, tree construction and the
// compile pipeline into one application lifecycle.
package app
