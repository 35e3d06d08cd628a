package tree

import (
	"iter"
	"strings"
)

// Tree is the ordered collection of root nodes produced by one Build call.
type Tree struct {
	// Roots holds one node per caller-supplied root path, in caller order.
	Roots []*Node
	// Includes is an aggregate include list for consumers to populate; the
	// builder itself never writes it.
	Includes []string
}

// Render returns the outline of every root in order. See Node.Render for
// the line format.
func (t *Tree) Render() string {
	var sb strings.Builder
	for _, root := range t.Roots {
		root.render(&sb, 0)
	}
	return sb.String()
}

// Traverse returns a dependency-first (post-order) sequence over the tree:
// a node is produced only after all of its transitive needs have been
// produced. The walk descends every needs edge, including repeated ones.
// With unique set, a node already produced earlier in the sequence is
// skipped at emission time, so each node appears exactly once and the first
// occurrence wins; without it, a node appears once per reference. Each call
// returns an independent, restartable sequence.
func (t *Tree) Traverse(unique bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		emitted := make(map[*Node]bool)

		emit := func(n *Node) bool {
			if unique {
				if emitted[n] {
					return true
				}
				emitted[n] = true
			}
			return yield(n)
		}

		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			for _, need := range n.Needs {
				if !walk(need) {
					return false
				}
				if !emit(need) {
					return false
				}
			}
			return true
		}

		for _, root := range t.Roots {
			if !walk(root) {
				return
			}
			if !emit(root) {
				return
			}
		}
	}
}
