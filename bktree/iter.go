package bktree

import "iter"

// Iter returns an iterator over all stored items, in no particular order.
// The order is deterministic for a fixed tree shape, and each call starts
// a fresh traversal. The tree is left unchanged.
func (t *Tree[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		var stack []*node[T]
		if t.root != nil {
			stack = append(stack, t.root)
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range n.edges {
				stack = append(stack, e.node)
			}
			if !yield(n.item) {
				return
			}
		}
	}
}

// Drain returns an iterator that yields every stored item and consumes the
// tree: the root is detached immediately, so the tree is empty once Drain
// returns, even if the iterator is never run to completion.
func (t *Tree[T]) Drain() iter.Seq[T] {
	root := t.root
	t.root = nil
	t.size = 0

	return func(yield func(T) bool) {
		var stack []*node[T]
		if root != nil {
			stack = append(stack, root)
			root = nil
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range n.edges {
				stack = append(stack, e.node)
			}
			if !yield(n.item) {
				return
			}
		}
	}
}
