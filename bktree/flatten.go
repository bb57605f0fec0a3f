package bktree

// FlatEdge is one child edge in the flattened form: the edge's distance
// label and the arena index of the child node.
type FlatEdge struct {
	Dist  int `json:"dist"`
	Child int `json:"child"`
}

// FlatNode is one node in the flattened form: the stored item followed by
// its child edges in insertion order.
type FlatNode[T any] struct {
	Item  T          `json:"item"`
	Edges []FlatEdge `json:"edges,omitempty"`
}

// Flatten returns the tree's node structure as a flat arena: the root at
// index 0, every edge pointing at another index in the slice. The result is
// deterministic for a fixed tree shape and is nil for an empty tree.
// Unflatten is the lossless inverse.
func (t *Tree[T]) Flatten() []FlatNode[T] {
	if t.root == nil {
		return nil
	}

	flat := make([]FlatNode[T], 0, t.size)
	queue := []*node[T]{t.root}

	// First pass assigns indices in BFS order so a parent always precedes
	// its children.
	index := make(map[*node[T]]int, t.size)
	for i := 0; i < len(queue); i++ {
		n := queue[i]
		index[n] = i
		for _, e := range n.edges {
			queue = append(queue, e.node)
		}
	}

	for _, n := range queue {
		fn := FlatNode[T]{Item: n.item}
		for _, e := range n.edges {
			fn.Edges = append(fn.Edges, FlatEdge{Dist: e.dist, Child: index[e.node]})
		}
		flat = append(flat, fn)
	}

	return flat
}

// Unflatten rebuilds a tree from a flattened arena produced by Flatten,
// bound to the given metric. The node structure is restored directly, not
// re-inserted, so the rebuilt tree has the exact shape of the original.
// The metric must be the one the original tree was built with.
func Unflatten[T any](m Metric[T], flat []FlatNode[T]) *Tree[T] {
	t := New(m)
	if len(flat) == 0 {
		return t
	}

	nodes := make([]*node[T], len(flat))
	for i, fn := range flat {
		nodes[i] = &node[T]{item: fn.Item}
	}
	for i, fn := range flat {
		for _, e := range fn.Edges {
			nodes[i].edges = append(nodes[i].edges, edge[T]{dist: e.Dist, node: nodes[e.Child]})
		}
	}

	t.root = nodes[0]
	t.size = len(flat)
	return t
}
