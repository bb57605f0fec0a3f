// Package bktree implements a Burkhard-Keller tree for fuzzy matching of
// discrete items under a metric distance function. Given any metric
// (non-negative, symmetric, triangle inequality), the tree answers range
// queries ("all items within distance d of a query") in sub-linear expected
// time by pruning subtrees via the triangle inequality.
//
// The tree is not safe for concurrent mutation; callers requiring concurrent
// access must serialize writes externally. The metric is a caller obligation:
// a function violating symmetry or the triangle inequality causes silently
// missed matches, not errors.
package bktree

// Metric computes a non-negative integer distance between two values.
// It must be deterministic and symmetric, satisfy the triangle inequality,
// and return 0 only for values the tree should treat as identical.
type Metric[T any] func(a, b T) int

// edge links a node to the subtree of items whose distance from the node's
// item, at insertion time, was exactly dist. At most one edge per distance.
type edge[T any] struct {
	dist int
	node *node[T]
}

// node holds one stored item and its child edges in insertion order.
type node[T any] struct {
	item  T
	edges []edge[T]
}

// child returns the child at edge label dist, or nil.
func (n *node[T]) child(dist int) *node[T] {
	for _, e := range n.edges {
		if e.dist == dist {
			return e.node
		}
	}
	return nil
}

// Tree is a BK-tree bound to a single metric for its lifetime.
// The zero value is not usable; construct with New.
type Tree[T any] struct {
	root   *node[T]
	metric Metric[T]
	size   int
}

// New creates an empty tree using the given distance metric.
func New[T any](m Metric[T]) *Tree[T] {
	return &Tree[T]{metric: m}
}

// Len returns the number of items stored in the tree.
// Items discarded as duplicates on insert are not counted.
func (t *Tree[T]) Len() int {
	return t.size
}

// Insert adds item to the tree. An item at metric distance 0 from an
// already-stored item is a duplicate and is discarded silently: distance
// zero is the tree's notion of identity.
func (t *Tree[T]) Insert(item T) {
	if t.root == nil {
		t.root = &node[T]{item: item}
		t.size = 1
		return
	}

	cur := t.root
	for {
		k := t.metric(cur.item, item)
		if k == 0 {
			return
		}
		next := cur.child(k)
		if next == nil {
			cur.edges = append(cur.edges, edge[T]{dist: k, node: &node[T]{item: item}})
			t.size++
			return
		}
		cur = next
	}
}

// InsertAll inserts every item in order. Insertion order affects the final
// tree shape but not query results.
func (t *Tree[T]) InsertAll(items ...T) {
	for _, item := range items {
		t.Insert(item)
	}
}

// Match pairs a stored item with its distance to the query.
type Match[T any] struct {
	Item     T
	Distance int
}

// Find returns every stored item within maxDist of query, each with its
// exact distance. Results come back in traversal order, not sorted by
// distance. An empty tree or a negative maxDist yields an empty result.
func (t *Tree[T]) Find(query T, maxDist int) []Match[T] {
	if t.root == nil {
		return nil
	}

	var found []Match[T]
	queue := []*node[T]{t.root}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		d := t.metric(n.item, query)
		if d <= maxDist {
			found = append(found, Match[T]{Item: n.item, Distance: d})
		}

		// Triangle inequality: any item under an edge labeled arc is at
		// least |arc - d| from the query, so only edges with
		// |arc - d| <= maxDist can hold a match.
		for _, e := range n.edges {
			if abs(e.dist-d) <= maxDist {
				queue = append(queue, e.node)
			}
		}
	}

	return found
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
