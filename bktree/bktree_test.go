package bktree

import (
	"testing"
)

var words = []string{"book", "books", "boo", "boon", "cook", "cake", "cape", "cart"}

// matchSet converts Find results to a map for order-independent comparison.
func matchSet[T comparable](matches []Match[T]) map[T]int {
	set := make(map[T]int, len(matches))
	for _, m := range matches {
		set[m.Item] = m.Distance
	}
	return set
}

func TestTree_Empty(t *testing.T) {
	tree := New(Levenshtein)

	if got := tree.Find("anything", 10); len(got) != 0 {
		t.Errorf("expected empty result from empty tree, got %v", got)
	}
	if tree.Len() != 0 {
		t.Errorf("expected Len 0, got %d", tree.Len())
	}
}

func TestTree_SingleElement(t *testing.T) {
	tree := New(Hamming64)
	tree.Insert(0b1111)

	// Exact match
	got := tree.Find(0b1111, 0)
	if len(got) != 1 || got[0].Item != 0b1111 || got[0].Distance != 0 {
		t.Errorf("expected [{15 0}], got %v", got)
	}

	// Within bound
	got = tree.Find(0b1110, 1)
	if len(got) != 1 || got[0].Distance != 1 {
		t.Errorf("expected one match at distance 1, got %v", got)
	}

	// Outside bound
	if got := tree.Find(0b0000, 3); len(got) != 0 {
		t.Errorf("expected no match, got %v", got)
	}
}

func TestTree_DuplicateInsert(t *testing.T) {
	tree := New(Levenshtein)
	tree.Insert("book")
	tree.Insert("book")

	if tree.Len() != 1 {
		t.Errorf("expected Len 1 after duplicate insert, got %d", tree.Len())
	}
	if got := tree.Find("book", 0); len(got) != 1 {
		t.Errorf("expected exactly one exact match, got %v", got)
	}
}

func TestTree_FindWords(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	got := matchSet(tree.Find("bo", 2))
	want := map[string]int{"book": 2, "boo": 1, "boon": 2}

	if len(got) != len(want) {
		t.Fatalf("Find(\"bo\", 2) = %v, want %v", got, want)
	}
	for word, dist := range want {
		if got[word] != dist {
			t.Errorf("Find(\"bo\", 2)[%q] = %d, want %d", word, got[word], dist)
		}
	}
}

func TestTree_FindHamming(t *testing.T) {
	tree := New(Hamming64)
	tree.InsertAll(0, 4, 5, 14, 15)

	got := matchSet(tree.Find(13, 1))
	want := map[uint64]int{5: 1, 15: 1}

	if len(got) != len(want) {
		t.Fatalf("Find(13, 1) = %v, want %v", got, want)
	}
	for item, dist := range want {
		if got[item] != dist {
			t.Errorf("Find(13, 1)[%d] = %d, want %d", item, got[item], dist)
		}
	}
}

func TestTree_NegativeMaxDist(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	if got := tree.Find("book", -1); len(got) != 0 {
		t.Errorf("expected empty result for negative bound, got %v", got)
	}
}

func TestTree_ExactSearchAllWords(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	for _, w := range words {
		got := tree.Find(w, 0)
		if len(got) != 1 || got[0].Item != w || got[0].Distance != 0 {
			t.Errorf("Find(%q, 0) = %v, want exactly [{%q 0}]", w, got, w)
		}
	}
}

// TestTree_SoundAndComplete cross-checks Find against a brute-force scan
// over every stored item for a spread of queries and bounds.
func TestTree_SoundAndComplete(t *testing.T) {
	tree := New(Hamming64)
	items := make([]uint64, 0, 200)
	for i := uint64(0); i < 200; i++ {
		v := i * 2654435761 % 4096
		tree.Insert(v)
		items = append(items, v)
	}

	for _, query := range []uint64{0, 13, 255, 2048, 4095} {
		for _, bound := range []int{0, 1, 2, 4, 8} {
			got := matchSet(tree.Find(query, bound))

			want := make(map[uint64]int)
			for _, v := range items {
				if d := Hamming64(query, v); d <= bound {
					want[v] = d
				}
			}

			if len(got) != len(want) {
				t.Fatalf("Find(%d, %d): got %d matches, want %d", query, bound, len(got), len(want))
			}
			for v, d := range want {
				if got[v] != d {
					t.Errorf("Find(%d, %d)[%d] = %d, want %d", query, bound, v, got[v], d)
				}
			}
		}
	}
}

// TestTree_DeepChain builds a maximally deep tree (every pair of items at
// the same distance forces a single descending chain) and checks that
// insert, find, and iteration all survive it without recursion limits.
func TestTree_DeepChain(t *testing.T) {
	discrete := func(a, b int) int {
		if a == b {
			return 0
		}
		return 1
	}

	const n = 2000
	tree := New(discrete)
	for i := 0; i < n; i++ {
		tree.Insert(i)
	}

	if tree.Len() != n {
		t.Fatalf("expected Len %d, got %d", n, tree.Len())
	}
	if got := tree.Find(0, 1); len(got) != n {
		t.Errorf("expected all %d items within distance 1, got %d", n, len(got))
	}

	seen := 0
	for range tree.Iter() {
		seen++
	}
	if seen != n {
		t.Errorf("iterated %d items, want %d", seen, n)
	}
}

func TestTree_Iter(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	// Two passes must both see the full item set; Iter restarts per call.
	for pass := 0; pass < 2; pass++ {
		seen := make(map[string]bool)
		for w := range tree.Iter() {
			seen[w] = true
		}
		if len(seen) != len(words) {
			t.Fatalf("pass %d: iterated %d items, want %d", pass, len(seen), len(words))
		}
		for _, w := range words {
			if !seen[w] {
				t.Errorf("pass %d: missing %q", pass, w)
			}
		}
	}

	if tree.Len() != len(words) {
		t.Errorf("Iter must not consume the tree; Len = %d", tree.Len())
	}
}

func TestTree_IterEarlyStop(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	count := 0
	for range tree.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("expected 3 items before break, got %d", count)
	}
}

func TestTree_Drain(t *testing.T) {
	tree := New(Levenshtein)
	tree.InsertAll(words...)

	seen := make(map[string]bool)
	for w := range tree.Drain() {
		seen[w] = true
	}
	if len(seen) != len(words) {
		t.Fatalf("drained %d items, want %d", len(seen), len(words))
	}

	if tree.Len() != 0 {
		t.Errorf("expected empty tree after Drain, Len = %d", tree.Len())
	}
	if got := tree.Find("book", 2); len(got) != 0 {
		t.Errorf("expected no matches after Drain, got %v", got)
	}
}

func BenchmarkTree_Insert(b *testing.B) {
	tree := New(Hamming64)
	for i := 0; i < b.N; i++ {
		tree.Insert(uint64(i) * 12345)
	}
}

func BenchmarkTree_Find(b *testing.B) {
	tree := New(Hamming64)
	for i := uint64(0); i < 10000; i++ {
		tree.Insert(i * 12345)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Find(uint64(i)*67890, 10)
	}
}
