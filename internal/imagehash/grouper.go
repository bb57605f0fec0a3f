package imagehash

import (
	"sort"

	"fuzzydex/bktree"
)

// Group is a set of near-duplicate images. Images[0] is the representative
// (highest score); the rest are sorted by descending score.
type Group struct {
	ID     int          `json:"id"`
	Images []*ImageInfo `json:"images"`
}

// FindGroups clusters images whose perceptual hashes are within threshold
// Hamming distance of each other. Each image is queried against the tree
// before being inserted, and matching pairs are merged with union-find, so
// the whole pass is one tree query plus one insert per image.
func FindGroups(images []*ImageInfo, threshold int) []*Group {
	n := len(images)
	if n < 2 {
		return nil
	}

	uf := newUnionFind(n)
	tree := bktree.New(bktree.Hamming64)

	// The tree stores each distinct hash once (a distance-0 collision is
	// identity), so byHash tracks which image first carried each hash and
	// unions later images with identical hashes onto it.
	byHash := make(map[uint64]int, n)

	for i, img := range images {
		for _, m := range tree.Find(img.Hash, threshold) {
			uf.union(i, byHash[m.Item])
		}
		// An identical hash already matched at distance 0 above, so only
		// first occurrences go into the tree and the map.
		if _, seen := byHash[img.Hash]; !seen {
			byHash[img.Hash] = i
			tree.Insert(img.Hash)
		}
	}

	groupMap := make(map[int][]*ImageInfo)
	for i, img := range images {
		root := uf.find(i)
		groupMap[root] = append(groupMap[root], img)
	}

	return buildGroups(groupMap)
}

// buildGroups converts the union-find buckets into sorted Groups, skipping
// singletons.
func buildGroups(groupMap map[int][]*ImageInfo) []*Group {
	var groups []*Group

	// Iterate buckets in a stable order so group IDs are deterministic.
	roots := make([]int, 0, len(groupMap))
	for root := range groupMap {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	id := 1
	for _, root := range roots {
		imgs := groupMap[root]
		if len(imgs) < 2 {
			continue
		}

		sorted := make([]*ImageInfo, len(imgs))
		copy(sorted, imgs)
		sort.Slice(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.FileSize != b.FileSize {
				return a.FileSize > b.FileSize
			}
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
			return a.Path < b.Path
		})

		groups = append(groups, &Group{ID: id, Images: sorted})
		id++
	}

	return groups
}

// Union-Find data structure for efficient grouping
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: rank}
}

func (uf *unionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x]) // Path compression
	}
	return uf.parent[x]
}

func (uf *unionFind) union(x, y int) {
	px, py := uf.find(x), uf.find(y)
	if px == py {
		return
	}
	// Union by rank
	if uf.rank[px] < uf.rank[py] {
		px, py = py, px
	}
	uf.parent[py] = px
	if uf.rank[px] == uf.rank[py] {
		uf.rank[px]++
	}
}
