// Package cluster partitions findings into equivalence classes via
// transitive-closure clustering: if A~B and B~C score above the
// threshold, all three land in one cluster even when A~C alone would
// not. Review stages often produce chains of partial matches, so the
// closure is intentional; the cost is possible over-merging on
// pathological inputs.
package cluster

// DefaultThreshold is the pair-score cutoff at or above which two
// findings are considered equivalent.
const DefaultThreshold = 0.6

// Partition groups n elements into clusters. The score function is
// consulted for every pair (i, j), i < j, in index order, and pairs at
// or above threshold are unioned. Clusters are returned ordered by
// first appearance of any member, with members in index order, so the
// partition is deterministic for a fixed input ordering.
func Partition(n int, score func(i, j int) float64, threshold float64) [][]int {
	if n == 0 {
		return nil
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if score(i, j) >= threshold {
				uf.union(i, j)
			}
		}
	}

	byRoot := make(map[int][]int, n)
	var order []int
	for i := 0; i < n; i++ {
		root := uf.find(i)
		if _, ok := byRoot[root]; !ok {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], i)
	}

	clusters := make([][]int, 0, len(order))
	for _, root := range order {
		clusters = append(clusters, byRoot[root])
	}
	return clusters
}

// unionFind is a deterministic disjoint-set forest: path compression,
// and the lower index always wins as root so the partition does not
// depend on union order side effects.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
