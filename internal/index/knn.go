package index

import "sort"

// Neighbors is a brute-force nearest-neighbor structure over L2-normalized
// vectors using cosine distance. It is read-only after Fit, so concurrent
// queries need no locking.
type Neighbors struct {
	vectors [][]float64
}

// FitNeighbors builds the structure over the given vectors. Vectors are
// expected to be L2-normalized (the vectorizer guarantees this), which lets
// cosine distance reduce to 1 − dot product.
func FitNeighbors(vectors [][]float64) *Neighbors {
	return &Neighbors{vectors: vectors}
}

// Len returns the number of indexed vectors.
func (n *Neighbors) Len() int { return len(n.vectors) }

// Kneighbors returns the k nearest vectors to the query as parallel slices of
// cosine distances and positions, ordered by ascending distance. Ties keep
// insertion order. k is clamped to the number of indexed vectors.
func (n *Neighbors) Kneighbors(query []float64, k int) ([]float64, []int) {
	if k <= 0 {
		k = DefaultNeighbors
	}
	if k > len(n.vectors) {
		k = len(n.vectors)
	}
	dists := make([]float64, len(n.vectors))
	order := make([]int, len(n.vectors))
	for i, vec := range n.vectors {
		dists[i] = 1 - dot(vec, query)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	outDists := make([]float64, k)
	outIdxs := make([]int, k)
	for i := 0; i < k; i++ {
		outDists[i] = dists[order[i]]
		outIdxs[i] = order[i]
	}
	return outDists, outIdxs
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
