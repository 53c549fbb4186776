package tagger

import (
	"math"
	"sort"
	"sync"
)

// VectorItem represents an entry within a vector index.
type VectorItem struct {
	Label  string
	Vector []float32
}

// Hit is a scored search result.
type Hit struct {
	Label string
	Score float32
}

// VectorIndex provides nearest neighbour search capabilities.
type VectorIndex interface {
	Replace(items []VectorItem)
	Search(vec []float32, k int) []Hit
	Lookup(label string) ([]float32, bool)
	Size() int
}

type indexedItem struct {
	label  string
	vector []float32
	norm   float64
}

// InMemoryIndex is a brute-force vector index with cosine similarity.
type InMemoryIndex struct {
	mu      sync.RWMutex
	items   []indexedItem
	byLabel map[string]int
}

// NewInMemoryIndex constructs an empty index.
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{byLabel: make(map[string]int)}
}

// Replace swaps the stored items atomically. When a label repeats, the first
// occurrence wins.
func (idx *InMemoryIndex) Replace(items []VectorItem) {
	stored := make([]indexedItem, 0, len(items))
	byLabel := make(map[string]int, len(items))
	for _, it := range items {
		if _, dup := byLabel[it.Label]; dup {
			continue
		}
		byLabel[it.Label] = len(stored)
		stored = append(stored, indexedItem{
			label:  it.Label,
			vector: cloneVector(it.Vector),
			norm:   vectorNorm(it.Vector),
		})
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.items = stored
	idx.byLabel = byLabel
}

// Size returns the current number of vectors stored.
func (idx *InMemoryIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.items)
}

// Lookup returns a copy of the vector stored under label.
func (idx *InMemoryIndex) Lookup(label string) ([]float32, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	i, ok := idx.byLabel[label]
	if !ok {
		return nil, false
	}
	return cloneVector(idx.items[i].vector), true
}

// Search performs cosine similarity against all stored items and returns the top-k hits.
// Equal scores are ordered by label so results are deterministic.
func (idx *InMemoryIndex) Search(vec []float32, k int) []Hit {
	idx.mu.RLock()
	items := idx.items
	idx.mu.RUnlock()
	if len(items) == 0 || len(vec) == 0 || k <= 0 {
		return nil
	}
	qnorm := vectorNorm(vec)
	if qnorm == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(items))
	for _, it := range items {
		if it.norm == 0 {
			continue
		}
		score := float32(dot(vec, it.vector) / (qnorm * it.norm))
		hits = append(hits, Hit{Label: it.label, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score == hits[j].Score {
			return hits[i].Label < hits[j].Label
		}
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
