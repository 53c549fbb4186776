package tagger

import (
	"context"
	"errors"
	"fmt"
)

// EmbeddingNeighbors answers nearest-neighbour queries against a fixed vocabulary
// embedded once at construction.
type EmbeddingNeighbors struct {
	embedder Embedder
	index    VectorIndex
	topN     int
}

// NewEmbeddingNeighbors embeds every vocabulary word and indexes the result.
func NewEmbeddingNeighbors(ctx context.Context, embedder Embedder, vocabulary []string, topN int) (*EmbeddingNeighbors, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	words := NormalizeSeeds(vocabulary)
	if len(words) == 0 {
		return nil, errors.New("vocabulary is empty")
	}
	vecs, err := embedder.EmbedTexts(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("embed vocabulary: %w", err)
	}
	items := make([]VectorItem, len(words))
	for i, w := range words {
		items[i] = VectorItem{Label: w, Vector: vecs[i]}
	}
	idx := NewInMemoryIndex()
	idx.Replace(items)
	if topN <= 0 {
		topN = 10
	}
	return &EmbeddingNeighbors{embedder: embedder, index: idx, topN: topN}, nil
}

// MostSimilar embeds word and returns the closest vocabulary entries, excluding word itself.
func (n *EmbeddingNeighbors) MostSimilar(ctx context.Context, word string) ([]Neighbor, error) {
	word = NormalizeWord(word)
	if word == "" {
		return nil, nil
	}
	vec, ok := n.index.Lookup(word)
	if !ok {
		var err error
		vec, err = n.embedder.EmbedText(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("embed %q: %w", word, err)
		}
	}
	return NeighborsFromHits(n.index.Search(vec, n.topN+1), word, n.topN), nil
}

// Close releases the underlying embedder.
func (n *EmbeddingNeighbors) Close() error {
	return n.embedder.Close()
}

// NeighborsFromHits converts index hits to neighbours, dropping exclude and keeping at most limit.
func NeighborsFromHits(hits []Hit, exclude string, limit int) []Neighbor {
	out := make([]Neighbor, 0, len(hits))
	for _, h := range hits {
		if h.Label == exclude {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, Neighbor{Word: h.Label, Score: h.Score})
	}
	return out
}
