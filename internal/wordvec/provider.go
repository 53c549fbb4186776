package wordvec

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"yashubustudio/topictagger/tagger"
)

// Provider answers MostSimilar from an in-memory copy of a word-vector table.
type Provider struct {
	index *tagger.InMemoryIndex
	topN  int
}

// NewProvider indexes items. topN bounds the number of neighbours returned.
func NewProvider(items []tagger.VectorItem, topN int) *Provider {
	if topN <= 0 {
		topN = 10
	}
	idx := tagger.NewInMemoryIndex()
	idx.Replace(items)
	return &Provider{index: idx, topN: topN}
}

// Open loads a vector file (text, or bbolt when the extension is .db or .bolt).
func Open(path string, topN int) (*Provider, error) {
	items, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no vectors in %s", path)
	}
	return NewProvider(items, topN), nil
}

// LoadFile reads every vector from path.
func LoadFile(path string) ([]tagger.VectorItem, error) {
	if !isStore(path) {
		return ReadTextFile(path)
	}
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Items()
}

// ImportStats describes the result of an import.
type ImportStats struct {
	Vectors int
	Dim     int
}

// Import converts a text vector file into a bbolt vector database.
func Import(src, dst string) (ImportStats, error) {
	items, err := ReadTextFile(src)
	if err != nil {
		return ImportStats{}, err
	}
	store, err := OpenStore(dst)
	if err != nil {
		return ImportStats{}, err
	}
	defer store.Close()
	if err := store.Put(items); err != nil {
		return ImportStats{}, fmt.Errorf("store vectors: %w", err)
	}
	dim, err := store.Dim()
	if err != nil {
		return ImportStats{}, fmt.Errorf("read dimension: %w", err)
	}
	return ImportStats{Vectors: len(items), Dim: dim}, nil
}

// Size returns the vocabulary size.
func (p *Provider) Size() int {
	return p.index.Size()
}

// MostSimilar returns up to topN words closest to word, never word itself.
// Words outside the vocabulary have no neighbours.
func (p *Provider) MostSimilar(ctx context.Context, word string) ([]tagger.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	word = tagger.NormalizeWord(word)
	vec, ok := p.index.Lookup(word)
	if !ok {
		return nil, nil
	}
	return tagger.NeighborsFromHits(p.index.Search(vec, p.topN+1), word, p.topN), nil
}

func isStore(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".bolt":
		return true
	default:
		return false
	}
}
