package lemma

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"yashubustudio/topictagger/tagger"
)

// Cached memoizes lemmatization of identical texts. Failures are never cached.
type Cached struct {
	next  tagger.Lemmatizer
	cache *lru.Cache[string, []string]
}

// NewCached wraps next with an LRU cache holding up to size texts.
func NewCached(next tagger.Lemmatizer, size int) (*Cached, error) {
	if next == nil {
		return nil, errors.New("lemmatizer is required")
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("init lemma cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Lemmatize returns the cached lemmas for text or asks the wrapped lemmatizer.
func (c *Cached) Lemmatize(ctx context.Context, text string) ([]string, error) {
	if lemmas, ok := c.cache.Get(text); ok {
		return append([]string(nil), lemmas...), nil
	}
	lemmas, err := c.next.Lemmatize(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, append([]string(nil), lemmas...))
	return lemmas, nil
}

// Len reports the number of cached texts.
func (c *Cached) Len() int {
	return c.cache.Len()
}
