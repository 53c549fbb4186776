package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"yashubustudio/topictagger/internal/lemma"
	"yashubustudio/topictagger/internal/wordvec"
	"yashubustudio/topictagger/tagger"
)

// NewService opens whichever providers opts leaves nil and builds the tagging service.
// The returned func releases the opened providers.
func NewService(ctx context.Context, opts Options) (*tagger.Service, func(), error) {
	cfg := opts.Config
	cfg.ApplyDefaults()

	neighbors := opts.Neighbors
	closeFn := func() {}
	if neighbors == nil {
		nb, closer, err := OpenNeighbors(ctx, cfg, opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		neighbors, closeFn = nb, closer
	}

	lem := opts.Lemmatizer
	if lem == nil {
		var err error
		if lem, err = OpenLemmatizer(cfg); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	svc, err := tagger.NewService(ctx, neighbors, lem, cfg, opts.Logger)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

// OpenNeighbors opens the neighbour provider selected by cfg.Embedder.Kind.
func OpenNeighbors(ctx context.Context, cfg tagger.Config, logger *log.Logger) (tagger.NeighborProvider, func(), error) {
	switch cfg.Embedder.Kind {
	case tagger.KindONNX:
		vocab, err := tagger.ParseSeedFile(cfg.Embedder.VocabularyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load vocabulary: %w", err)
		}
		embedder, err := tagger.NewOrtEmbedder(cfg.Embedder)
		if err != nil {
			return nil, nil, err
		}
		nb, err := tagger.NewEmbeddingNeighbors(ctx, embedder, vocab, cfg.TopN)
		if err != nil {
			_ = embedder.Close()
			return nil, nil, err
		}
		if logger != nil {
			logger.Info("vocabulary embedded", "model", embedder.ModelID(), "words", len(vocab))
		}
		return nb, func() { _ = nb.Close() }, nil
	case tagger.KindWordVec, "":
		p, err := wordvec.Open(cfg.Embedder.VectorsPath, cfg.TopN)
		if err != nil {
			return nil, nil, fmt.Errorf("load word vectors: %w", err)
		}
		if logger != nil {
			logger.Info("word vectors loaded", "path", cfg.Embedder.VectorsPath, "words", p.Size())
		}
		return p, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown embedder kind %q", cfg.Embedder.Kind)
	}
}

// OpenLemmatizer builds the HTTP lemmatizer, memoized when a cache size is configured.
func OpenLemmatizer(cfg tagger.Config) (tagger.Lemmatizer, error) {
	client, err := lemma.New(cfg.Lemmatizer)
	if err != nil {
		return nil, err
	}
	if cfg.Lemmatizer.CacheSize <= 0 {
		return client, nil
	}
	return lemma.NewCached(client, cfg.Lemmatizer.CacheSize)
}
