package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"yashubustudio/topictagger/internal/document"
	"yashubustudio/topictagger/internal/logger"
	"yashubustudio/topictagger/tagger"
)

// Options configures a tagging run. Nil providers are opened from Config.
type Options struct {
	Config     tagger.Config
	Logger     *log.Logger
	Neighbors  tagger.NeighborProvider
	Lemmatizer tagger.Lemmatizer
}

// Result describes a successful run.
type Result struct {
	RunID   string
	Output  string
	Summary tagger.Summary
}

// Run reads the input document, tags every record and writes the output. Nothing is
// written unless every record was annotated.
func Run(ctx context.Context, opts Options) (Result, error) {
	runID := uuid.NewString()
	cfg := opts.Config.Clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	l := opts.Logger
	if l == nil {
		l = logger.FromContext(ctx)
	}
	l = l.With("run", runID)
	ctx = logger.ContextWithLogger(ctx, l)

	doc, err := document.ReadFile(cfg.Input)
	if err != nil {
		return Result{}, err
	}
	l.Info("input loaded", "path", cfg.Input, "records", doc.Len())

	svc, closeFn, err := NewService(ctx, Options{
		Config:     cfg,
		Logger:     l,
		Neighbors:  opts.Neighbors,
		Lemmatizer: opts.Lemmatizer,
	})
	if err != nil {
		return Result{}, err
	}
	defer closeFn()

	sum, err := svc.AnnotateDocument(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("annotate %s: %w", cfg.Input, err)
	}
	if err := doc.WriteFile(cfg.Output); err != nil {
		return Result{}, err
	}
	l.Info("output written", "path", cfg.Output)
	return Result{RunID: runID, Output: cfg.Output, Summary: sum}, nil
}
