package tagger

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Summary describes a finished document run.
type Summary struct {
	Records       int
	Fields        int
	TaggedRecords int
	TagsAppended  int
}

// Service builds the cluster map once and annotates documents against it.
type Service struct {
	cfg       Config
	clusters  *ClusterMap
	annotator *Annotator

	logger *log.Logger
}

// NewService grows the cluster map from the configured seeds and prepares the annotator.
func NewService(ctx context.Context, neighbors NeighborProvider, lemmatizer Lemmatizer, cfg Config, logger *log.Logger) (*Service, error) {
	if neighbors == nil {
		return nil, errors.New("neighbor provider is required")
	}
	if lemmatizer == nil {
		return nil, errors.New("lemmatizer is required")
	}
	cfg.ApplyDefaults()
	seeds, err := cfg.ResolveSeeds()
	if err != nil {
		return nil, fmt.Errorf("resolve seeds: %w", err)
	}
	clusters, err := buildClusterMap(ctx, seeds, neighbors, cfg.Threshold, logger)
	if err != nil {
		return nil, fmt.Errorf("build clusters: %w", err)
	}
	s := &Service{
		cfg:       cfg,
		clusters:  clusters,
		annotator: NewAnnotator(clusters, lemmatizer, cfg.DuplicateTags),
		logger:    logger,
	}
	s.logf("cluster map built", "seeds", len(seeds), "clusters", clusters.Len(), "threshold", cfg.Threshold)
	for _, c := range clusters.Clusters() {
		s.debugf("cluster", "tag", c.Tag, "words", c.Words)
	}
	return s, nil
}

// Config returns a copy of the configuration.
func (s *Service) Config() Config {
	return s.cfg.Clone()
}

// Clusters returns the read-only cluster map.
func (s *Service) Clusters() *ClusterMap {
	return s.clusters
}

// AnnotateDocument annotates every record in order. The first failure stops the run;
// records processed before it keep their in-memory changes but callers must not write
// the document in that case.
func (s *Service) AnnotateDocument(ctx context.Context, doc Document) (Summary, error) {
	var sum Summary
	for i, rec := range doc.Records() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res, err := s.annotator.Annotate(ctx, rec)
		if err != nil {
			return sum, fmt.Errorf("record %d: %w", i, err)
		}
		sum.Records++
		sum.Fields += res.Fields
		sum.TagsAppended += len(res.Appended)
		if len(res.Tags) > 0 {
			sum.TaggedRecords++
		}
		s.debugf("record annotated", "index", i, "fields", res.Fields, "tags", res.Tags)
	}
	s.logf("document annotated", "records", sum.Records, "fields", sum.Fields,
		"tagged", sum.TaggedRecords, "appended", sum.TagsAppended)
	return sum, nil
}

func (s *Service) logf(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Info(msg, keyvals...)
	}
}

func (s *Service) debugf(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}
