package tagger

import (
	"context"
	"fmt"
)

// Annotator resolves the tags of a record and merges them into its tag container.
type Annotator struct {
	clusters   *ClusterMap
	lemmatizer Lemmatizer
	// duplicates appends tags even when the container already holds the same id.
	duplicates bool
}

// NewAnnotator returns an Annotator over a built cluster map.
func NewAnnotator(clusters *ClusterMap, lemmatizer Lemmatizer, duplicates bool) *Annotator {
	return &Annotator{clusters: clusters, lemmatizer: lemmatizer, duplicates: duplicates}
}

// Annotation is the outcome of annotating a single record.
type Annotation struct {
	Fields   int
	Tags     []string // resolved, sorted
	Appended []string // actually written to the container, sorted
}

// Annotate lemmatizes every field of rec, resolves the union of their tags and appends
// them, sorted, to the record's tag container. The container is created even when no
// tag matches. A lemmatizer error aborts without touching the record.
func (a *Annotator) Annotate(ctx context.Context, rec Record) (Annotation, error) {
	fields := rec.Fields()
	tags := make(map[string]struct{})
	for i, text := range fields {
		// The lemmatizer needs an explicit terminator.
		lemmas, err := a.lemmatizer.Lemmatize(ctx, text+"\n")
		if err != nil {
			return Annotation{}, fmt.Errorf("lemmatize field %d: %w", i, err)
		}
		for tag := range resolveSet(lemmas, a.clusters) {
			tags[tag] = struct{}{}
		}
	}

	resolved := sortedKeys(tags)
	appended := resolved
	if !a.duplicates {
		appended = withoutExisting(resolved, rec.TagIDs())
	}
	rec.AppendTags(appended)
	return Annotation{Fields: len(fields), Tags: resolved, Appended: appended}, nil
}

func withoutExisting(tags, existing []string) []string {
	if len(existing) == 0 {
		return tags
	}
	have := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := have[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
