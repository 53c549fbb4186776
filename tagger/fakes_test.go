package tagger

import (
	"context"
	"errors"
	"strings"
)

type fakeNeighbors struct {
	table map[string][]Neighbor
	err   error
	calls []string
}

func (f *fakeNeighbors) MostSimilar(_ context.Context, word string) ([]Neighbor, error) {
	f.calls = append(f.calls, word)
	if f.err != nil {
		return nil, f.err
	}
	return f.table[word], nil
}

// fakeLemmatizer lowercases and splits on whitespace, failing on any text containing failOn.
type fakeLemmatizer struct {
	failOn string
	texts  []string
}

var errLemmatizer = errors.New("lemmatizer down")

func (f *fakeLemmatizer) Lemmatize(_ context.Context, text string) ([]string, error) {
	f.texts = append(f.texts, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errLemmatizer
	}
	return strings.Fields(strings.ToLower(text)), nil
}

type fakeRecord struct {
	fields   []string
	existing []string
	hasTags  bool
	appended [][]string
}

func (r *fakeRecord) Fields() []string { return r.fields }
func (r *fakeRecord) TagIDs() []string { return r.existing }
func (r *fakeRecord) AppendTags(ids []string) {
	r.hasTags = true
	cp := make([]string, len(ids))
	copy(cp, ids)
	r.appended = append(r.appended, cp)
	r.existing = append(r.existing, ids...)
}

type fakeDocument struct {
	records []*fakeRecord
}

func (d *fakeDocument) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = r
	}
	return out
}

// fruitNeighbors mirrors a small embedding space around two fruit seeds.
func fruitNeighbors() *fakeNeighbors {
	return &fakeNeighbors{table: map[string][]Neighbor{
		"alma":  {{Word: "gyümölcs", Score: 0.72}, {Word: "körte", Score: 0.65}, {Word: "autó", Score: 0.31}},
		"körte": {{Word: "gyümölcs", Score: 0.70}, {Word: "alma", Score: 0.65}, {Word: "szilva", Score: 0.61}},
	}}
}
