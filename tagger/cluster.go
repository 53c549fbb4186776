package tagger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Cluster is one entry of a ClusterMap: the word-set grown from a seed and the tag
// it resolves to.
type Cluster struct {
	Tag   string
	Words []string // sorted, distinct
}

// ClusterMap maps word clusters to tags. It is keyed by word-set: two seeds that grow
// the same set share one entry and the later seed owns it. Built once, read-only after.
type ClusterMap struct {
	entries map[string]Cluster
	byWord  map[string][]string // word -> tags of every entry containing it
}

// BuildClusterMap grows one cluster per seed from its nearest neighbours. A neighbour
// joins the cluster only when its score is strictly greater than threshold. Seeds are
// processed in sorted order. Empty clusters are kept; they can never match.
func BuildClusterMap(ctx context.Context, seeds []string, neighbors NeighborProvider, threshold float32) (*ClusterMap, error) {
	return buildClusterMap(ctx, seeds, neighbors, threshold, nil)
}

func buildClusterMap(ctx context.Context, seeds []string, neighbors NeighborProvider, threshold float32, logger *log.Logger) (*ClusterMap, error) {
	ordered := NormalizeSeeds(seeds)
	sort.Strings(ordered)

	entries := make(map[string]Cluster, len(ordered))
	for _, seed := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		similar, err := neighbors.MostSimilar(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("neighbors of %q: %w", seed, err)
		}
		words := make(map[string]struct{}, len(similar))
		for _, n := range similar {
			if n.Score <= threshold {
				continue
			}
			w := NormalizeWord(n.Word)
			if w == "" {
				continue
			}
			words[w] = struct{}{}
		}
		cluster := Cluster{Tag: seed, Words: sortedKeys(words)}
		key := clusterKey(cluster.Words)
		if prev, ok := entries[key]; ok && logger != nil {
			logger.Warn("seed replaces identical cluster", "seed", seed, "replaced", prev.Tag)
		}
		if len(cluster.Words) == 0 && logger != nil {
			logger.Warn("seed has no neighbour above threshold", "seed", seed, "threshold", threshold)
		}
		entries[key] = cluster
	}
	return newClusterMap(entries), nil
}

func newClusterMap(entries map[string]Cluster) *ClusterMap {
	byWord := make(map[string][]string)
	for _, c := range entries {
		for _, w := range c.Words {
			byWord[w] = append(byWord[w], c.Tag)
		}
	}
	for w := range byWord {
		sort.Strings(byWord[w])
	}
	return &ClusterMap{entries: entries, byWord: byWord}
}

// Len returns the number of entries.
func (m *ClusterMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Clusters returns every entry ordered by tag.
func (m *ClusterMap) Clusters() []Cluster {
	if m == nil {
		return nil
	}
	out := make([]Cluster, 0, len(m.entries))
	for _, c := range m.entries {
		words := make([]string, len(c.Words))
		copy(words, c.Words)
		out = append(out, Cluster{Tag: c.Tag, Words: words})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tag == out[j].Tag {
			return clusterKey(out[i].Words) < clusterKey(out[j].Words)
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Tags returns the tags a single word resolves to.
func (m *ClusterMap) Tags(word string) []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.byWord[word]...)
}

// clusterKey is the canonical form of a word-set; words must be sorted.
func clusterKey(words []string) string {
	return strings.Join(words, "\x00")
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
