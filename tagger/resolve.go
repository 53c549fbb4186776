package tagger

// Resolve returns the sorted set of tags whose cluster contains at least one of the
// lemmas. Only the distinct lemma set matters; order and repetition do not.
func Resolve(lemmas []string, clusters *ClusterMap) []string {
	return sortedKeys(resolveSet(lemmas, clusters))
}

// Resolve is shorthand for Resolve(lemmas, m).
func (m *ClusterMap) Resolve(lemmas []string) []string {
	return Resolve(lemmas, m)
}

func resolveSet(lemmas []string, clusters *ClusterMap) map[string]struct{} {
	tags := make(map[string]struct{})
	if clusters == nil {
		return tags
	}
	seen := make(map[string]struct{}, len(lemmas))
	for _, lemma := range lemmas {
		lemma = NormalizeWord(lemma)
		if lemma == "" {
			continue
		}
		if _, ok := seen[lemma]; ok {
			continue
		}
		seen[lemma] = struct{}{}
		for _, tag := range clusters.byWord[lemma] {
			tags[tag] = struct{}{}
		}
	}
	return tags
}
