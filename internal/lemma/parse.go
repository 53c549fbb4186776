package lemma

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lemmaColumn is the position of the lemma in form, wsafter, morph, lemma, pos.
const lemmaColumn = 3

// ParseResponse extracts the lemma column from an emtsv TSV answer. The first line is
// the header. Lines of at most one character separate sentences and are skipped.
func ParseResponse(body string) ([]string, error) {
	lines := strings.Split(body, "\n")
	if len(lines) <= 1 {
		return nil, nil
	}
	lemmas := make([]string, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if utf8.RuneCountInString(line) <= 1 {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= lemmaColumn {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", i+2, lemmaColumn+1, len(fields))
		}
		lemmas = append(lemmas, fields[lemmaColumn])
	}
	return lemmas, nil
}
