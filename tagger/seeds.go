package tagger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var defaultSeedKeywords = []string{
	"alma",
	"körte",
	"dinnye",
	"szöveg",
	"kép",
	"festmény",
	"szobor",
}

// DefaultSeedKeywords returns the built-in seed keywords.
func DefaultSeedKeywords() []string {
	return append([]string(nil), defaultSeedKeywords...)
}

// ParseSeedFile reads seed keywords separated by newlines, commas or semicolons.
func ParseSeedFile(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeeds(string(data)), nil
}

// ParseSeeds splits raw seed input. Lines starting with # are ignored.
func ParseSeeds(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	lines := strings.Split(data, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		tokens := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '\t'
		})
		for _, token := range tokens {
			if token = strings.TrimSpace(token); token != "" {
				out = append(out, token)
			}
		}
	}
	return NormalizeSeeds(out)
}

// NormalizeSeeds normalizes seeds and drops empty and repeated entries, keeping first-seen order.
func NormalizeSeeds(seeds []string) []string {
	out := make([]string, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		w := NormalizeWord(s)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
