// Package wordvec loads pretrained word vectors and answers nearest-neighbour queries.
package wordvec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"yashubustudio/topictagger/tagger"
)

const maxLineBytes = 4 << 20

// ReadTextFile reads a GloVe or word2vec text vector file.
func ReadTextFile(path string) ([]tagger.VectorItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer f.Close()
	return ReadText(f)
}

// ReadText parses lines of "word f1 f2 ... fd". A leading "count dim" header, as written
// by word2vec, is recognized and skipped. Every vector must share the same dimension.
func ReadText(r io.Reader) ([]tagger.VectorItem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		items []tagger.VectorItem
		dim   int
		line  int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				if d, err := strconv.Atoi(fields[1]); err == nil {
					dim = d
					continue
				}
			}
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: missing vector", line)
		}
		word := tagger.NormalizeWord(fields[0])
		vec := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = float32(v)
		}
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("line %d: dimension %d, expected %d", line, len(vec), dim)
		}
		items = append(items, tagger.VectorItem{Label: word, Vector: vec})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vectors: %w", err)
	}
	return items, nil
}
