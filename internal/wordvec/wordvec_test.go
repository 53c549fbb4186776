package wordvec

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/topictagger/tagger"
)

const sampleVectors = `alma 1 0 0
körte 0.8 0.6 0
gyümölcs 0.9 0.1 0
autó 0 0 1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadText(t *testing.T) {
	items, err := ReadText(strings.NewReader(sampleVectors))
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "körte", items[1].Label)
	assert.Equal(t, []float32{0.8, 0.6, 0}, items[1].Vector)
}

func TestReadTextWord2VecHeader(t *testing.T) {
	items, err := ReadText(strings.NewReader("2 2\nalma 1 0\n\nkörte 0 1\n"))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = ReadText(strings.NewReader("2 3\nalma 1 0\n"))
	require.Error(t, err)
}

func TestReadTextErrors(t *testing.T) {
	_, err := ReadText(strings.NewReader("alma 1 0\nkörte 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadText(strings.NewReader("alma 1 x\n"))
	require.Error(t, err)

	_, err = ReadText(strings.NewReader("alma\n"))
	require.Error(t, err)
}

func TestProviderMostSimilar(t *testing.T) {
	p, err := Open(writeFile(t, "vectors.txt", sampleVectors), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Size())

	got, err := p.MostSimilar(context.Background(), "alma")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "gyümölcs", got[0].Word)
	assert.Equal(t, "körte", got[1].Word)
	assert.InDelta(t, 0.8, got[1].Score, 1e-6)
	for _, n := range got {
		assert.NotEqual(t, "alma", n.Word)
	}
}

func TestProviderUnknownWord(t *testing.T) {
	p := NewProvider([]tagger.VectorItem{{Label: "alma", Vector: []float32{1}}}, 0)
	got, err := p.MostSimilar(context.Background(), "banán")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProviderCancelled(t *testing.T) {
	p := NewProvider(nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.MostSimilar(ctx, "alma")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenEmpty(t *testing.T) {
	_, err := Open(writeFile(t, "empty.txt", ""), 10)
	require.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")
	s, err := OpenStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Put([]tagger.VectorItem{
		{Label: "körte", Vector: []float32{0.5, -0.25}},
		{Label: "alma", Vector: []float32{1, 0}},
	}))
	err = s.Put([]tagger.VectorItem{{Label: "autó", Vector: []float32{1, 2, 3}}})
	require.Error(t, err)

	dim, err := s.Dim()
	require.NoError(t, err)
	assert.Equal(t, 2, dim)

	vec, ok, err := s.get("körte")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, -0.25}, vec)
	_, ok, err = s.get("banán")
	require.NoError(t, err)
	assert.False(t, ok)

	items, err := s.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alma", items[0].Label)
	require.NoError(t, s.Close())
}

func TestImportThenOpen(t *testing.T) {
	src := writeFile(t, "vectors.txt", sampleVectors)
	dst := filepath.Join(t.TempDir(), "vectors.bolt")

	stats, err := Import(src, dst)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Vectors: 4, Dim: 3}, stats)

	p, err := Open(dst, 1)
	require.NoError(t, err)
	got, err := p.MostSimilar(context.Background(), "körte")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "gyümölcs", got[0].Word)
}

func TestVectorEncoding(t *testing.T) {
	vec := []float32{1.5, -2, 0}
	got, err := decodeVector(encodeVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)

	_, err = decodeVector([]byte{1, 2, 3})
	require.Error(t, err)
}
