package tagger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCacheRoundTrip(t *testing.T) {
	c := vectorCache{dir: t.TempDir()}
	key := cacheKey("model", "alma")
	require.NoError(t, c.save(key, []float32{0.5, -1.25}))

	vec, err := c.load(key)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -1.25}, vec)
}

func TestVectorCacheRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	c := vectorCache{dir: dir}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.bin"), []byte{9, 0, 0, 0, 1}, 0o644))
	_, err := c.load("bad")
	require.Error(t, err)
}

func TestVectorCacheDisabled(t *testing.T) {
	var c vectorCache
	require.NoError(t, c.save("k", []float32{1}))
	_, err := c.load("k")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCacheKeyDependsOnModel(t *testing.T) {
	assert.NotEqual(t, cacheKey("a", "alma"), cacheKey("b", "alma"))
	assert.Equal(t, cacheKey("a", "alma"), cacheKey("a", "alma"))
}

func TestOrtEmbedderUninitialized(t *testing.T) {
	var o *OrtEmbedder
	require.NoError(t, o.Close())
	_, err := (&OrtEmbedder{}).EmbedText(context.Background(), "alma")
	require.Error(t, err)
}
