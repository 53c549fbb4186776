package tagger

import (
	"context"
	"encoding/json"
)

// EmbedderKind selects the nearest-neighbour provider.
type EmbedderKind string

const (
	// KindWordVec uses pretrained word vectors (text file or bbolt database).
	KindWordVec EmbedderKind = "wordvec"
	// KindONNX embeds a candidate vocabulary with an ONNX sentence embedding model.
	KindONNX EmbedderKind = "onnx"
)

// Neighbor is a word returned by a NeighborProvider with its similarity to the query.
type Neighbor struct {
	Word  string  `json:"word"`
	Score float32 `json:"score"`
}

// NeighborProvider returns the words most similar to a query word, best first.
// Unknown words yield an empty slice, not an error.
type NeighborProvider interface {
	MostSimilar(ctx context.Context, word string) ([]Neighbor, error)
}

// Lemmatizer turns raw text into a sequence of lemmas.
type Lemmatizer interface {
	Lemmatize(ctx context.Context, text string) ([]string, error)
}

// Record is one annotatable unit of a document.
type Record interface {
	// Fields returns the text content of every title and text field under the
	// record's descriptions, in document order.
	Fields() []string
	// TagIDs returns the ids already present in the record's tag container.
	TagIDs() []string
	// AppendTags creates the tag container when missing and appends one tag per id.
	AppendTags(ids []string)
}

// Document is a parsed record collection.
type Document interface {
	Records() []Record
}

// EmbedderConfig selects and configures the nearest-neighbour provider.
type EmbedderConfig struct {
	Kind           EmbedderKind `json:"kind" validate:"oneof=wordvec onnx"`
	VectorsPath    string       `json:"vectorsPath" validate:"required_if=Kind wordvec"`
	VocabularyPath string       `json:"vocabularyPath" validate:"required_if=Kind onnx"`
	OrtDLL         string       `json:"ortDll"`
	ModelPath      string       `json:"modelPath" validate:"required_if=Kind onnx"`
	TokenizerPath  string       `json:"tokenizerPath" validate:"required_if=Kind onnx"`
	MaxSeqLen      int          `json:"maxSeqLen" validate:"gte=0"`
	// TokenTypeIDs feeds a zeroed token_type_ids input, required by BERT-style exports.
	TokenTypeIDs   bool         `json:"tokenTypeIds"`
	CacheDir       string       `json:"cacheDir"`
	ModelID        string       `json:"modelId"`
}

// LemmatizerConfig configures the remote lemmatization service.
type LemmatizerConfig struct {
	URL            string `json:"url" validate:"required,url"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"gte=1"`
	CacheSize      int    `json:"cacheSize" validate:"gte=0"`
}

// LogConfig controls the run logger.
type LogConfig struct {
	Level string `json:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `json:"json"`
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	Seeds     []string `json:"seeds" validate:"required_without=SeedsPath,dive,required"`
	SeedsPath string   `json:"seedsPath"`
	Threshold float32  `json:"threshold" validate:"gt=0,lt=1"`
	TopN      int      `json:"topN" validate:"gte=1"`

	Input  string `json:"input" validate:"required"`
	Output string `json:"output" validate:"required"`

	// DuplicateTags appends resolved tags even when the container already holds them.
	DuplicateTags bool `json:"duplicateTags"`

	Embedder   EmbedderConfig   `json:"embedder"`
	Lemmatizer LemmatizerConfig `json:"lemmatizer"`
	Log        LogConfig        `json:"log"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Seeds) == 0 && c.SeedsPath == "" {
		c.Seeds = DefaultSeedKeywords()
	}
	if c.Threshold == 0 {
		c.Threshold = 0.6
	}
	if c.TopN <= 0 {
		c.TopN = 10
	}
	if c.Input == "" {
		c.Input = "input.xml"
	}
	if c.Output == "" {
		c.Output = "output.xml"
	}
	if c.Embedder.Kind == "" {
		c.Embedder.Kind = KindWordVec
	}
	if c.Embedder.Kind == KindWordVec && c.Embedder.VectorsPath == "" {
		c.Embedder.VectorsPath = "data/glove-hu_152.txt"
	}
	if c.Embedder.MaxSeqLen == 0 {
		c.Embedder.MaxSeqLen = 512
	}
	if c.Lemmatizer.URL == "" {
		c.Lemmatizer.URL = "http://emtsv.elte-dh.hu:5000/tok/morph/pos"
	}
	if c.Lemmatizer.TimeoutSeconds == 0 {
		c.Lemmatizer.TimeoutSeconds = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
