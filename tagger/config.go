package tagger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const defaultConfigFile = "config.json"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOPICTAGGER_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from the given path or the default config.json.
// A missing default file is not an error; defaults are used instead.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// LoadDotEnv loads a .env file into the process environment if it exists.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from TOPICTAGGER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := getEnv("SEEDS"); v != "" {
		c.Seeds = ParseSeeds(v)
	}
	if v := getEnv("SEEDS_PATH"); v != "" {
		c.SeedsPath = v
	}
	if v, ok := getEnvFloat("THRESHOLD"); ok {
		c.Threshold = v
	}
	if v, ok := getEnvInt("TOP_N"); ok {
		c.TopN = v
	}
	if v := getEnv("INPUT"); v != "" {
		c.Input = v
	}
	if v := getEnv("OUTPUT"); v != "" {
		c.Output = v
	}
	if v := getEnv("DUPLICATE_TAGS"); v != "" {
		c.DuplicateTags = v == "true" || v == "1"
	}
	if v := getEnv("EMBEDDER_KIND"); v != "" {
		c.Embedder.Kind = EmbedderKind(strings.ToLower(v))
	}
	if v := getEnv("VECTORS_PATH"); v != "" {
		c.Embedder.VectorsPath = v
	}
	if v := getEnv("VOCABULARY_PATH"); v != "" {
		c.Embedder.VocabularyPath = v
	}
	if v := getEnv("ORT_DLL"); v != "" {
		c.Embedder.OrtDLL = v
	}
	if v := getEnv("MODEL_PATH"); v != "" {
		c.Embedder.ModelPath = v
	}
	if v := getEnv("TOKENIZER_PATH"); v != "" {
		c.Embedder.TokenizerPath = v
	}
	if v := getEnv("TOKEN_TYPE_IDS"); v != "" {
		c.Embedder.TokenTypeIDs = v == "true" || v == "1"
	}
	if v := getEnv("LEMMATIZER_URL"); v != "" {
		c.Lemmatizer.URL = v
	}
	if v, ok := getEnvInt("LEMMATIZER_TIMEOUT_SECONDS"); ok {
		c.Lemmatizer.TimeoutSeconds = v
	}
	if v, ok := getEnvInt("LEMMATIZER_CACHE_SIZE"); ok {
		c.Lemmatizer.CacheSize = v
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ResolveSeeds returns the configured seeds, reading SeedsPath when set.
func (c *Config) ResolveSeeds() ([]string, error) {
	if c.SeedsPath == "" {
		return NormalizeSeeds(c.Seeds), nil
	}
	seeds, err := ParseSeedFile(c.SeedsPath)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seed keywords in %s", c.SeedsPath)
	}
	return NormalizeSeeds(seeds), nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func getEnvInt(key string) (int, bool) {
	if value := getEnv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue, true
		}
	}
	return 0, false
}

func getEnvFloat(key string) (float32, bool) {
	if value := getEnv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal), true
		}
	}
	return 0, false
}
