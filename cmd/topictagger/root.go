package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"yashubustudio/topictagger/internal/logger"
	"yashubustudio/topictagger/tagger"
)

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logJSON    bool

	seeds     []string
	seedsFile string
	threshold float32
	topN      int
	embedder  string
	vectors   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "topictagger",
		Short: "Tag XML records with topics grown from seed keywords",
		Long: `topictagger expands seed keywords into clusters of similar words using word
embeddings, lemmatizes the title and text of every record through an emtsv service,
and appends one tag per seed whose cluster matches.

Configuration is read from config.json (or --config), then TOPICTAGGER_* environment
variables (a .env file is loaded first), then explicitly set flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json when present)")
	pf.StringVar(&opts.envFile, "env-file", ".env", "Path to a .env file loaded before reading the environment")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Emit logs as JSON")
	pf.StringSliceVar(&opts.seeds, "seeds", nil, "Seed keywords (comma separated)")
	pf.StringVar(&opts.seedsFile, "seeds-file", "", "File with one seed keyword per line")
	pf.Float32Var(&opts.threshold, "threshold", 0, "Similarity a neighbour must exceed to join a cluster")
	pf.IntVar(&opts.topN, "top-n", 0, "Neighbours requested per seed")
	pf.StringVar(&opts.embedder, "embedder", "", "Neighbour provider: wordvec or onnx")
	pf.StringVar(&opts.vectors, "vectors", "", "Word vector file (.txt, or .db/.bolt database)")

	cmd.AddCommand(
		newRunCmd(opts),
		newClustersCmd(opts),
		newNeighborsCmd(opts),
		newVectorsCmd(),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig merges the config file, the environment and explicitly set flags.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (tagger.Config, error) {
	cfg, err := tagger.LoadConfig(o.configPath)
	if err != nil {
		return tagger.Config{}, fmt.Errorf("load config: %w", err)
	}
	return o.mergeConfig(cmd, cfg)
}

// mergeConfig applies the environment and explicitly set flags on top of cfg.
func (o *rootOptions) mergeConfig(cmd *cobra.Command, cfg tagger.Config) (tagger.Config, error) {
	if err := tagger.LoadDotEnv(o.envFile); err != nil {
		return tagger.Config{}, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = o.logJSON
	}
	if flags.Changed("seeds") {
		cfg.Seeds = tagger.NormalizeSeeds(o.seeds)
		cfg.SeedsPath = ""
	}
	if flags.Changed("seeds-file") {
		cfg.SeedsPath = o.seedsFile
	}
	if flags.Changed("threshold") {
		cfg.Threshold = o.threshold
	}
	if flags.Changed("top-n") {
		cfg.TopN = o.topN
	}
	if flags.Changed("embedder") {
		cfg.Embedder.Kind = tagger.EmbedderKind(o.embedder)
	}
	if flags.Changed("vectors") {
		cfg.Embedder.VectorsPath = o.vectors
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return tagger.Config{}, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg tagger.Config) *log.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
}
