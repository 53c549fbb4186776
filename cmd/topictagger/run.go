package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/topictagger/internal/app"
)

type runOptions struct {
	input         string
	output        string
	lemmatizerURL string
	lemmaCache    int
	duplicateTags bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tag every record of the input document and write the output document",
		Long: `Builds the cluster map, lemmatizes the title and text fields of every record and
appends the matching tags in sorted order. Any lemmatizer failure aborts the run and no
output is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTagging(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "Input XML document (default input.xml)")
	f.StringVarP(&opts.output, "output", "o", "", "Output XML document (default output.xml)")
	f.StringVar(&opts.lemmatizerURL, "lemmatizer-url", "", "emtsv tok/morph/pos endpoint")
	f.IntVar(&opts.lemmaCache, "lemma-cache", 0, "Memoize up to N lemmatized texts (0 disables)")
	f.BoolVar(&opts.duplicateTags, "duplicate-tags", false, "Append tags even when the record already has them")
	return cmd
}

func runTagging(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("lemmatizer-url") {
		cfg.Lemmatizer.URL = opts.lemmatizerURL
	}
	if flags.Changed("lemma-cache") {
		cfg.Lemmatizer.CacheSize = opts.lemmaCache
	}
	if flags.Changed("duplicate-tags") {
		cfg.DuplicateTags = opts.duplicateTags
	}

	res, err := app.Run(cmd.Context(), app.Options{
		Config: cfg,
		Logger: newLogger(cmd, cfg),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d tagged, %d tags appended\n",
		res.Output, res.Summary.Records, res.Summary.TaggedRecords, res.Summary.TagsAppended)
	return err
}
