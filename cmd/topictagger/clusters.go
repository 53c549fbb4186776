package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/topictagger/internal/app"
	"yashubustudio/topictagger/tagger"
)

func newClustersCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Build the cluster map and print every tag with its words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			l := newLogger(cmd, cfg)
			nb, closeFn, err := app.OpenNeighbors(cmd.Context(), cfg, l)
			if err != nil {
				return err
			}
			defer closeFn()
			seeds, err := cfg.ResolveSeeds()
			if err != nil {
				return err
			}
			m, err := tagger.BuildClusterMap(cmd.Context(), seeds, nb, cfg.Threshold)
			if err != nil {
				return err
			}
			return printClusters(cmd, m.Clusters(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print clusters as JSON")
	return cmd
}

func printClusters(cmd *cobra.Command, clusters []tagger.Cluster, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(clusters)
	}
	for _, c := range clusters {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", c.Tag, strings.Join(c.Words, " ")); err != nil {
			return err
		}
	}
	return nil
}
