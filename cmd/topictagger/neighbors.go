package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/topictagger/internal/app"
)

func newNeighborsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors WORD...",
		Short: "Print the nearest neighbours of each word and whether they pass the threshold",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			nb, closeFn, err := app.OpenNeighbors(cmd.Context(), cfg, newLogger(cmd, cfg))
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			for _, word := range args {
				neighbors, err := nb.MostSimilar(cmd.Context(), word)
				if err != nil {
					return fmt.Errorf("neighbors of %q: %w", word, err)
				}
				if len(neighbors) == 0 {
					fmt.Fprintf(out, "%s\t(no neighbours)\n", word)
					continue
				}
				for _, n := range neighbors {
					mark := "-"
					if n.Score > cfg.Threshold {
						mark = "+"
					}
					fmt.Fprintf(out, "%s\t%s\t%.4f\t%s\n", word, n.Word, n.Score, mark)
				}
			}
			return nil
		},
	}
}
