package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/topictagger/internal/wordvec"
)

func newVectorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Manage word vector files",
	}
	cmd.AddCommand(newVectorsImportCmd())
	return cmd
}

func newVectorsImportCmd() *cobra.Command {
	var src, db string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a text word vector file into a vector database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := wordvec.Import(src, db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d vectors (dim %d) into %s\n", stats.Vectors, stats.Dim, db)
			return err
		},
	}
	cmd.Flags().StringVar(&src, "src", "", "Text vector file (word f1 f2 ...)")
	cmd.Flags().StringVar(&db, "db", "", "Destination database file")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
