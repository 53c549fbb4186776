package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yashubustudio/topictagger/tagger"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := root.loadConfig(cmd)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the effective configuration to --config (default config.json)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path := root.configPath
				if path == "" {
					path = "config.json"
				}
				var base tagger.Config
				if _, err := os.Stat(path); err == nil {
					if base, err = tagger.LoadConfig(path); err != nil {
						return fmt.Errorf("load config: %w", err)
					}
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				cfg, err := root.mergeConfig(cmd, base)
				if err != nil {
					return err
				}
				if err := tagger.SaveConfig(path, cfg); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
				return err
			},
		},
	)
	return cmd
}
