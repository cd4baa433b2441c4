package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

func newInitCmd(c *cli) *cobra.Command {
	var saveConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a notes directory",
		Long: `Create the data directory and its .jotter marker. With --versioning the
directory also becomes a git repository. --save-config records the
adapter, format and commit options in jotter.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.dir
			if dir == "" {
				d, err := c.resolveDir()
				if err != nil {
					return err
				}
				dir = d
			}

			opts, err := c.options(cmd, dir)
			if err != nil {
				return err
			}
			storage, err := jotter.Init(c.context(cmd), dir, opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			if closer, ok := storage.(interface{ Close() error }); ok {
				defer closer.Close()
			}

			if saveConfig {
				cfg := jotter.Config{
					Adapter:  c.adapter,
					Format:   c.format,
					TwoPhase: c.twoPhase,
				}
				if cmd.Flags().Changed("versioning") {
					v := c.versioning
					cfg.Versioning = &v
				}
				if err := jotter.SaveConfig(dir, cfg); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized jotter (%s) in %s\n", c.adapter, dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&saveConfig, "save-config", false, "Write the current options to jotter.yaml")
	return cmd
}
