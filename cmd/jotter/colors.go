package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

func newColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the swatch colors a note can have",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, color := range core.Palette {
				line := fmt.Sprintf("%s  %s", color, color.Name())
				if color == core.DefaultColor {
					line += " (" + color.Label() + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}
