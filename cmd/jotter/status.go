package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the state of the store and its storage as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			return printJSON(cmd.OutOrStdout(), store.State())
		},
	}
}
