package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
)

func newHistoryCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change history of a versioned notes directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := jotter.History(c.context(cmd), store, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries (0 for all)")
	return cmd
}
