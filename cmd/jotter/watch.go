package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jlifecycle "github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and report whenever the notes change on disk",
		Long: `Watch the notes slot for changes made by other processes (another
jotter, an editor, a git checkout). Each change reloads the collection and
prints the new note count. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.context(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			changes, err := store.Watch(ctx)
			if err != nil {
				return fmt.Errorf("cannot watch with the %s adapter: %w", c.adapter, err)
			}

			source := jlifecycle.NewSource(changes, jlifecycle.WithTypes(core.EventReload))
			if err := source.Start(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %d notes...\n", store.Len())
			for e := range source.Events() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d notes\n", e.String(), store.Len())
			}

			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
