package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

func newTagCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove note tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <tag>...",
			Short: "Add tags to a note",
			Long:  `Add tags in order. A tag the note already has is reported and skipped.`,
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.editTags(cmd, args, true)
			},
		},
		&cobra.Command{
			Use:   "rm <id> <tag>...",
			Short: "Remove tags from a note",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.editTags(cmd, args, false)
			},
		},
	)
	return cmd
}

func (c *cli) editTags(cmd *cobra.Command, args []string, add bool) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	store, err := c.open(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := c.context(cmd)
	var note core.Note
	for _, tag := range args[1:] {
		if add {
			note, err = store.AddTag(ctx, id, tag)
		} else {
			note, err = store.RemoveTag(ctx, id, tag)
		}
		switch {
		case err == nil:
		case add && errors.Is(err, core.ErrValidation):
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", err)
		default:
			return saveError(err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Note %d tags: %v\n", id, note.Tags)
	return nil
}
