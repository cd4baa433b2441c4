package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add or remove comments on a note",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <text>...",
			Short: "Comment on a note",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				store, err := c.open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()

				note, err := store.Comment(c.context(cmd), id, strings.Join(args[1:], " "))
				if err != nil {
					return saveError(err)
				}
				added := note.Comments[len(note.Comments)-1]
				fmt.Fprintf(cmd.OutOrStdout(), "Added comment %d to note %d\n", added.ID, id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id> <comment-id>",
			Short: "Remove a comment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				commentID, err := parseID(args[1])
				if err != nil {
					return err
				}

				store, err := c.open(cmd)
				if err != nil {
					return err
				}
				defer store.Close()

				if _, err := store.Uncomment(c.context(cmd), id, commentID); err != nil {
					return saveError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed comment %d from note %d\n", commentID, id)
				return nil
			},
		},
	)
	return cmd
}
