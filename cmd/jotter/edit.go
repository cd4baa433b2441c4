package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

func newEditCmd(c *cli) *cobra.Command {
	var (
		title   string
		content string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, content or color of a note",
		Long:  `Only the given fields change. Pass --content - to read the content from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("content") && !flags.Changed("color") {
				return fmt.Errorf("nothing to change: pass --title, --content or --color")
			}
			if content == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(data)
			}

			store, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			note, err := store.FindByID(id)
			if err != nil {
				return err
			}
			if flags.Changed("title") {
				note.Title = title
			}
			if flags.Changed("content") {
				note.Content = content
			}
			if flags.Changed("color") {
				note.Color = core.Color(strings.TrimSpace(color))
			}

			if _, err := store.Update(c.context(cmd), note); err != nil {
				return saveError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content (- for stdin)")
	cmd.Flags().StringVar(&color, "color", "", "New swatch color")
	return cmd
}
