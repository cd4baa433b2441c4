package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

func newAddCmd(c *cli) *cobra.Command {
	var (
		title   string
		content string
		color   string
		tags    []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Long:  `Create a note. Pass --content - to read the content from stdin.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			note, err := store.Create(c.context(cmd), core.Draft{
				Title:   title,
				Content: content,
				Color:   core.Color(strings.TrimSpace(color)),
				Tags:    tags,
			})
			if err != nil {
				return saveError(err)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), note)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created note %d\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Note content (required, - for stdin)")
	cmd.Flags().StringVar(&color, "color", string(core.DefaultColor), "Swatch color, see 'jotter colors'")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the created note as JSON")
	return cmd
}
