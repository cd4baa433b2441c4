package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		tag    string
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long: `List notes in insertion order.
--tag accepts glob patterns, e.g. --tag 'work/*'.
--search matches title and content ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			notes := store.Notes()
			if tag != "" {
				if notes, err = store.FilterByTag(tag); err != nil {
					return err
				}
			}
			if search != "" {
				notes = intersect(notes, store.Search(search))
			}
			if notes == nil {
				notes = []core.Note{}
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), notes)
			}
			return printList(cmd.OutOrStdout(), notes)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only notes with a tag matching this pattern")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only notes whose title or content contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

// intersect keeps the notes of a that also appear in b, in the order of a.
func intersect(a, b []core.Note) []core.Note {
	keep := make(map[int64]bool, len(b))
	for _, n := range b {
		keep[n.ID] = true
	}
	var out []core.Note
	for _, n := range a {
		if keep[n.ID] {
			out = append(out, n)
		}
	}
	return out
}
