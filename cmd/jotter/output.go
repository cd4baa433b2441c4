package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/jotter/pkg/core"
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printList renders notes as a table of id, color, title and tags.
func printList(w io.Writer, notes []core.Note) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLOR\tTITLE\tTAGS")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, colorName(n.Color), firstLine(n.Title), strings.Join(n.Tags, ", "))
	}
	return tw.Flush()
}

// printNote renders the detail view of a note. Content is printed verbatim.
func printNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "# %s\n", n.Title)
	fmt.Fprintf(w, "id: %d  color: %s\n", n.ID, n.Color.Label())
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "tags: [%s]\n", strings.Join(n.Tags, "] ["))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, n.Content)
	if !strings.HasSuffix(n.Content, "\n") {
		fmt.Fprintln(w)
	}

	if len(n.Comments) == 0 {
		return
	}
	fmt.Fprintf(w, "\ncomments (%d):\n", len(n.Comments))
	for _, cm := range n.Comments {
		fmt.Fprintf(w, "  [%d] %s\n", cm.ID, cm.Text)
	}
}

func colorName(c core.Color) string {
	if name := c.Name(); name != "" {
		return name
	}
	return string(c)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
