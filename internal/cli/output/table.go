package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders rows under a header: a box-drawn table in text mode and a
// markdown table otherwise. JSON callers should use JSON instead.
// A non-empty footer is rendered as a closing row.
func (r *Renderer) Table(header []string, rows [][]string, footer []string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.markdownTable(header, rows, footer)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	if len(footer) > 0 {
		t.AppendFooter(toRow(footer))
	}
	t.Render()
}

func (r *Renderer) markdownTable(header []string, rows [][]string, footer []string) {
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(header, " | "))
	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows {
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(row, " | "))
	}
	if len(footer) > 0 {
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(footer, " | "))
	}
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
