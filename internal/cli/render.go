package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/scattaneo/pharmapartner/internal/export"
)

// RenderTable writes a titled, tab-aligned table to w.
func RenderTable(w io.Writer, t export.Table) error {
	if t.Name != "" {
		fmt.Fprintln(w, TitleStyle.Render(t.Name))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(t.Header))
	rules := make([]string, len(t.Header))
	for i, h := range t.Header {
		headers[i] = HeaderStyle.Render(h)
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}
