package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

const rule = "───────────────────────────────────────────────────────────────"

// Table is a titled grid of preformatted cells
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Append adds a row, missing cells are left empty
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Column returns all cells of the named column
func (t *Table) Column(name string) ([]string, error) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("table %q has no column %q", t.Title, name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Render writes the table with aligned columns
func (t *Table) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s:\n%s\n", strings.ToUpper(t.Title), rule); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprint(w, "  (none)\n\n")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	underline := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		underline[i] = strings.Repeat("─", utf8.RuneCountInString(c))
	}
	writeRow(tw, t.Columns)
	writeRow(tw, underline)
	for _, row := range t.Rows {
		writeRow(tw, row)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeRow(w io.Writer, cells []string) {
	fmt.Fprintf(w, "  %s\n", strings.Join(cells, "\t"))
}

// Num formats a float compactly with six significant digits
func Num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
