package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table renders aligned columns for text output.
type Table struct {
	headers   []string
	rows      [][]string
	noHeader  bool
	separator string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		separator: "  ",
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// SetNoHeader suppresses the header row.
func (t *Table) SetNoHeader(noHeader bool) {
	t.noHeader = noHeader
}

// SetSeparator sets the column separator.
func (t *Table) SetSeparator(sep string) {
	t.separator = sep
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return nil
	}

	widths := t.widths()

	if !t.noHeader && len(t.headers) > 0 {
		if err := t.renderRow(w, t.headers, widths); err != nil {
			return err
		}
		rule := make([]string, len(widths))
		for i, width := range widths {
			rule[i] = strings.Repeat("-", width)
		}
		if err := t.renderRow(w, rule, widths); err != nil {
			return err
		}
	}

	for _, row := range t.rows {
		if err := t.renderRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// String returns the table as a string.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) widths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		numCols = max(numCols, len(row))
	}

	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

func (t *Table) renderRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", width-utf8.RuneCountInString(cell))
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, t.separator), " "))
	return err
}
