package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows in left-aligned columns without borders. Cell widths are
// measured in terminal cells, so styled text and CJK titles line up.
type Table struct {
	// Indent is prepended to every rendered line.
	Indent string
	// Gap is the number of spaces between columns.
	Gap int

	cols int
	rows [][]string
}

// NewTable returns a table with cols columns and a two-space gap.
func NewTable(cols int) *Table {
	return &Table{cols: cols, Gap: 2}
}

// AddRow appends a row. Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, t.cols)
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len is the number of rows added.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	w := make([]int, t.cols)
	for _, row := range t.rows {
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

// String renders the table, one line per row. The last column is not padded.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}
	widths := t.widths()
	gap := strings.Repeat(" ", max(t.Gap, 0))

	var sb strings.Builder
	for _, row := range t.rows {
		sb.WriteString(t.Indent)
		last := len(row) - 1
		for i, cell := range row {
			sb.WriteString(cell)
			if i == last {
				break
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			sb.WriteString(gap)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
