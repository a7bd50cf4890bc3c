package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mrz1836/sigil/internal/domain"
)

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled table rendering.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	header := ""
	for i, col := range t.columns {
		if i > 0 {
			header += " "
		}
		header += fmt.Sprintf(t.formatSpec(col, 0), col.Name)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(header))
}

// WriteRow writes a data row to the table.
func (t *Table) WriteRow(values ...string) {
	t.writeRow(values, -1, "", "")
}

// WriteStyledRow writes a data row with one styled cell. The plain value is
// used for width accounting since ANSI codes inflate the string length.
func (t *Table) WriteStyledRow(values []string, styledIndex int, styledValue, plainValue string) {
	t.writeRow(values, styledIndex, styledValue, plainValue)
}

func (t *Table) writeRow(values []string, styledIndex int, styledValue, plainValue string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		if i == styledIndex {
			offset := len(styledValue) - len(plainValue)
			row += fmt.Sprintf(t.formatSpec(col, offset), styledValue)
			continue
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		// Truncate if needed (require Width > 1 to avoid slice bounds panic)
		if col.Width > 1 && len(value) > col.Width {
			value = value[:col.Width-1] + "…"
		}
		row += fmt.Sprintf(t.formatSpec(col, 0), value)
	}
	_, _ = fmt.Fprintln(t.w, row)
}

func (t *Table) formatSpec(col TableColumn, offset int) string {
	width := col.Width + offset
	if col.Align == AlignRight {
		return fmt.Sprintf("%%%ds", width)
	}
	return fmt.Sprintf("%%-%ds", width)
}

// WriteAlgorithmTable renders the algorithm listing. The default algorithm
// is marked in the last column.
func WriteAlgorithmTable(w io.Writer, algorithms []domain.Algorithm) {
	table := NewTable(w, []TableColumn{
		{Name: "ID", Width: 12},
		{Name: "NAME", Width: 12},
		{Name: "FAMILY", Width: 16},
		{Name: "DEFAULT", Width: 7},
	})
	table.WriteHeader()
	for _, alg := range algorithms {
		marker := ""
		if alg.IsDefault {
			marker = "*"
		}
		table.WriteRow(alg.ID, alg.Name, string(alg.Family), marker)
	}
}

// WriteCurveTable renders the curve listing with status coloring.
func WriteCurveTable(w io.Writer, curves []domain.Curve) {
	table := NewTable(w, []TableColumn{
		{Name: "NAME", Width: 12},
		{Name: "BITS", Width: 5, Align: AlignRight},
		{Name: "DIGEST", Width: 8},
		{Name: "STATUS", Width: 9},
	})
	table.WriteHeader()

	styles := NewTableStyles()
	for _, curve := range curves {
		status := curve.Status
		if status == "" {
			status = domain.CurveEnabled
		}
		plain := string(status)
		styled := plain
		if color, ok := styles.StatusColors[status]; ok {
			styled = styles.Cell.Foreground(color).Render(plain)
		}
		table.WriteStyledRow(
			[]string{curve.Name, strconv.Itoa(curve.BitSize), curve.DigestHint(), ""},
			3, styled, plain,
		)
	}
}
