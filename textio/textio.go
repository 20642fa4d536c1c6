/*package textio writes and reads the whitespace-separated numeric tables
that descqa persists between runs (quantile files and the like).*/
package textio

import (
	"fmt"
	"os"
	"strings"

	"github.com/phil-mansfield/table"
)

// CommentString returns a '#' header line describing the contents of each
// column.
func CommentString(names []string) string {
	tokens := []string{"# Column contents:"}
	for i, name := range names {
		tokens = append(tokens, fmt.Sprintf("%s(%d)", name, i))
	}
	return strings.Join(tokens, " ")
}

// FormatCols formats columns of floats into width-aligned text lines using
// the given verb (e.g. "%.6g"). All columns must have the same height.
func FormatCols(cols [][]float64, verb string) []string {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return []string{}
	}

	height := len(cols[0])
	formatted := make([][]string, len(cols))
	for i, col := range cols {
		if len(col) != height {
			panic("Columns of unequal height.")
		}
		formatted[i] = formatCol(col, verb)
	}

	lines := make([]string, height)
	tokens := make([]string, len(cols))
	for i := 0; i < height; i++ {
		for j := range formatted {
			tokens[j] = formatted[j][i]
		}
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func formatCol(col []float64, verb string) []string {
	width := 0
	for i := range col {
		if n := len(fmt.Sprintf(verb, col[i])); n > width {
			width = n
		}
	}

	out := make([]string, len(col))
	for i := range col {
		out[i] = fmt.Sprintf("%*s", width, fmt.Sprintf(verb, col[i]))
	}

	return out
}

// WriteRows writes a row-major float matrix to fname, one line per row,
// preceded by comment (if non-empty). Used for the per-color quantile
// files, where row order is the configured color order.
func WriteRows(fname, comment string, rows [][]float64) error {
	cols := transpose(rows)

	lines := []string{}
	if comment != "" {
		lines = append(lines, comment)
	}
	lines = append(lines, FormatCols(cols, "%.6g")...)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return err
		}
	}
	return nil
}

// ReadRows reads back a row-major float matrix with the given number of
// columns, skipping '#' comment lines.
func ReadRows(fname string, ncols int) ([][]float64, error) {
	colIdxs := make([]int, ncols)
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	return transpose(cols), nil
}

func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return [][]float64{}
	}

	out := make([][]float64, len(m[0]))
	for i := range out {
		out[i] = make([]float64, len(m))
		for j := range m {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// AppendLine appends a single text line to fname, creating it if needed.
// Used for the append-only summary file.
func AppendLine(fname, line string) error {
	f, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, line)
	return err
}
