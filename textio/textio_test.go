package textio

import (
	"math"
	"os"
	"path"
	"testing"
)

func TestCommentString(t *testing.T) {
	tests := []struct {
		names []string
		out   string
	}{
		{[]string{"A"}, "# Column contents: A(0)"},
		{[]string{"A", "B"}, "# Column contents: A(0) B(1)"},
		{[]string{}, "# Column contents:"},
	}

	for i, test := range tests {
		out := CommentString(test.names)
		if out != test.out {
			t.Errorf("%d) Expected '%s', got '%s'.", i, test.out, out)
		}
	}
}

func TestFormatColsAligned(t *testing.T) {
	cols := [][]float64{{1, 10, 100}, {-1.5, 2, 3}}
	lines := FormatCols(cols, "%.6g")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d.", len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("Line %d has width %d, line 0 has width %d.",
				i, len(lines[i]), len(lines[0]))
		}
	}
}

func TestWriteReadRows(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "quantiles.txt")

	rows := [][]float64{
		{-0.5, 0.25, 0.5, 0.75, 1.5},
		{0, 0, 0, 0, 0},
		{1, 2, 3, 4, 5},
	}

	comment := CommentString(
		[]string{"q2.5", "q16", "q50", "q84", "q97.5"},
	)
	if err := WriteRows(fname, comment, rows); err != nil {
		t.Fatalf("WriteRows failed: %s", err.Error())
	}

	got, err := ReadRows(fname, 5)
	if err != nil {
		t.Fatalf("ReadRows failed: %s", err.Error())
	}

	if len(got) != len(rows) {
		t.Fatalf("Expected %d rows, got %d.", len(rows), len(got))
	}
	for i := range rows {
		for j := range rows[i] {
			if math.Abs(got[i][j]-rows[i][j]) > 1e-6 {
				t.Errorf("Row %d column %d: expected %g, got %g.",
					i, j, rows[i][j], got[i][j])
			}
		}
	}
}

func TestAppendLine(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "summary.txt")

	if err := AppendLine(fname, "first"); err != nil {
		t.Fatalf("AppendLine failed: %s", err.Error())
	}
	if err := AppendLine(fname, "second"); err != nil {
		t.Fatalf("AppendLine failed: %s", err.Error())
	}

	bs, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("Could not read back summary file: %s", err.Error())
	}
	if string(bs) != "first\nsecond\n" {
		t.Errorf("Unexpected summary contents: %q", string(bs))
	}
}
