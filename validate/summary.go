package validate

import (
	"fmt"
	"image/color"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nsevilla/descqa/textio"
)

// SummaryEntry names one finished validation run: the catalog's display
// name and the output directory its quantile files were written to.
type SummaryEntry struct {
	Name, Dir string
}

var (
	band95Color = color.RGBA{R: 180, G: 220, B: 180, A: 255}
	band68Color = color.RGBA{R: 120, G: 190, B: 120, A: 255}
)

// readQuantiles reads a run's five-column quantile file, one row per color.
func readQuantiles(dir, file string, nColors int) ([][]float64, error) {
	rows, err := textio.ReadRows(path.Join(dir, file), 5)
	if err != nil {
		return nil, err
	}
	if len(rows) != nColors {
		return nil, fmt.Errorf("The quantile file %s has %d rows, but %d "+
			"colors were configured.", path.Join(dir, file),
			len(rows), nColors)
	}
	return rows, nil
}

// refBand builds a horizontal shaded band spanning the catalog axis between
// two reference quantile levels.
func refBand(lo, hi float64, n int, c color.Color) (*plotter.Polygon, error) {
	xlo, xhi := -0.5, float64(n)-0.5
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: xlo, Y: lo}, {X: xhi, Y: lo},
		{X: xhi, Y: hi}, {X: xlo, Y: hi},
	})
	if err != nil {
		return nil, err
	}
	poly.Color = c
	poly.LineStyle.Color = c
	return poly, nil
}

// newSummaryPlot builds one color's panel: the reference median and its 68%
// and 95% quantile bands behind one box per catalog.
func newSummaryPlot(
	colorName, dataName string, names []string,
	catQ [][]float64, refQ []float64,
) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = colorName
	plt.Y.Label.Text = colorName

	n := len(names)
	band95, err := refBand(refQ[0], refQ[4], n, band95Color)
	if err != nil {
		return nil, err
	}
	band68, err := refBand(refQ[1], refQ[3], n, band68Color)
	if err != nil {
		return nil, err
	}

	median, err := stepLine(
		[]float64{-0.5, float64(n) - 0.5}, []float64{refQ[2], refQ[2]},
		refColor, plotter.NoStep,
	)
	if err != nil {
		return nil, err
	}

	plt.Add(band95, band68, median)
	plt.Legend.Add(dataName, median)
	plt.Legend.Top = true

	for i, q := range catQ {
		box, err := plotter.NewBoxPlot(
			vg.Points(20), float64(i), plotter.Values(q),
		)
		if err != nil {
			return nil, err
		}
		plt.Add(box)
	}

	plt.NominalX(names...)
	return plt, nil
}

// Summary renders the cross-catalog comparison figure: for each color, the
// quantile spread of every catalog as a box beside the reference data's
// bands, and writes it to fname as a PNG.
func Summary(
	fname string, entries []SummaryEntry, colors []string, dataName string,
) error {
	if len(entries) == 0 {
		return fmt.Errorf("There are no catalogs to summarize.")
	}
	if len(colors) == 0 {
		return fmt.Errorf("There are no colors to summarize.")
	}

	names := make([]string, len(entries))
	catQ := make([][][]float64, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		rows, err := readQuantiles(e.Dir, CatalogOutputFile, len(colors))
		if err != nil {
			return err
		}
		catQ[i] = rows
	}

	// Every run writes the same reference quantiles, so the first run's
	// copy serves for all of them.
	refQ, err := readQuantiles(entries[0].Dir, ValidationOutputFile,
		len(colors))
	if err != nil {
		return err
	}

	rows := (len(colors) + plotCols - 1) / plotCols
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, plotCols)
		for j := range plots[i] {
			idx := i*plotCols + j
			if idx >= len(colors) {
				plots[i][j] = emptyPlot()
				continue
			}

			perCatalog := make([][]float64, len(entries))
			for k := range catQ {
				perCatalog[k] = catQ[k][idx]
			}
			plt, err := newSummaryPlot(
				colors[idx], dataName, names, perCatalog, refQ[idx],
			)
			if err != nil {
				return err
			}
			plots[i][j] = plt
		}
	}

	return writeGrid(fname, plots)
}
