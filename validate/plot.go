package validate

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// panel is one color's worth of curves on the multi-panel comparison
// figures.
type panel struct {
	color    string
	mx, my   []float64
	ox, oy   []float64
	xlo, xhi float64
	cdf      bool
}

var (
	mockColor = color.RGBA{B: 255, A: 255}
	refColor  = color.RGBA{G: 160, A: 255}
)

const (
	panelWidth  = 4 * vg.Inch
	panelHeight = 3 * vg.Inch
	plotCols    = 2
)

func stepLine(xs, ys []float64, c color.Color, step plotter.StepKind,
) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.StepStyle = step
	return line, nil
}

// newPanelPlot builds a single panel's plot. The mock catalog is drawn in
// blue, the reference data in green.
func newPanelPlot(p *panel, catalogName, dataName string) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = p.color
	plt.X.Label.Text = p.color

	mline, err := stepLine(p.mx, p.my, mockColor, plotter.MidStep)
	if err != nil {
		return nil, err
	}
	oline, err := stepLine(p.ox, p.oy, refColor, plotter.PreStep)
	if err != nil {
		return nil, err
	}

	plt.Add(mline, oline)
	plt.Legend.Add(catalogName, mline)
	plt.Legend.Add(dataName, oline)
	plt.Legend.Top = true
	plt.Legend.Left = true

	// Axis ranges are set after Add, which widens them to fit the data.
	plt.X.Min, plt.X.Max = p.xlo, p.xhi
	if p.cdf {
		plt.Y.Min, plt.Y.Max = 0, 1
	} else {
		plt.Y.Min = 0
	}

	return plt, nil
}

// emptyPlot fills unused grid cells. Finite axis ranges keep the alignment
// pass from choking on an empty plot.
func emptyPlot() *plot.Plot {
	plt := plot.New()
	plt.X.Min, plt.X.Max = 0, 1
	plt.Y.Min, plt.Y.Max = 0, 1
	plt.HideAxes()
	return plt
}

// writePanels renders the non-nil panels onto a two-column grid and writes
// the figure to fname as a PNG.
func writePanels(
	fname, catalogName, dataName string, panels []*panel,
) error {
	live := []*panel{}
	for _, p := range panels {
		if p != nil {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return fmt.Errorf("There are no distributions to plot.")
	}

	rows := (len(live) + plotCols - 1) / plotCols
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, plotCols)
		for j := range plots[i] {
			idx := i*plotCols + j
			if idx >= len(live) {
				plots[i][j] = emptyPlot()
				continue
			}
			plt, err := newPanelPlot(live[idx], catalogName, dataName)
			if err != nil {
				return err
			}
			plots[i][j] = plt
		}
	}

	return writeGrid(fname, plots)
}

// writeGrid renders a full grid of plots into a single PNG at fname.
func writeGrid(fname string, plots [][]*plot.Plot) error {
	rows := len(plots)
	img := vgimg.New(plotCols*panelWidth, vg.Length(rows)*panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: plotCols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
