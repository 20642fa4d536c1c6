/*package validate compares the color distributions of a mock galaxy catalog
against observational reference data (DEEP2 or SDSS), producing plots and
summary statistics.*/
package validate

import (
	"fmt"
	"math"
	"path"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/floats"

	"github.com/nsevilla/descqa/catalog"
	"github.com/nsevilla/descqa/logging"
	"github.com/nsevilla/descqa/smooth"
	"github.com/nsevilla/descqa/stats"
	"github.com/nsevilla/descqa/textio"
)

// Output files written into the run's output directory.
const (
	CatalogOutputFile    = "catalog_quantiles.txt"
	ValidationOutputFile = "validation_quantiles.txt"
	SummaryOutputFile    = "summary.txt"
	PlotCDFFile          = "plot_cdf.png"
	PlotPDFFile          = "plot_pdf.png"
)

// smoothingWidth is the moving-average window, in bins, applied to
// histograms before the PDF plot.
const smoothingWidth = 20

// Config holds the construction-time parameters of a color distribution
// test.
type Config struct {
	// Colors are the "X-Y" band pairs to test, e.g. "g-r".
	Colors []string
	// Translate maps logical band names to catalog quantity names.
	Translate map[string]string
	// ZLo and ZHi bound the redshift window (both exclusive).
	ZLo, ZHi float64
	// LimitingBand, if non-empty, names the band the flux-limit cut is
	// applied to, with LimitingMag the limit.
	LimitingBand string
	LimitingMag  float64
	// DataDir holds the reference PDF files; DataName is "DEEP2" or
	// "SDSS".
	DataDir, DataName string
	// LoadValidationCatalog preloads every color's reference distribution
	// at construction time rather than lazily per color.
	LoadValidationCatalog bool

	// Histogram range and edge count. Defaults reproduce the reference
	// pipeline's (-1, 4, 2000) binning.
	HistMin, HistMax float64
	HistEdges        int64

	// Success thresholds of the three comparison statistics.
	L2Threshold, L1Threshold, KSThreshold float64
}

// DefaultConfig returns a Config with every optional field set to its
// default. Callers fill in the required fields.
func DefaultConfig() Config {
	return Config{
		LoadValidationCatalog: true,
		HistMin:               -1,
		HistMax:               4,
		HistEdges:             2000,
		L2Threshold:           stats.DefaultL2Threshold,
		L1Threshold:           stats.DefaultL1Threshold,
		KSThreshold:           stats.DefaultKSThreshold,
	}
}

// Validate checks the configuration contract. Every violation here is a
// configuration error, fatal at setup.
func (c *Config) Validate() error {
	if len(c.Colors) == 0 {
		return fmt.Errorf("The variable 'Colors' was not set.")
	}
	for _, color := range c.Colors {
		if len(color) != 3 || color[1] != '-' {
			return fmt.Errorf("The color '%s' does not take the form "+
				"'X-Y'.", color)
		}
	}
	if len(c.Translate) == 0 {
		return fmt.Errorf("The variable 'Translate' was not set.")
	}
	for _, color := range c.Colors {
		for _, band := range []string{color[:1], color[2:]} {
			if _, ok := c.Translate[band]; !ok {
				return fmt.Errorf("The color '%s' uses the band '%s', "+
					"which 'Translate' does not map.", color, band)
			}
		}
	}
	if c.ZHi <= c.ZLo {
		return fmt.Errorf("The redshift window [%g, %g] is empty.",
			c.ZLo, c.ZHi)
	}
	switch c.DataName {
	case "DEEP2", "SDSS":
	case "":
		return fmt.Errorf("The variable 'DataName' was not set.")
	default:
		return fmt.Errorf("The variable 'DataName' was set to '%s', "+
			"which I don't recognize.", c.DataName)
	}
	if c.DataDir == "" {
		return fmt.Errorf("The variable 'DataDir' was not set.")
	}
	if c.LimitingBand != "" {
		if _, ok := c.Translate[c.LimitingBand]; !ok {
			return fmt.Errorf("The limiting band '%s' is not mapped by "+
				"'Translate'.", c.LimitingBand)
		}
	}
	if c.HistEdges < 2 {
		return fmt.Errorf("The variable 'HistEdges' was set to %d.",
			c.HistEdges)
	}
	if c.HistMax <= c.HistMin {
		return fmt.Errorf("The histogram range [%g, %g] is empty.",
			c.HistMin, c.HistMax)
	}
	return nil
}

// Status is the overall outcome of a validation run. There is no failing
// status: a run that compared at least one color passed.
type Status int

const (
	Passed Status = iota
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "PASSED"
	case Skipped:
		return "SKIPPED"
	}
	panic("Impossible")
}

// Result summarizes a validation run.
type Result struct {
	Status Status
	Msg    string
}

// Test is a configured color distribution test, reusable across catalogs.
type Test struct {
	config Config
	// refs[i] is the preloaded reference distribution of Colors[i], or
	// nil when loading lazily.
	refs []*stats.Datum
}

// New creates a color distribution test. If the config preloads the
// reference catalog summary, every color's reference file is read here and
// a missing file is fatal.
func New(config Config) (*Test, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	t := &Test{config: config, refs: make([]*stats.Datum, len(config.Colors))}
	if config.LoadValidationCatalog {
		for i, color := range config.Colors {
			d, err := t.loadReference(color)
			if err != nil {
				return nil, err
			}
			t.refs[i] = d
		}
	}

	return t, nil
}

// refFileName builds the conventional name of a per-color reference file.
func (t *Test) refFileName(color string) string {
	return fmt.Sprintf("%s_%s_z_%1.3f_%1.3f_pdf.txt",
		t.config.DataName, color, t.config.ZLo, t.config.ZHi)
}

// loadReference reads a reference PDF file: two columns, bin center and
// normalized histogram value.
func (t *Test) loadReference(color string) (*stats.Datum, error) {
	fname := path.Join(t.config.DataDir, t.refFileName(color))
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, fmt.Errorf("Could not read the reference data file "+
			"%s: %s", fname, err.Error())
	}
	return &stats.Datum{X: cols[0], Y: cols[1]}, nil
}

// reference returns color index i's reference distribution, preloaded or
// read on demand.
func (t *Test) reference(i int) (*stats.Datum, error) {
	if t.refs[i] != nil {
		return t.refs[i], nil
	}
	return t.loadReference(t.config.Colors[i])
}

// Run executes the test against one catalog, writing quantile files, plot
// files, and the append-only summary and warning logs into outputDir.
func (t *Test) Run(
	catalogName string, cat *catalog.Catalog, outputDir string,
) (Result, error) {
	runLog := logging.NewRunLog(outputDir)
	summaryFile := path.Join(outputDir, SummaryOutputFile)

	err := textio.AppendLine(summaryFile, fmt.Sprintf(
		"%2.3f < z < %2.3f", t.config.ZLo, t.config.ZHi,
	))
	if err != nil {
		return Result{}, err
	}

	nColors := len(t.config.Colors)
	catalogQ := make([][]float64, nColors)
	validationQ := make([][]float64, nColors)
	for i := range catalogQ {
		catalogQ[i] = make([]float64, 5)
		validationQ[i] = make([]float64, 5)
	}

	cdfPanels := make([]*panel, nColors)
	pdfPanels := make([]*panel, nColors)
	compared := false

	for i, color := range t.config.Colors {
		band1 := t.config.Translate[color[:1]]
		band2 := t.config.Translate[color[2:]]

		ref, err := t.reference(i)
		if err != nil {
			return Result{}, err
		}
		ocdf := CDF(ref.Y)

		if !cat.Has(band1) || !cat.Has(band2) {
			err := runLog.Warn("The galaxy catalog does not have the "+
				"'%s' and/or '%s' quantity. Skipping the color %s.",
				band1, band2, color)
			if err != nil {
				return Result{}, err
			}
			continue
		}

		mctr, mhist, err := t.colorDistribution(cat, band1, band2, runLog)
		if err != nil {
			return Result{}, err
		}
		if mctr == nil {
			// Recoverable skip, already logged.
			continue
		}
		mcdf := CDF(mhist)

		d1 := stats.Datum{X: mctr, Y: mcdf}
		d2 := stats.Datum{X: ref.X, Y: ocdf}

		l2, l2ok, err := stats.L2Diff(d1, d2, t.config.L2Threshold)
		if err != nil {
			if err := runLog.Warn("Could not compare the color %s "+
				"against %s: %s", color, t.config.DataName,
				err.Error()); err != nil {
				return Result{}, err
			}
			continue
		}
		l1, l1ok, _ := stats.L1Diff(d1, d2, t.config.L1Threshold)
		ks, ksok, _ := stats.KSTest(d1, d2, t.config.KSThreshold)

		// The reference pipeline reports the aggregate statistics scaled
		// by the root of the bin count.
		scale := math.Sqrt(float64(len(mctr)))
		lines := []struct {
			name string
			val  float64
			ok   bool
		}{
			{"L2Diff", l2 * scale, l2ok},
			{"L1Diff", l1 * scale, l1ok},
			{"K-S", ks, ksok},
		}
		for _, l := range lines {
			verdict := "FAILED"
			if l.ok {
				verdict = "SUCCESS"
			}
			err := textio.AppendLine(summaryFile, fmt.Sprintf(
				"%s %s: %s = %G", color, verdict, l.name, l.val,
			))
			if err != nil {
				return Result{}, err
			}
		}

		mq := Quantiles(mctr, mcdf)
		oq := Quantiles(ref.X, ocdf)
		copy(catalogQ[i], mq[:])
		copy(validationQ[i], oq[:])

		xlo := math.Min(Crossing(mctr, mcdf, 0.005),
			Crossing(ref.X, ocdf, 0.005))
		xhi := math.Max(Crossing(mctr, mcdf, 0.995),
			Crossing(ref.X, ocdf, 0.995))

		k := smooth.Tophat(smoothingWidth)
		cdfPanels[i] = &panel{
			color: color,
			mx:    mctr, my: mcdf,
			ox: ref.X, oy: ocdf,
			xlo: xlo, xhi: xhi,
			cdf: true,
		}
		pdfPanels[i] = &panel{
			color: color,
			mx:    mctr, my: k.Convolve(mhist, smooth.Reflection),
			ox: ref.X, oy: k.Convolve(ref.Y, smooth.Reflection),
			xlo: xlo, xhi: xhi,
		}

		compared = true
	}

	if compared {
		err := writePanels(path.Join(outputDir, PlotCDFFile),
			catalogName, t.config.DataName, cdfPanels)
		if err != nil {
			return Result{}, err
		}
		err = writePanels(path.Join(outputDir, PlotPDFFile),
			catalogName, t.config.DataName, pdfPanels)
		if err != nil {
			return Result{}, err
		}
	}

	comment := textio.CommentString(
		[]string{"q2.5", "q16", "q50", "q84", "q97.5"},
	)
	err = textio.WriteRows(
		path.Join(outputDir, CatalogOutputFile), comment, catalogQ,
	)
	if err != nil {
		return Result{}, err
	}
	err = textio.WriteRows(
		path.Join(outputDir, ValidationOutputFile), comment, validationQ,
	)
	if err != nil {
		return Result{}, err
	}

	if !compared {
		return Result{Status: Skipped}, nil
	}
	return Result{Status: Passed}, nil
}

// colorDistribution extracts both bands inside the redshift window, applies
// the magnitude cuts, and histograms the magnitude difference. A nil bin
// slice with a nil error means the color was skipped recoverably.
func (t *Test) colorDistribution(
	cat *catalog.Catalog, band1, band2 string, runLog *logging.RunLog,
) (ctrs, hist []float64, err error) {
	filters := catalog.FilterSet{"zlo": t.config.ZLo, "zhi": t.config.ZHi}

	mag1, err := cat.GetQuantities(band1, filters)
	if err != nil {
		return nil, nil, err
	}
	mag2, err := cat.GetQuantities(band2, filters)
	if err != nil {
		return nil, nil, err
	}

	if len(mag1) == 0 {
		return nil, nil, runLog.Warn("No object in the redshift range!")
	}

	var magLim []float64
	if t.config.LimitingBand != "" {
		name := t.config.Translate[t.config.LimitingBand]
		magLim, err = cat.GetQuantities(name, filters)
		if err != nil {
			return nil, nil, err
		}
	}

	diffs := []float64{}
	for i := range mag1 {
		if mag1[i] <= 0 || mag1[i] >= 50 || mag2[i] <= 0 || mag2[i] >= 50 {
			continue
		}
		if magLim != nil && magLim[i] >= t.config.LimitingMag {
			continue
		}
		diffs = append(diffs, mag1[i]-mag2[i])
	}

	if len(diffs) == 0 {
		return nil, nil, runLog.Warn("No object in the magnitude range!")
	}

	ctrs, hist = Histogram(
		diffs, t.config.HistMin, t.config.HistMax, int(t.config.HistEdges-1),
	)
	if floats.Sum(hist) == 0 {
		// Every color fell outside the histogram range, so there is no
		// distribution to compare.
		return nil, nil, runLog.Warn("No object in the color range!")
	}
	return ctrs, hist, nil
}
