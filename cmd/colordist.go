package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nsevilla/descqa/catalog"
	"github.com/nsevilla/descqa/cosmo"
	"github.com/nsevilla/descqa/logging"
	"github.com/nsevilla/descqa/parse"
	"github.com/nsevilla/descqa/stats"
	"github.com/nsevilla/descqa/validate"
)

// ColorDistConfig runs the color distribution test on a single catalog.
type ColorDistConfig struct {
	colors, translate []string
	zLo, zHi          float64

	limitingBand string
	limitingMag  float64

	dataName              string
	loadValidationCatalog bool

	histMin, histMax float64
	histEdges        int64

	l2Threshold, l1Threshold, ksThreshold float64
}

var _ Mode = &ColorDistConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *ColorDistConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("colordist")
	vars.Strings(&config.colors, "Colors", []string{})
	vars.Strings(&config.translate, "Translate", []string{})
	vars.Float(&config.zLo, "ZLo", 0)
	vars.Float(&config.zHi, "ZHi", 0)
	vars.String(&config.limitingBand, "LimitingBand", "")
	vars.Float(&config.limitingMag, "LimitingMag", 0)
	vars.String(&config.dataName, "DataName", "")
	vars.Bool(&config.loadValidationCatalog, "LoadValidationCatalog", true)
	vars.Float(&config.histMin, "HistMin", -1)
	vars.Float(&config.histMax, "HistMax", 4)
	vars.Int(&config.histEdges, "HistEdges", 2000)
	vars.Float(&config.l2Threshold, "L2Threshold", stats.DefaultL2Threshold)
	vars.Float(&config.l1Threshold, "L1Threshold", stats.DefaultL1Threshold)
	vars.Float(&config.ksThreshold, "KSThreshold", stats.DefaultKSThreshold)
	vars.Require("Colors", "Translate", "ZLo", "ZHi", "DataName")

	if fname == "" {
		return nil
	}
	return parse.ReadConfig(fname, vars)
}

// ExampleConfig returns an example configuration file.
func (config *ColorDistConfig) ExampleConfig() string {
	return `[colordist]
# The colors to test, each a pair of bands.
Colors = g-r, r-i

# Translations from band names to catalog quantity names.
Translate = g=SDSS_g:observed:, r=SDSS_r:observed:, i=SDSS_i:observed:

# The redshift window the observational data was selected in.
ZLo = 0.475
ZHi = 0.525

# The observational data set compared against. DataName together with the
# colors and the redshift window determines the reference file names looked
# up in DataDir.
# Supported DataNames: DEEP2, SDSS
DataName = DEEP2

# An optional flux limit. Objects fainter than LimitingMag in LimitingBand
# are removed before histogramming. Both variables default to unset.
# LimitingBand = r
# LimitingMag = 24.1

# Whether all reference distributions are read up front. Defaults to true.
# LoadValidationCatalog = true

# The color histogram binning. These default to 2000 edges on (-1, 4).
# HistMin = -1
# HistMax = 4
# HistEdges = 2000

# Success thresholds of the comparison statistics. These default to 1, 1,
# and 0.05, respectively.
# L2Threshold = 1
# L1Threshold = 1
# KSThreshold = 0.05`
}

// translateMap converts the Translate assignments to a band lookup table.
func (config *ColorDistConfig) translateMap() (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range config.translate {
		eq := strings.Index(pair, "=")
		if eq <= 0 || eq == len(pair)-1 {
			return nil, fmt.Errorf("The 'Translate' element '%s' does not "+
				"take the form 'band=quantity'.", pair)
		}
		band := strings.Trim(pair[:eq], " ")
		out[band] = strings.Trim(pair[eq+1:], " ")
	}
	return out, nil
}

// Run executes the color distribution test described by the config files.
func (config *ColorDistConfig) Run(
	flags []string, gConfig *GlobalConfig,
) ([]string, error) {
	if logging.Mode != logging.Nil {
		log.Println(`
###################
## cmd/colordist ##
###################`)
	}
	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}

	translate, err := config.translateMap()
	if err != nil {
		return nil, err
	}

	vConfig := validate.DefaultConfig()
	vConfig.Colors = config.colors
	vConfig.Translate = translate
	vConfig.ZLo, vConfig.ZHi = config.zLo, config.zHi
	vConfig.LimitingBand = config.limitingBand
	vConfig.LimitingMag = config.limitingMag
	vConfig.DataDir = gConfig.dataDir
	vConfig.DataName = config.dataName
	vConfig.LoadValidationCatalog = config.loadValidationCatalog
	vConfig.HistMin, vConfig.HistMax = config.histMin, config.histMax
	vConfig.HistEdges = config.histEdges
	vConfig.L2Threshold = config.l2Threshold
	vConfig.L1Threshold = config.l1Threshold
	vConfig.KSThreshold = config.ksThreshold

	test, err := validate.New(vConfig)
	if err != nil {
		return nil, err
	}

	params := cosmo.Flat(gConfig.h0, gConfig.omegaM)
	cat, err := catalog.Load(
		gConfig.catalogPath, gConfig.catalogType, params, gConfig.hubble,
	)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(gConfig.outputDir, 0777); err != nil {
		return nil, err
	}

	res, err := test.Run(gConfig.catalogName, cat, gConfig.outputDir)
	if err != nil {
		return nil, err
	}

	lines := []string{
		fmt.Sprintf("%s %s", gConfig.catalogName, res.Status),
	}
	if res.Msg != "" {
		lines = append(lines, res.Msg)
	}

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}

	return lines, nil
}
