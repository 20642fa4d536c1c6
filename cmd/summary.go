package cmd

import (
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/nsevilla/descqa/logging"
	"github.com/nsevilla/descqa/parse"
	"github.com/nsevilla/descqa/validate"
)

// SummaryConfig renders the cross-catalog summary figure from the quantile
// files of previously finished colordist runs.
type SummaryConfig struct {
	catalogNames, catalogDirs []string
	colors                    []string
	dataName                  string
	outputFile                string
}

var _ Mode = &SummaryConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *SummaryConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("summary")
	vars.Strings(&config.catalogNames, "CatalogNames", []string{})
	vars.Strings(&config.catalogDirs, "CatalogDirs", []string{})
	vars.Strings(&config.colors, "Colors", []string{})
	vars.String(&config.dataName, "DataName", "")
	vars.String(&config.outputFile, "OutputFile", "summary_plot.png")
	vars.Require("CatalogNames", "CatalogDirs", "Colors", "DataName")

	if fname == "" {
		return nil
	}
	if err := parse.ReadConfig(fname, vars); err != nil {
		return err
	}

	if len(config.catalogNames) != len(config.catalogDirs) {
		return fmt.Errorf("The 'CatalogNames' variable has %d elements, "+
			"but 'CatalogDirs' has %d.",
			len(config.catalogNames), len(config.catalogDirs))
	}

	return nil
}

// ExampleConfig returns an example configuration file.
func (config *SummaryConfig) ExampleConfig() string {
	return `[summary]
# The display names of the summarized catalogs and the output directories
# their colordist runs wrote to, in matching order.
CatalogNames = MB2, Galacticus
CatalogDirs = path/to/output/mb2/, path/to/output/galacticus/

# The colors the runs were configured with, in the same order.
Colors = g-r, r-i

# The observational data set the runs compared against.
DataName = DEEP2

# Where the figure is written, relative to OutputDir. Defaults to
# summary_plot.png.
# OutputFile = summary_plot.png`
}

// Run renders the summary figure.
func (config *SummaryConfig) Run(
	flags []string, gConfig *GlobalConfig,
) ([]string, error) {
	if logging.Mode != logging.Nil {
		log.Println(`
#################
## cmd/summary ##
#################`)
	}
	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}

	entries := make([]validate.SummaryEntry, len(config.catalogNames))
	for i := range entries {
		entries[i] = validate.SummaryEntry{
			Name: config.catalogNames[i], Dir: config.catalogDirs[i],
		}
	}

	fname := config.outputFile
	if !path.IsAbs(fname) {
		if err := os.MkdirAll(gConfig.outputDir, 0777); err != nil {
			return nil, err
		}
		fname = path.Join(gConfig.outputDir, fname)
	}

	err := validate.Summary(fname, entries, config.colors, config.dataName)
	if err != nil {
		return nil, err
	}

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}

	return []string{fmt.Sprintf("Wrote %s", fname)}, nil
}
