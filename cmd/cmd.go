/*package cmd contains code for running descqa in its various command
line modes */
package cmd

import (
	"fmt"
	"os"

	"github.com/nsevilla/descqa/parse"
	"github.com/nsevilla/descqa/version"
)

var ModeNames map[string]Mode = map[string]Mode{
	"colordist": &ColorDistConfig{},
	"summary":   &SummaryConfig{},
}

// Mode represents the interface used by the main binary when interacting with
// a given command line mode.
type Mode interface {
	// ReadConfig reads a mode-specific config file and stores its contents
	// within the Mode.
	ReadConfig(fname string) error
	// ExampleConfig returns the text of an example config file of this mode.
	ExampleConfig() string
	// Run executes the mode. It takes a list of tokenized command line flags
	// and an initialized GlobalConfig struct, and returns a slice of lines
	// that should be written to stdout along with an error if one occurs.
	Run(flags []string, gConfig *GlobalConfig) ([]string, error)
}

// GlobalConfig is a config file used by every mode. It names the catalog
// under test, the directories files are read from and written to, and the
// cosmology of the simulation.
type GlobalConfig struct {
	version string

	catalogPath, catalogType, catalogName string
	outputDir, dataDir                    string

	h0, omegaM, hubble float64
}

var _ Mode = &GlobalConfig{}

// ReadConfig reads a config file and returns an error, if applicable.
func (config *GlobalConfig) ReadConfig(fname string) error {
	vars := parse.NewConfigVars("config")
	vars.String(&config.version, "Version", version.SourceVersion)
	vars.String(&config.catalogPath, "CatalogPath", "")
	vars.String(&config.catalogType, "CatalogType", "")
	vars.String(&config.catalogName, "CatalogName", "")
	vars.String(&config.outputDir, "OutputDir", "")
	vars.String(&config.dataDir, "DataDir", "")
	vars.Float(&config.h0, "H0", 70.2)
	vars.Float(&config.omegaM, "OmegaM", 0.275)
	vars.Float(&config.hubble, "Hubble", 0.702)

	err := parse.ReadConfig(fname, vars)
	if err != nil {
		return err
	}

	if err = config.validate(); err != nil {
		return err
	}

	return nil
}

// validate checks that all the user-generated fields of GlobalConfig are
// properly set.
func (config *GlobalConfig) validate() error {
	major, minor, patch, err := version.Parse(config.version)
	if err != nil {
		return fmt.Errorf("I couldn't parse the 'Version' variable: %s",
			err.Error())
	}
	smajor, sminor, spatch, _ := version.Parse(version.SourceVersion)
	if major != smajor || minor != sminor || patch != spatch {
		return fmt.Errorf("The 'Version' variable is set to %s, but the "+
			"version of the source is %s",
			config.version, version.SourceVersion)
	}

	switch config.catalogType {
	case "hdf5", "text":
	case "":
		return fmt.Errorf("The 'CatalogType' variable isn't set.")
	default:
		return fmt.Errorf("The 'CatalogType' variable is set to '%s', "+
			"which I don't recognize.", config.catalogType)
	}

	if config.catalogPath == "" {
		return fmt.Errorf("The 'CatalogPath' variable isn't set.")
	}

	if config.catalogName == "" {
		config.catalogName = "catalog"
	}

	if config.outputDir == "" {
		return fmt.Errorf("The 'OutputDir' variable isn't set.")
	}

	if config.dataDir == "" {
		return fmt.Errorf("The 'DataDir' variable isn't set.")
	} else if err = validateDir(config.dataDir); err != nil {
		return fmt.Errorf("The 'DataDir' variable is set to '%s', but %s",
			config.dataDir, err.Error())
	}

	if config.h0 <= 0 {
		return fmt.Errorf("The 'H0' variable is set to %g.", config.h0)
	}
	if config.omegaM <= 0 || config.omegaM > 1 {
		return fmt.Errorf("The 'OmegaM' variable is set to %g.",
			config.omegaM)
	}
	if config.hubble <= 0 {
		return fmt.Errorf("The 'Hubble' variable is set to %g.",
			config.hubble)
	}

	return nil
}

// validateDir returns an error if there are any problems with the given
// directory.
func validateDir(name string) error {
	if info, err := os.Stat(name); err != nil {
		return fmt.Errorf("%s does not exist.", name)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory.", name)
	}

	return nil
}

// ExampleConfig returns an example configuration file.
func (config *GlobalConfig) ExampleConfig() string {
	return fmt.Sprintf(`[config]
# Target version of descqa. This option merely allows descqa to notice when
# its source and configuration files are not from the same version.
#
# This variable defaults to the source version if not included.
Version = %s

# The galaxy catalog under test. CatalogType selects the storage format.
# Supported CatalogTypes: hdf5, text
CatalogPath = path/to/catalog.hdf5
CatalogType = hdf5

# The display name used for this catalog in plots and summaries. Defaults to
# 'catalog' if not included.
CatalogName = MB2

# Directory the validation results for this catalog are written to. It is
# created if it does not exist.
OutputDir = path/to/output/dir/

# Directory containing the observational reference data files.
DataDir = path/to/validation/data/

# The cosmology of the simulation that produced the catalog. H0 is in
# km/s/Mpc, and Hubble is the little-h the stored catalog units assume.
# These default to the MB2 cosmology if not included.
H0 = 70.2
OmegaM = 0.275
Hubble = 0.702`, version.SourceVersion)
}

// Run is a dummy method which allows GlobalConfig to conform to the Mode
// interface for testing purposes.
func (config *GlobalConfig) Run(
	flags []string, gConfig *GlobalConfig,
) ([]string, error) {
	panic("GlobalConfig.Run() should never be executed.")
}
