package cmd

import (
	"fmt"
	"os"
	"path"
	"testing"
)

func TestExampleFiles(t *testing.T) {
	tests := []Mode{
		&ColorDistConfig{},
		&SummaryConfig{},
	}

	for i := range tests {
		mode := tests[i]
		f, err := os.CreateTemp("", "descqa_config_test")
		if err != nil {
			panic(err.Error())
		}
		defer os.Remove(f.Name())

		if _, err = f.Write([]byte(mode.ExampleConfig())); err != nil {
			panic(err.Error())
		}
		if err = f.Close(); err != nil {
			panic(err.Error())
		}

		err = mode.ReadConfig(f.Name())
		if err != nil {
			t.Errorf("%d) Got error when parsing config file:\n%s",
				i, err.Error())
		}
	}
}

func TestGlobalConfig(t *testing.T) {
	dataDir := t.TempDir()
	fname := path.Join(t.TempDir(), "global.config")

	text := fmt.Sprintf(`[config]
CatalogPath = catalog.hdf5
CatalogType = hdf5
CatalogName = MB2
OutputDir = %s
DataDir = %s`, path.Join(t.TempDir(), "out"), dataDir)

	if err := os.WriteFile(fname, []byte(text), 0666); err != nil {
		panic(err.Error())
	}

	config := &GlobalConfig{}
	if err := config.ReadConfig(fname); err != nil {
		t.Fatalf("Got error when parsing config file:\n%s", err.Error())
	}

	if config.catalogName != "MB2" {
		t.Errorf("CatalogName = '%s', expected 'MB2'.", config.catalogName)
	}
	if config.h0 != 70.2 || config.omegaM != 0.275 || config.hubble != 0.702 {
		t.Errorf("The default cosmology was not filled in: H0 = %g, "+
			"OmegaM = %g, Hubble = %g.",
			config.h0, config.omegaM, config.hubble)
	}
}

func TestGlobalConfigBadType(t *testing.T) {
	dataDir := t.TempDir()
	fname := path.Join(t.TempDir(), "global.config")

	text := fmt.Sprintf(`[config]
CatalogPath = catalog.fits
CatalogType = fits
OutputDir = out
DataDir = %s`, dataDir)

	if err := os.WriteFile(fname, []byte(text), 0666); err != nil {
		panic(err.Error())
	}

	config := &GlobalConfig{}
	if err := config.ReadConfig(fname); err == nil {
		t.Errorf("An unrecognized CatalogType was accepted.")
	}
}

func TestTranslateMap(t *testing.T) {
	config := &ColorDistConfig{
		translate: []string{"g=SDSS_g:observed:", "r=SDSS_r:observed:"},
	}

	m, err := config.translateMap()
	if err != nil {
		t.Fatalf("translateMap failed: %s", err.Error())
	}
	if m["g"] != "SDSS_g:observed:" || m["r"] != "SDSS_r:observed:" {
		t.Errorf("translateMap returned %v.", m)
	}

	config.translate = []string{"gSDSS_g:observed:"}
	if _, err := config.translateMap(); err == nil {
		t.Errorf("A malformed Translate element was accepted.")
	}
}
