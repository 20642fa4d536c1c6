package catalog

import (
	"github.com/phil-mansfield/table"
)

// textColumns is the fixed column order of text-format catalogs. Text
// catalogs are a debugging convenience and carry the same stored columns
// as the HDF5 format.
var textColumns = []string{
	"halo_id", "parent_halo_id", "redshift",
	"x", "y", "z",
	"velocityX", "velocityY", "velocityZ",
	"mass", "stellar_mass", "gas_mass", "sfr",
	"SDSS_u:rest:", "SDSS_g:rest:", "SDSS_r:rest:",
	"SDSS_i:rest:", "SDSS_z:rest:",
}

// loadText reads a whitespace-table catalog with the textColumns layout.
// '#' lines are comments.
func loadText(path string) (map[string][]float64, error) {
	colIdxs := make([]int, len(textColumns))
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(path, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	out := map[string][]float64{}
	for i, name := range textColumns {
		out[name] = cols[i]
	}
	return out, nil
}
