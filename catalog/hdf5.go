package catalog

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// catalogGroup is the internal HDF5 path the catalog table lives under.
const catalogGroup = "data"

// loadHDF5 reads every 1D float64 dataset under the "data" group of an
// HDF5 catalog file into a column map. A missing file or group is fatal.
func loadHDF5(path string) (map[string][]float64, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("Could not open the catalog file %s: %s",
			path, err.Error())
	}
	defer f.Close()

	g, err := f.OpenGroup(catalogGroup)
	if err != nil {
		return nil, fmt.Errorf("The catalog file %s does not contain the "+
			"group '%s': %s", path, catalogGroup, err.Error())
	}
	defer g.Close()

	nObj, err := g.NumObjects()
	if err != nil {
		return nil, err
	}

	cols := map[string][]float64{}
	for i := uint(0); i < nObj; i++ {
		name, err := g.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}

		col, err := readColumn(g, name)
		if err != nil {
			return nil, fmt.Errorf("Could not read the column '%s' of the "+
				"catalog file %s: %s", name, path, err.Error())
		}
		cols[name] = col
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("The group '%s' of the catalog file %s "+
			"contains no columns.", catalogGroup, path)
	}

	return cols, nil
}

func readColumn(g *hdf5.Group, name string) ([]float64, error) {
	dset, err := g.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("dataset is %d-dimensional, not 1D",
			len(dims))
	}

	col := make([]float64, dims[0])
	if err := dset.Read(&col); err != nil {
		return nil, err
	}

	return col, nil
}
