package index

import (
	"fmt"
	"strings"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/landsat"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
)

// Name identifies a supported spectral index.
type Name string

const (
	NDVI Name = "NDVI"
	SAVI Name = "SAVI"
	EVI  Name = "EVI"
	ARVI Name = "ARVI"
	NBR  Name = "NBR"
	NBWI Name = "NBWI"
	NDBI Name = "NDBI"
	GCI  Name = "GCI"
)

// All returns the supported indices in canonical report order.
func All() []Name {
	return []Name{NDVI, SAVI, EVI, ARVI, NBR, NBWI, NDBI, GCI}
}

// Parse validates a user-supplied index name.
func Parse(s string) (Name, error) {
	name := Name(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := registry[name]; !ok {
		return "", fmt.Errorf("unsupported index %q", s)
	}
	return name, nil
}

// ShapeMismatchError reports bands of one index with inconsistent
// dimensions. Bands must already share grid geometry; nothing is
// resampled silently.
type ShapeMismatchError struct {
	Index Name
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("bands for %s have mismatched dimensions", e.Index)
}

// Definition binds an index to the bands it needs and its formula. Clip
// is the theoretical value range for indices that have one; unbounded
// ratios (EVI, GCI) carry no clip range.
type Definition struct {
	Name    Name
	Bands   []landsat.Band
	Clip    *[2]float64
	formula func(bands map[landsat.Band]*raster.Grid) *raster.Grid
}

var unit = [2]float64{-1, 1}
var saviRange = [2]float64{-1.5, 1.5}

var registry = map[Name]Definition{
	NDVI: {NDVI, []landsat.Band{landsat.NIR, landsat.Red}, &unit, ndvi},
	SAVI: {SAVI, []landsat.Band{landsat.NIR, landsat.Red}, &saviRange, savi},
	EVI:  {EVI, []landsat.Band{landsat.NIR, landsat.Red, landsat.Blue}, nil, evi},
	ARVI: {ARVI, []landsat.Band{landsat.NIR, landsat.Red, landsat.Blue}, &unit, arvi},
	NBR:  {NBR, []landsat.Band{landsat.NIR, landsat.SWIR2}, &unit, nbr},
	NBWI: {NBWI, []landsat.Band{landsat.Green, landsat.NIR}, &unit, nbwi},
	NDBI: {NDBI, []landsat.Band{landsat.SWIR1, landsat.NIR}, &unit, ndbi},
	GCI:  {GCI, []landsat.Band{landsat.NIR, landsat.Green}, nil, gci},
}

// Lookup returns the definition for a supported index.
func Lookup(name Name) (Definition, bool) {
	def, ok := registry[name]
	return def, ok
}

// Compute evaluates an index over its bands. All bands must share the
// output shape; the result inherits the georeference of the first band.
func Compute(def Definition, bands map[landsat.Band]*raster.Grid) (*raster.Grid, error) {
	first := bands[def.Bands[0]]
	for _, band := range def.Bands {
		grid, ok := bands[band]
		if !ok {
			return nil, fmt.Errorf("band %s not provided for %s", band, def.Name)
		}
		if !grid.SameShape(first) {
			return nil, &ShapeMismatchError{Index: def.Name}
		}
	}

	out := def.formula(bands)
	out.GeoTransform = first.GeoTransform
	out.Projection = first.Projection
	if def.Clip != nil {
		clamp(out, def.Clip[0], def.Clip[1])
	}
	return out, nil
}

func clamp(grid *raster.Grid, lo, hi float64) {
	for i, v := range grid.Data {
		if v == raster.NoData {
			continue
		}
		if v < lo {
			grid.Data[i] = lo
		} else if v > hi {
			grid.Data[i] = hi
		}
	}
}
