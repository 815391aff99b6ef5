package index

import (
	"errors"
	"testing"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/landsat"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridOf(t *testing.T, width, height int, values ...float64) *raster.Grid {
	t.Helper()
	require.Len(t, values, width*height)
	g := raster.NewGrid(width, height)
	copy(g.Data, values)
	return g
}

func TestNDVI(t *testing.T) {
	// Exact-zero numerator is a valid 0, not the nodata sentinel.
	nir := gridOf(t, 2, 1, 0.4, 0.1)
	red := gridOf(t, 2, 1, 0.2, 0.1)

	def, ok := Lookup(NDVI)
	require.True(t, ok)

	out, err := Compute(def, map[landsat.Band]*raster.Grid{landsat.NIR: nir, landsat.Red: red})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, out.Data[0], 1e-9)
	assert.Equal(t, 0.0, out.Data[1])
}

func TestSafeDivideSentinel(t *testing.T) {
	nir := gridOf(t, 2, 1, 0.0, 3e-7)
	red := gridOf(t, 2, 1, 0.0, -2e-7)

	def, _ := Lookup(NDVI)
	out, err := Compute(def, map[landsat.Band]*raster.Grid{landsat.NIR: nir, landsat.Red: red})
	require.NoError(t, err)

	// Both denominators sit below epsilon; neither pixel may be NaN/Inf.
	assert.Equal(t, raster.NoData, out.Data[0])
	assert.Equal(t, raster.NoData, out.Data[1])
}

func TestBoundedIndicesStayInRange(t *testing.T) {
	bands := map[landsat.Band]*raster.Grid{
		landsat.Blue:  gridOf(t, 3, 1, 0.05, 0.9, 0.3),
		landsat.Green: gridOf(t, 3, 1, 0.08, 0.7, 0.2),
		landsat.Red:   gridOf(t, 3, 1, 0.10, 0.8, -0.4),
		landsat.NIR:   gridOf(t, 3, 1, 0.40, 0.1, 0.6),
		landsat.SWIR1: gridOf(t, 3, 1, 0.20, 0.5, 0.1),
		landsat.SWIR2: gridOf(t, 3, 1, 0.15, 0.4, 0.9),
	}

	for _, name := range []Name{NDVI, ARVI, NBR, NBWI, NDBI, SAVI} {
		def, ok := Lookup(name)
		require.True(t, ok)
		require.NotNil(t, def.Clip, "index %s should define a clip range", name)

		out, err := Compute(def, bands)
		require.NoError(t, err)
		for i, v := range out.Data {
			if v == raster.NoData {
				continue
			}
			assert.GreaterOrEqual(t, v, def.Clip[0], "%s pixel %d", name, i)
			assert.LessOrEqual(t, v, def.Clip[1], "%s pixel %d", name, i)
		}
	}
}

func TestUnboundedIndicesNotClipped(t *testing.T) {
	nir := gridOf(t, 1, 1, 0.8)
	green := gridOf(t, 1, 1, 0.1)

	def, _ := Lookup(GCI)
	require.Nil(t, def.Clip)

	out, err := Compute(def, map[landsat.Band]*raster.Grid{landsat.NIR: nir, landsat.Green: green})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, out.Data[0], 1e-9)
}

func TestFormulaValues(t *testing.T) {
	bands := map[landsat.Band]*raster.Grid{
		landsat.Blue:  gridOf(t, 1, 1, 0.1),
		landsat.Green: gridOf(t, 1, 1, 0.1),
		landsat.Red:   gridOf(t, 1, 1, 0.2),
		landsat.NIR:   gridOf(t, 1, 1, 0.4),
		landsat.SWIR1: gridOf(t, 1, 1, 0.3),
		landsat.SWIR2: gridOf(t, 1, 1, 0.1),
	}

	cases := []struct {
		name Name
		want float64
	}{
		{NDVI, 0.2 / 0.6},
		{SAVI, 0.2 / 1.1 * 1.5},
		{EVI, 2.5 * 0.2 / (0.4 + 6*0.2 - 7.5*0.1 + 1)},
		{ARVI, 0.1 / 0.7}, // rb = 2*0.2 - 0.1
		{NBR, 0.3 / 0.5},
		{NBWI, -0.3 / 0.5},
		{NDBI, -0.1 / 0.7},
		{GCI, 3.0},
	}
	for _, tc := range cases {
		def, ok := Lookup(tc.name)
		require.True(t, ok)
		out, err := Compute(def, bands)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, out.Data[0], 1e-9, "index %s", tc.name)
	}
}

func TestComputeShapeMismatch(t *testing.T) {
	nir := gridOf(t, 2, 1, 0.4, 0.5)
	red := gridOf(t, 1, 1, 0.2)

	def, _ := Lookup(NDVI)
	_, err := Compute(def, map[landsat.Band]*raster.Grid{landsat.NIR: nir, landsat.Red: red})
	require.Error(t, err)

	var mismatch *ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, NDVI, mismatch.Index)
}

func TestComputeInheritsGeoreference(t *testing.T) {
	nir := gridOf(t, 1, 1, 0.4)
	nir.GeoTransform = [6]float64{500000, 30, 0, 4649700, 0, -30}
	nir.Projection = "PROJCS[\"stub\"]"
	red := gridOf(t, 1, 1, 0.2)

	def, _ := Lookup(NDVI)
	out, err := Compute(def, map[landsat.Band]*raster.Grid{landsat.NIR: nir, landsat.Red: red})
	require.NoError(t, err)
	assert.Equal(t, nir.GeoTransform, out.GeoTransform)
	assert.Equal(t, nir.Projection, out.Projection)
}

func TestParse(t *testing.T) {
	name, err := Parse(" ndvi ")
	require.NoError(t, err)
	assert.Equal(t, NDVI, name)

	_, err = Parse("NDSI")
	assert.Error(t, err)
}

func TestAllHaveDefinitions(t *testing.T) {
	for _, name := range All() {
		def, ok := Lookup(name)
		require.True(t, ok, "index %s", name)
		assert.NotEmpty(t, def.Bands, "index %s", name)
	}
}
