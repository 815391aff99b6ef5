package index

import (
	"math"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/landsat"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
)

// Soil and atmosphere coefficients, standard remote-sensing defaults.
const (
	saviL = 0.5
	eviG  = 2.5
	eviC1 = 6.0
	eviC2 = 7.5
	eviL  = 1.0
)

// epsilon is the smallest denominator magnitude treated as divisible;
// anything closer to zero yields the NoData sentinel instead of Inf/NaN.
const epsilon = 1e-6

func safeDivide(num, den float64) float64 {
	if math.Abs(den) < epsilon {
		return raster.NoData
	}
	return num / den
}

// normalizedDifference computes (a-b)/(a+b) per pixel.
func normalizedDifference(a, b *raster.Grid) *raster.Grid {
	out := raster.NewGrid(a.Width, a.Height)
	for i := range out.Data {
		out.Data[i] = safeDivide(a.Data[i]-b.Data[i], a.Data[i]+b.Data[i])
	}
	return out
}

func ndvi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	return normalizedDifference(bands[landsat.NIR], bands[landsat.Red])
}

func savi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	nir, red := bands[landsat.NIR], bands[landsat.Red]
	out := raster.NewGrid(nir.Width, nir.Height)
	for i := range out.Data {
		v := safeDivide(nir.Data[i]-red.Data[i], nir.Data[i]+red.Data[i]+saviL)
		if v != raster.NoData {
			v *= 1 + saviL
		}
		out.Data[i] = v
	}
	return out
}

func evi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	nir, red, blue := bands[landsat.NIR], bands[landsat.Red], bands[landsat.Blue]
	out := raster.NewGrid(nir.Width, nir.Height)
	for i := range out.Data {
		den := nir.Data[i] + eviC1*red.Data[i] - eviC2*blue.Data[i] + eviL
		v := safeDivide(nir.Data[i]-red.Data[i], den)
		if v != raster.NoData {
			v *= eviG
		}
		out.Data[i] = v
	}
	return out
}

func arvi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	nir, red, blue := bands[landsat.NIR], bands[landsat.Red], bands[landsat.Blue]
	out := raster.NewGrid(nir.Width, nir.Height)
	for i := range out.Data {
		rb := 2*red.Data[i] - blue.Data[i]
		out.Data[i] = safeDivide(nir.Data[i]-rb, nir.Data[i]+rb)
	}
	return out
}

func nbr(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	return normalizedDifference(bands[landsat.NIR], bands[landsat.SWIR2])
}

func nbwi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	return normalizedDifference(bands[landsat.Green], bands[landsat.NIR])
}

func ndbi(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	return normalizedDifference(bands[landsat.SWIR1], bands[landsat.NIR])
}

func gci(bands map[landsat.Band]*raster.Grid) *raster.Grid {
	nir, green := bands[landsat.NIR], bands[landsat.Green]
	out := raster.NewGrid(nir.Width, nir.Height)
	for i := range out.Data {
		v := safeDivide(nir.Data[i], green.Data[i])
		if v != raster.NoData {
			v -= 1
		}
		out.Data[i] = v
	}
	return out
}
