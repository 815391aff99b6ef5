package output

import (
	"fmt"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
	"github.com/fogleman/gg"
)

// Quicklook renders an index grid as a grayscale PNG, stretched between
// the grid's min and max. NoData pixels render black.
func Quicklook(grid *raster.Grid, path string) error {
	lo, hi, any := valueRange(grid)
	span := hi - lo
	if !any || span == 0 {
		span = 1
	}

	dc := gg.NewContext(grid.Width, grid.Height)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			value := grid.At(x, y)
			if value == raster.NoData {
				dc.SetRGB(0, 0, 0)
			} else {
				gray := (value - lo) / span
				dc.SetRGB(gray, gray, gray)
			}
			dc.SetPixel(x, y)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save quicklook %s: %w", path, err)
	}
	return nil
}

func valueRange(grid *raster.Grid) (lo, hi float64, any bool) {
	for _, v := range grid.Data {
		if v == raster.NoData {
			continue
		}
		if !any || v < lo {
			lo = v
		}
		if !any || v > hi {
			hi = v
		}
		any = true
	}
	return lo, hi, any
}
