package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// NoData marks pixels where an index is mathematically undefined.
const NoData = -9999.0

// Grid is a single-band raster held as a flat row-major buffer together
// with the georeference needed to write it back out.
type Grid struct {
	Data         []float64
	Width        int
	Height       int
	GeoTransform [6]float64
	Projection   string
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
	}
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, value float64) {
	g.Data[y*g.Width+x] = value
}

func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Read loads band 1 of a GeoTIFF into a Grid, capturing its geotransform
// and projection so outputs derived from it stay georeferenced.
func Read(path string) (*Grid, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", path, err)
	}
	defer ds.Close()

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY
	grid := NewGrid(width, height)

	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("raster %s has no bands", path)
	}
	if err := bands[0].Read(0, 0, grid.Data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data from %s: %w", path, err)
	}

	if gt, err := ds.GeoTransform(); err == nil {
		grid.GeoTransform = gt
	}
	if sr := ds.SpatialRef(); sr != nil {
		if wkt, err := sr.WKT(); err == nil {
			grid.Projection = wkt
		}
		sr.Close()
	}

	return grid, nil
}

// Write persists a grid as a single-band Float32 GeoTIFF with the grid's
// spatial reference and NoData registered on the band.
func Write(path string, grid *Grid) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, grid.Width, grid.Height)
	if err != nil {
		return fmt.Errorf("failed to create raster %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(grid.GeoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
	}
	if grid.Projection != "" {
		sr, err := godal.NewSpatialRefFromWKT(grid.Projection)
		if err != nil {
			return fmt.Errorf("invalid projection for %s: %w", path, err)
		}
		defer sr.Close()
		if err := ds.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set projection on %s: %w", path, err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(NoData); err != nil {
		return fmt.Errorf("failed to set nodata on %s: %w", path, err)
	}
	if err := band.Write(0, 0, grid.Data, grid.Width, grid.Height); err != nil {
		return fmt.Errorf("failed to write raster data to %s: %w", path, err)
	}
	return nil
}

// WGS84Corners returns the grid's corner coordinates as lon/lat pairs in
// ring order (top-left, top-right, bottom-right, bottom-left).
func WGS84Corners(grid *Grid) ([][2]float64, error) {
	gt := grid.GeoTransform
	w, h := float64(grid.Width), float64(grid.Height)
	xs := []float64{
		gt[0],
		gt[0] + gt[1]*w,
		gt[0] + gt[1]*w + gt[2]*h,
		gt[0] + gt[2]*h,
	}
	ys := []float64{
		gt[3],
		gt[3] + gt[4]*w,
		gt[3] + gt[4]*w + gt[5]*h,
		gt[3] + gt[5]*h,
	}

	if grid.Projection != "" {
		srcSR, err := godal.NewSpatialRefFromWKT(grid.Projection)
		if err != nil {
			return nil, fmt.Errorf("invalid source projection: %w", err)
		}
		defer srcSR.Close()
		dstSR, err := godal.NewSpatialRefFromEPSG(4326)
		if err != nil {
			return nil, err
		}
		defer dstSR.Close()
		tr, err := godal.NewTransform(srcSR, dstSR)
		if err != nil {
			return nil, fmt.Errorf("transform error: %w", err)
		}
		defer tr.Close()
		if err := tr.TransformEx(xs, ys, nil, nil); err != nil {
			return nil, fmt.Errorf("transform error: %w", err)
		}
	}

	corners := make([][2]float64, len(xs))
	for i := range xs {
		corners[i] = [2]float64{xs[i], ys[i]}
	}
	return corners, nil
}
