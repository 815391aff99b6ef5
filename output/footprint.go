package output

import (
	"fmt"
	"os"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Footprint writes the scene's outline as a WGS84 GeoJSON feature
// collection, derived from the grid's geotransform corners.
func Footprint(grid *raster.Grid, scene, path string) error {
	corners, err := raster.WGS84Corners(grid)
	if err != nil {
		return fmt.Errorf("failed to compute footprint for %s: %w", scene, err)
	}

	ring := make(orb.Ring, 0, len(corners)+1)
	for _, c := range corners {
		ring = append(ring, orb.Point{c[0], c[1]})
	}
	ring = append(ring, ring[0])

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.Properties["scene"] = scene

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode footprint for %s: %w", scene, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write footprint %s: %w", path, err)
	}
	return nil
}
