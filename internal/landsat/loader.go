package landsat

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
)

// MissingBandError reports every required band that could not be located
// in a scene directory, so the caller can skip just the affected indices.
type MissingBandError struct {
	Scene   string
	Missing []Band
}

func (e *MissingBandError) Error() string {
	names := make([]string, len(e.Missing))
	for i, b := range e.Missing {
		names[i] = string(b)
	}
	return fmt.Sprintf("scene %s is missing bands: %s", e.Scene, strings.Join(names, ", "))
}

// Loader resolves and reads band rasters for a single scene directory,
// caching grids so bands shared between indices load once.
type Loader struct {
	scenePath string
	sceneName string
	cache     map[Band]*raster.Grid
}

func NewLoader(scenePath string) *Loader {
	return &Loader{
		scenePath: scenePath,
		sceneName: filepath.Base(scenePath),
		cache:     make(map[Band]*raster.Grid),
	}
}

func (l *Loader) Scene() string {
	return l.sceneName
}

// Resolve finds the file holding a band by the *B<N>*.tif naming
// convention. The character following the band id must not be a digit,
// so B2 never claims a B20 file.
func (l *Loader) Resolve(band Band) (string, error) {
	entries, err := os.ReadDir(l.scenePath)
	if err != nil {
		return "", fmt.Errorf("failed to read scene directory %s: %w", l.scenePath, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesBand(entry.Name(), band) {
			matches = append(matches, filepath.Join(l.scenePath, entry.Name()))
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no file for band %s in %s", band, l.scenePath)
	}
	sort.Strings(matches)
	return matches[0], nil
}

func matchesBand(name string, band Band) bool {
	upper := strings.ToUpper(name)
	if !strings.HasSuffix(upper, ".TIF") && !strings.HasSuffix(upper, ".TIFF") {
		return false
	}
	key := strings.ToUpper(string(band))
	for start := 0; ; {
		idx := strings.Index(upper[start:], key)
		if idx < 0 {
			return false
		}
		end := start + idx + len(key)
		if end >= len(upper) || upper[end] < '0' || upper[end] > '9' {
			return true
		}
		start += idx + 1
	}
}

// Load returns grids for every requested band, reading each from disk at
// most once per scene. If any band cannot be resolved or read, a
// MissingBandError naming all absent bands is returned instead.
func (l *Loader) Load(bands ...Band) (map[Band]*raster.Grid, error) {
	grids := make(map[Band]*raster.Grid, len(bands))
	var missing []Band

	for _, band := range bands {
		if grid, ok := l.cache[band]; ok {
			grids[band] = grid
			continue
		}
		path, err := l.Resolve(band)
		if err != nil {
			missing = append(missing, band)
			continue
		}
		grid, err := raster.Read(path)
		if err != nil {
			missing = append(missing, band)
			continue
		}
		l.cache[band] = grid
		grids[band] = grid
	}

	if len(missing) > 0 {
		return nil, &MissingBandError{Scene: l.sceneName, Missing: missing}
	}
	return grids, nil
}

// Any returns one already-cached grid, used for scene-level metadata like
// the footprint. Returns nil when nothing has been loaded yet.
func (l *Loader) Any() *raster.Grid {
	for _, grid := range l.cache {
		return grid
	}
	return nil
}
