package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/index"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/landsat"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/raster"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/report"
	"github.com/JaguaNaTioN/Veg-index-processor/output"
)

// Processor computes requested indices for one scene at a time. A
// failure in one index is recorded and never aborts the remaining
// indices for the scene.
type Processor struct {
	OutputRoot string
	Log        *slog.Logger
	Quicklook  bool
}

// ProcessScene runs every requested index over one scene directory and
// returns the per-index outcomes.
func (p *Processor) ProcessScene(scenePath string, indices []index.Name) report.SceneReport {
	scene := filepath.Base(scenePath)
	start := time.Now()
	p.Log.Info("processing scene", "scene", scene)

	info, err := os.Stat(scenePath)
	if err != nil || !info.IsDir() {
		reason := fmt.Sprintf("scene directory unreadable: %v", err)
		if err == nil {
			reason = "scene path is not a directory"
		}
		p.Log.Error("scene failed", "scene", scene, "reason", reason)
		rep := report.Failed(scene, indices, reason)
		rep.Elapsed = time.Since(start)
		return rep
	}

	outDir := filepath.Join(p.OutputRoot, scene)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		p.Log.Error("scene failed", "scene", scene, "reason", err)
		rep := report.Failed(scene, indices, fmt.Sprintf("failed to create output directory: %v", err))
		rep.Elapsed = time.Since(start)
		return rep
	}

	loader := landsat.NewLoader(scenePath)
	rep := report.SceneReport{
		Scene:   scene,
		Results: make(map[index.Name]report.IndexResult, len(indices)),
	}

	for _, name := range indices {
		result := p.computeIndex(loader, name, outDir)
		rep.Results[name] = result
		switch result.Status {
		case report.StatusOK:
			p.Log.Info("index computed", "scene", scene, "index", name, "elapsed", result.Elapsed)
		case report.StatusSkipped:
			p.Log.Warn("index skipped", "scene", scene, "index", name, "reason", result.Reason)
		default:
			p.Log.Error("index failed", "scene", scene, "index", name, "reason", result.Reason)
		}
	}

	if grid := loader.Any(); grid != nil {
		if err := output.Footprint(grid, scene, filepath.Join(outDir, "footprint.geojson")); err != nil {
			p.Log.Warn("footprint not written", "scene", scene, "error", err)
		}
	}

	rep.Elapsed = time.Since(start)
	p.Log.Info("finished scene", "scene", scene, "elapsed", rep.Elapsed)
	return rep
}

func (p *Processor) computeIndex(loader *landsat.Loader, name index.Name, outDir string) report.IndexResult {
	start := time.Now()

	def, ok := index.Lookup(name)
	if !ok {
		return report.IndexResult{Status: report.StatusFailed, Reason: fmt.Sprintf("unknown index %s", name), Elapsed: time.Since(start)}
	}

	bands, err := loader.Load(def.Bands...)
	if err != nil {
		status := report.StatusFailed
		var missing *landsat.MissingBandError
		if errors.As(err, &missing) {
			status = report.StatusSkipped
		}
		return report.IndexResult{Status: status, Reason: err.Error(), Elapsed: time.Since(start)}
	}

	grid, err := index.Compute(def, bands)
	if err != nil {
		return report.IndexResult{Status: report.StatusFailed, Reason: err.Error(), Elapsed: time.Since(start)}
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%s.tif", name))
	if err := raster.Write(outPath, grid); err != nil {
		return report.IndexResult{Status: report.StatusFailed, Reason: err.Error(), Elapsed: time.Since(start)}
	}

	if p.Quicklook {
		pngPath := filepath.Join(outDir, fmt.Sprintf("%s.png", name))
		if err := output.Quicklook(grid, pngPath); err != nil {
			p.Log.Warn("quicklook not written", "scene", loader.Scene(), "index", name, "error", err)
		}
	}

	return report.IndexResult{Status: report.StatusOK, Elapsed: time.Since(start)}
}
