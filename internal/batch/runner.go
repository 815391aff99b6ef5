package batch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/index"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/report"
	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// ProcessFunc processes one scene directory. Tests substitute their own.
type ProcessFunc func(scenePath string, indices []index.Name) report.SceneReport

// Runner fans scenes out over a bounded worker pool. Scenes are
// independent; results land in input order no matter when each worker
// finishes.
type Runner struct {
	Workers  int
	Log      *slog.Logger
	Progress bool
	Process  ProcessFunc
}

// Run processes every scene and returns one report per scene, ordered
// as given. A panic inside one scene becomes a wholly-failed report and
// the batch continues.
func (r *Runner) Run(inputRoot string, scenes []string, indices []index.Name) []report.SceneReport {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.Default(int64(len(scenes)), "Processing scenes")
	}

	results := make([]report.SceneReport, len(scenes))
	var mu sync.Mutex

	wp := workerpool.New(workers)
	for i, scene := range scenes {
		i, scene := i, scene
		wp.Submit(func() {
			rep := r.runScene(filepath.Join(inputRoot, scene), scene, indices)
			mu.Lock()
			results[i] = rep
			if bar != nil {
				bar.Add(1)
			}
			mu.Unlock()
		})
	}
	wp.StopWait()

	return results
}

func (r *Runner) runScene(scenePath, scene string, indices []index.Name) (rep report.SceneReport) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Log.Error("scene panicked", "scene", scene, "panic", rec)
			rep = report.Failed(scene, indices, fmt.Sprintf("unexpected error: %v", rec))
		}
	}()
	return r.Process(scenePath, indices)
}
