package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/index"
	"github.com/gocarina/gocsv"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// IndexResult is the outcome of computing one index for one scene.
type IndexResult struct {
	Status  Status
	Reason  string
	Elapsed time.Duration
}

// SceneReport aggregates the per-index outcomes for one scene.
type SceneReport struct {
	Scene   string
	Results map[index.Name]IndexResult
	Elapsed time.Duration
}

// Failed builds a report marking every requested index failed with one
// reason, used when a whole scene is unreadable or panics.
func Failed(scene string, indices []index.Name, reason string) SceneReport {
	results := make(map[index.Name]IndexResult, len(indices))
	for _, name := range indices {
		results[name] = IndexResult{Status: StatusFailed, Reason: reason}
	}
	return SceneReport{Scene: scene, Results: results}
}

// Row is one summary line. The column set is fixed; indices that were
// not requested serialize as empty cells.
type Row struct {
	Scene   string  `csv:"scene"`
	NDVI    string  `csv:"NDVI"`
	SAVI    string  `csv:"SAVI"`
	EVI     string  `csv:"EVI"`
	ARVI    string  `csv:"ARVI"`
	NBR     string  `csv:"NBR"`
	NBWI    string  `csv:"NBWI"`
	NDBI    string  `csv:"NDBI"`
	GCI     string  `csv:"GCI"`
	TimeSec float64 `csv:"time_sec"`
}

func (r *Row) set(name index.Name, value string) {
	switch name {
	case index.NDVI:
		r.NDVI = value
	case index.SAVI:
		r.SAVI = value
	case index.EVI:
		r.EVI = value
	case index.ARVI:
		r.ARVI = value
	case index.NBR:
		r.NBR = value
	case index.NBWI:
		r.NBWI = value
	case index.NDBI:
		r.NDBI = value
	case index.GCI:
		r.GCI = value
	}
}

// Rows flattens scene reports into summary rows, one per scene, in the
// order given. Successful indices show the success marker, everything
// else its failure reason.
func Rows(reports []SceneReport) []Row {
	rows := make([]Row, 0, len(reports))
	for _, rep := range reports {
		row := Row{Scene: rep.Scene, TimeSec: round2(rep.Elapsed.Seconds())}
		for name, result := range rep.Results {
			cell := string(StatusOK)
			if result.Status != StatusOK {
				cell = result.Reason
				if cell == "" {
					cell = string(result.Status)
				}
			}
			row.set(name, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// Write serializes the batch summary to summary_<stamp>.csv at the
// output root and returns the file path.
func Write(outputRoot, stamp string, reports []SceneReport) (string, error) {
	rows := Rows(reports)
	path := filepath.Join(outputRoot, fmt.Sprintf("summary_%s.csv", stamp))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating summary file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("error writing summary CSV: %w", err)
	}
	return path, nil
}
