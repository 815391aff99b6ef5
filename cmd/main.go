package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/batch"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/index"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/logging"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/notification"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/properties"
	"github.com/JaguaNaTioN/Veg-index-processor/internal/report"
	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagScene     string
	flagInput     string
	flagOutput    string
	flagIndices   []string
	flagWorkers   int
	flagQuicklook bool
)

func printBanner() {
	banner := figure.NewFigure("Veg Index", "isometric1", true)
	bannercolor.Cyan(banner.String())
	fmt.Println()
}

func listScenes(inputRoot string) ([]string, error) {
	entries, err := os.ReadDir(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read input root %s: %w", inputRoot, err)
	}
	var scenes []string
	for _, entry := range entries {
		if entry.IsDir() {
			scenes = append(scenes, entry.Name())
		}
	}
	sort.Strings(scenes)
	return scenes, nil
}

func run(cmd *cobra.Command, args []string) error {
	printBanner()
	godal.RegisterAll()

	indices := index.All()
	if len(flagIndices) > 0 {
		indices = indices[:0]
		for _, s := range flagIndices {
			name, err := index.Parse(s)
			if err != nil {
				return err
			}
			indices = append(indices, name)
		}
	}

	scenes, err := listScenes(flagInput)
	if err != nil {
		return err
	}
	if flagScene != "" {
		found := false
		for _, scene := range scenes {
			if scene == flagScene {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("scene %s not found under %s", flagScene, flagInput)
		}
		scenes = []string{flagScene}
	}
	if len(scenes) == 0 {
		return fmt.Errorf("no scene directories under %s", flagInput)
	}

	if err := os.MkdirAll(flagOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output root %s: %w", flagOutput, err)
	}

	stamp := time.Now().Format("20060102_150405")
	logger, closer, err := logging.Setup(properties.LogDir(), stamp)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("batch index processing started", "scenes", len(scenes), "indices", len(indices), "workers", flagWorkers)

	processor := &batch.Processor{
		OutputRoot: flagOutput,
		Log:        logger,
		Quicklook:  flagQuicklook,
	}
	runner := &batch.Runner{
		Workers:  flagWorkers,
		Log:      logger,
		Progress: len(scenes) > 1,
		Process:  processor.ProcessScene,
	}

	reports := runner.Run(flagInput, scenes, indices)

	summaryPath, err := report.Write(flagOutput, stamp, reports)
	if err != nil {
		logger.Error("failed to write summary", "error", err)
		return err
	}
	logger.Info("summary written", "path", summaryPath)

	scenesOK, scenesFailed := 0, 0
	for _, rep := range reports {
		clean := true
		for _, result := range rep.Results {
			if result.Status != report.StatusOK {
				clean = false
				break
			}
		}
		if clean {
			scenesOK++
		} else {
			scenesFailed++
		}
	}
	logger.Info("all scenes processed", "ok", scenesOK, "with_failures", scenesFailed)

	if err := notification.SendBatchSummary(scenesOK, scenesFailed, summaryPath); err != nil {
		logger.Warn("discord notification failed", "error", err)
	}

	// Per-scene and per-index failures are report entries, not a failed run.
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load("../.env")
	}

	rootCmd := &cobra.Command{
		Use:          "veg-index-processor",
		Short:        "Batch-compute spectral indices from Landsat scene directories",
		RunE:         run,
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&flagScene, "scene", "", "process only this scene folder")
	rootCmd.Flags().StringVar(&flagInput, "input", properties.InputRoot(), "input folder containing scenes")
	rootCmd.Flags().StringVar(&flagOutput, "output", properties.OutputRoot(), "output folder for results")
	rootCmd.Flags().StringSliceVar(&flagIndices, "indices", nil, "indices to compute (default: all)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "number of scenes processed in parallel")
	rootCmd.Flags().BoolVar(&flagQuicklook, "quicklook", false, "also write a grayscale PNG per index")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
