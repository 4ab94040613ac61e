package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/phyyl673/FED/src/config"
	"github.com/phyyl673/FED/src/datasource/file"
	"github.com/phyyl673/FED/src/plotter"
	"github.com/phyyl673/FED/src/processor"
	"github.com/phyyl673/FED/src/storage"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	cfg, err := config.LoadConfig(jsonFolder, jsonFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()
	logger.SetMaxSize(cfg.LogMaxSize)

	if err := runPipeline(cfg, logger); err != nil {
		logger.Fatal(err.Error())
		logger.Close()
		os.Exit(1)
	}

	if cfg.Watch.Enabled {
		watchSource(cfg, logger)
	}
}

// runPipeline is the whole batch: load → clean → export → plot.
func runPipeline(cfg *config.Config, logger *storage.Logger) error {
	proc := processor.New(logger)

	df, err := proc.LoadGDPData(cfg.Data.SourceFile, processor.LoadOptions{
		Countries: cfg.Countries,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
		SavePath:  cfg.Data.LongCSV,
	})
	if err != nil {
		return err
	}

	method, err := processor.ParseFillMethod(cfg.FillMethod)
	if err != nil {
		return err
	}

	clean, err := proc.CleanGDPData(df, method, cfg.Data.CleanCSV)
	if err != nil {
		return err
	}

	if cfg.Data.CleanXLSX != "" {
		if err := file.ExportXLSX(clean, cfg.Data.CleanXLSX); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Excel export saved to %s", cfg.Data.CleanXLSX))
	}

	return plotter.New(logger).PlotGDPTrends(clean, cfg.Data.ChartPNG)
}

// watchSource blocks re-running the batch whenever the source file is
// rewritten. Convenience trigger only; each run is still the whole batch.
func watchSource(cfg *config.Config, logger *storage.Logger) {
	monitor, err := file.NewFileMonitor(cfg.Data.SourceFile, time.Duration(cfg.Watch.Debounce))
	if err != nil {
		logger.Error("Failed to start source monitor: " + err.Error())
		return
	}
	defer monitor.Close()

	logger.Info(fmt.Sprintf("Watching %s for changes, press Ctrl+C to exit", cfg.Data.SourceFile))
	err = monitor.Watch(func(path string) {
		logger.Info("Source file updated: " + path)
		if err := runPipeline(cfg, logger); err != nil {
			logger.Error("Re-run failed: " + err.Error())
		}
	})
	if err != nil {
		logger.Error("Monitoring error: " + err.Error())
	}
}
