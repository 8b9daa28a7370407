// cmd/pixie/main.go
package main

import (
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/pixie/internal/app"
	"github.com/bethropolis/pixie/internal/config"
	"github.com/bethropolis/pixie/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		stlog.Fatalf("Failed to parse flags: %v", err)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	var snapshotPath string
	if len(args) > 0 {
		snapshotPath = args[0]
	}

	// --- Configuration ---
	cfg, warnings, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	for _, w := range warnings {
		logger.Warnf("Config: %s", w)
	}
	logger.Infof("Starting Pixie %s", version)
	if snapshotPath != "" {
		logger.Debugf("Snapshot path specified: %s", snapshotPath)
	} else {
		logger.Debugf("No snapshot specified, starting with a blank %dx%d grid.", cfg.Editor.GridSize, cfg.Editor.GridSize)
	}

	// --- Create and Run App ---
	pixieApp, err := app.NewApp(cfg, snapshotPath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "pixie: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	if err := pixieApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("Pixie finished.")
}
