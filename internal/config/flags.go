// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// Flags holds values parsed from command-line flags.
// Only flags that were actually set override the config file.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	GridSize        *int
	PenColor        *string
	BackgroundColor *string
	GridLines       *bool
	Tool            *string
	MaxHistory      *int
	SaveDir         *string
	Autosave        *bool
	AutosaveEvery   *time.Duration
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
}

// NewFlags defines the command-line flags on a fresh FlagSet.
func NewFlags(name string) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	f.ConfigFilePath = f.fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = f.fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = f.fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = f.fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.GridSize = f.fs.Int("size", 0, fmt.Sprintf("Grid side length %d..%d - Overrides config file", MinGridSize, MaxGridSize))
	f.PenColor = f.fs.String("pen", "", "Initial pen color as #RRGGBB")
	f.BackgroundColor = f.fs.String("background", "", "Background color as #RRGGBB")
	f.GridLines = f.fs.Bool("gridlines", DefaultGridLines, "Show grid lines")
	f.Tool = f.fs.String("tool", "", "Initial tool (pen, eraser, fill, shading, lighten, colorful)")
	f.MaxHistory = f.fs.Int("max-history", -1, "Cap on undo entries, 0 for unlimited")
	f.SaveDir = f.fs.String("save-dir", "", "Directory for snapshots and exports")
	f.Autosave = f.fs.Bool("autosave", false, "Periodically save the snapshot while modified")
	f.AutosaveEvery = f.fs.Duration("autosave-interval", 0, "Autosave period, e.g. 30s")
	f.EnableTags = f.fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = f.fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = f.fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = f.fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = f.fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = f.fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = f.fs.Bool("system-clipboard", true, "Use system clipboard instead of internal clipboard")
	return f
}

// Parse parses args and returns the remaining non-flag arguments
// (an optional snapshot path).
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "size":
			cfg.Editor.GridSize = *f.GridSize
		case "pen":
			cfg.Editor.PenColor = *f.PenColor
		case "background":
			cfg.Editor.BackgroundColor = *f.BackgroundColor
		case "gridlines":
			cfg.Editor.GridLines = *f.GridLines
		case "tool":
			cfg.Editor.Tool = *f.Tool
		case "max-history":
			if *f.MaxHistory >= 0 {
				cfg.Editor.MaxHistory = *f.MaxHistory
			}
		case "save-dir":
			cfg.Files.SaveDir = *f.SaveDir
		case "autosave":
			cfg.Autosave.Enabled = *f.Autosave
		case "autosave-interval":
			cfg.Autosave.Interval = Duration{*f.AutosaveEvery}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
