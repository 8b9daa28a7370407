// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Editor   EditorConfig   `toml:"editor"`
	Files    FilesConfig    `toml:"files"`
	Export   ExportConfig   `toml:"export"`
	Autosave AutosaveConfig `toml:"autosave"`
	Theme    string         `toml:"theme"` // path to a TOML theme file, optional
}

// EditorConfig holds the initial editing state.
type EditorConfig struct {
	GridSize        int    `toml:"grid_size"`
	PenColor        string `toml:"pen_color"`
	BackgroundColor string `toml:"background_color"`
	GridLines       bool   `toml:"grid_lines"`
	Tool            string `toml:"tool"`
	MaxHistory      int    `toml:"max_history"` // 0 keeps every action
	SystemClipboard bool   `toml:"system_clipboard"`
}

// FilesConfig says where snapshots and exports go.
type FilesConfig struct {
	SaveDir      string `toml:"save_dir"`
	SnapshotName string `toml:"snapshot_name"`
	ExportName   string `toml:"export_name"`
}

// ExportConfig controls PNG rasterisation.
type ExportConfig struct {
	CellSize  int  `toml:"cell_size"`
	GridLines bool `toml:"grid_lines"`
	Ruler     bool `toml:"ruler"`
}

// AutosaveConfig controls the background saver.
type AutosaveConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for toml.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			GridSize:        DefaultGridSize,
			PenColor:        DefaultPenColor,
			BackgroundColor: DefaultBackgroundColor,
			GridLines:       DefaultGridLines,
			Tool:            "pen",
			SystemClipboard: true,
		},
		Files: FilesConfig{
			SnapshotName: DefaultSnapshotName,
			ExportName:   DefaultExportName,
		},
		Export: ExportConfig{
			CellSize:  DefaultExportCellSize,
			GridLines: true,
		},
		Autosave: AutosaveConfig{
			Interval: Duration{DefaultAutosaveInterval},
		},
	}
}

// DefaultPath returns ~/.config/pixie/config.toml, or "" when the user
// config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load builds the effective config: defaults, then the TOML file (a
// missing file is fine), then flag overrides, then validation. It runs
// before the logger is set up, so problems are returned, not logged.
func Load(path string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	var warnings []string
	if path != "" {
		undecoded, err := decodeFile(path, cfg)
		if err != nil {
			return nil, nil, err
		}
		if len(undecoded) > 0 {
			warnings = append(warnings, fmt.Sprintf("config '%s': unrecognized keys: %v", path, undecoded))
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	warnings = append(warnings, cfg.validate()...)
	return cfg, warnings, nil
}

// decodeFile merges path into cfg. Keys absent from the file keep the
// values already in cfg.
func decodeFile(path string, cfg *Config) ([]toml.Key, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", path, err)
	}
	metadata, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return metadata.Undecoded(), nil
}

// validate resets invalid values to defaults and reports what it changed.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var fixed []string
	reset := func(format string, args ...interface{}) {
		fixed = append(fixed, fmt.Sprintf(format, args...))
	}

	if c.Editor.GridSize < MinGridSize || c.Editor.GridSize > MaxGridSize {
		reset("editor.grid_size %d outside %d..%d, using %d", c.Editor.GridSize, MinGridSize, MaxGridSize, defaults.Editor.GridSize)
		c.Editor.GridSize = defaults.Editor.GridSize
	}
	if _, err := color.ParseHex(c.Editor.PenColor); err != nil {
		reset("editor.pen_color: %v, using %s", err, defaults.Editor.PenColor)
		c.Editor.PenColor = defaults.Editor.PenColor
	}
	if _, err := color.ParseHex(c.Editor.BackgroundColor); err != nil {
		reset("editor.background_color: %v, using %s", err, defaults.Editor.BackgroundColor)
		c.Editor.BackgroundColor = defaults.Editor.BackgroundColor
	}
	if c.Editor.MaxHistory < 0 {
		reset("editor.max_history must not be negative, using 0")
		c.Editor.MaxHistory = 0
	}
	if c.Files.SnapshotName == "" {
		c.Files.SnapshotName = defaults.Files.SnapshotName
	}
	if c.Files.ExportName == "" {
		c.Files.ExportName = defaults.Files.ExportName
	}
	if c.Export.CellSize <= 0 {
		reset("export.cell_size must be positive, using %d", defaults.Export.CellSize)
		c.Export.CellSize = defaults.Export.CellSize
	}
	if c.Autosave.Interval.Duration <= 0 {
		reset("autosave.interval must be positive, using %v", defaults.Autosave.Interval.Duration)
		c.Autosave.Interval = defaults.Autosave.Interval
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	return fixed
}

// SavePath joins name onto the configured save directory.
func (c *Config) SavePath(name string) string {
	if c.Files.SaveDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(expandHome(c.Files.SaveDir), name)
}

func expandHome(p string) string {
	if len(p) == 0 || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
