package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, warnings, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if cfg.Editor.GridSize != DefaultGridSize || cfg.Editor.PenColor != DefaultPenColor {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Autosave.Interval.Duration != DefaultAutosaveInterval {
		t.Errorf("interval = %v", cfg.Autosave.Interval)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
theme = "mono.toml"

[logger]
level = "debug"
disabled_tags = ["fill"]

[editor]
grid_size = 32
pen_color = "#123456"
grid_lines = false
max_history = 100

[export]
cell_size = 8
ruler = true

[autosave]
enabled = true
interval = "15s"
`)
	cfg, warnings, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	if cfg.Editor.GridSize != 32 || cfg.Editor.PenColor != "#123456" || cfg.Editor.GridLines {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.BackgroundColor != DefaultBackgroundColor {
		t.Errorf("unset key lost its default: %q", cfg.Editor.BackgroundColor)
	}
	if cfg.Logger.LogLevel != "debug" || len(cfg.Logger.DisabledTags) != 1 {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if cfg.Export.CellSize != 8 || !cfg.Export.Ruler {
		t.Errorf("export = %+v", cfg.Export)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.Interval.Duration != 15*time.Second {
		t.Errorf("autosave = %+v", cfg.Autosave)
	}
	if cfg.Theme != "mono.toml" {
		t.Errorf("theme = %q", cfg.Theme)
	}
}

func TestLoadRejectsBrokenTOML(t *testing.T) {
	path := writeConfig(t, "[editor\ngrid_size = ")
	if _, _, err := Load(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 4\n")
	_, warnings, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "tab_width") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestValidateResetsBadValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
grid_size = 0
pen_color = "red"
background_color = "#abc"
max_history = -3

[export]
cell_size = -1
`)
	cfg, warnings, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 5 {
		t.Errorf("warnings = %v", warnings)
	}
	d := NewDefaultConfig()
	if cfg.Editor.GridSize != d.Editor.GridSize || cfg.Editor.PenColor != d.Editor.PenColor ||
		cfg.Editor.BackgroundColor != d.Editor.BackgroundColor || cfg.Editor.MaxHistory != 0 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Export.CellSize != d.Export.CellSize {
		t.Errorf("cell size = %d", cfg.Export.CellSize)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[editor]\ngrid_size = 32\npen_color = \"#111111\"\n")
	f := NewFlags("pixie")
	rest, err := f.Parse([]string{"-size", "8", "-log-tags", "fill, history", "-autosave-interval", "5s", "art.json"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 || rest[0] != "art.json" {
		t.Errorf("args = %v", rest)
	}

	cfg, _, err := Load(path, f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.GridSize != 8 {
		t.Errorf("grid size = %d", cfg.Editor.GridSize)
	}
	if cfg.Editor.PenColor != "#111111" {
		t.Errorf("unset flag overrode file: %q", cfg.Editor.PenColor)
	}
	if got := cfg.Logger.EnabledTags; len(got) != 2 || got[1] != "history" {
		t.Errorf("tags = %v", got)
	}
	if cfg.Autosave.Interval.Duration != 5*time.Second {
		t.Errorf("interval = %v", cfg.Autosave.Interval)
	}
	if !cfg.Editor.SystemClipboard {
		t.Error("system clipboard default flipped by an unset flag")
	}
}

func TestSavePath(t *testing.T) {
	cfg := NewDefaultConfig()
	if got := cfg.SavePath("data.json"); got != "data.json" {
		t.Errorf("no save dir: %q", got)
	}
	cfg.Files.SaveDir = "/tmp/art"
	if got := cfg.SavePath("data.json"); got != filepath.Join("/tmp/art", "data.json") {
		t.Errorf("save dir: %q", got)
	}
	if got := cfg.SavePath("/abs/x.json"); got != "/abs/x.json" {
		t.Errorf("absolute: %q", got)
	}
}
