// Package logger provides configurable logging capabilities
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger. It is embedded in the
// application config under [logger].
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"level"`

	// LogFilePath is the log destination. "-" means stderr, empty means
	// the default file in the user cache dir.
	LogFilePath string `toml:"file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// The package is the directory name of the calling file, e.g. "history".
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles / DisabledFiles filter on the caller's base file name.
	EnabledFiles  []string `toml:"enabled_files"`
	DisabledFiles []string `toml:"disabled_files"`

	level    slog.Level
	tags     filterSet
	packages filterSet
	files    filterSet
}

// NewConfig returns the default logger settings.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// filterSet is an allow list plus a deny list; deny wins.
type filterSet struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

// permits reports whether key passes the set. An empty key only fails
// when an allow list is present.
func (f filterSet) permits(key string) bool {
	key = strings.ToLower(key)
	if _, denied := f.deny[key]; denied {
		return false
	}
	if f.allow == nil {
		return true
	}
	_, ok := f.allow[key]
	return ok
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process parses string levels and lists into lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.tags = filterSet{allow: sliceToSet(c.EnabledTags), deny: sliceToSet(c.DisabledTags)}
	c.packages = filterSet{allow: sliceToSet(c.EnabledPackages), deny: sliceToSet(c.DisabledPackages)}
	c.files = filterSet{allow: sliceToSet(c.EnabledFiles), deny: sliceToSet(c.DisabledFiles)}
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
