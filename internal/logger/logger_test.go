package logger

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func withBuffer(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	install(cfg, &buf)
	t.Cleanup(func() { install(NewConfig(), io.Discard) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := withBuffer(t, Config{LogLevel: "warn"})
	Infof("quiet %d", 1)
	Warnf("loud %d", 2)
	out := buf.String()
	if strings.Contains(out, "quiet 1") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "loud 2") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestTagFiltering(t *testing.T) {
	buf := withBuffer(t, Config{LogLevel: "debug", DisabledTags: []string{"Fill"}})
	DebugTagf("fill", "dropped")
	DebugTagf("history", "kept")
	Debugf("untagged")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("disabled tag logged: %s", out)
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, "untagged") {
		t.Errorf("expected messages missing: %s", out)
	}
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	buf := withBuffer(t, Config{LogLevel: "debug", EnabledTags: []string{"history"}})
	Debugf("untagged")
	DebugTagf("history", "tagged")
	out := buf.String()
	if strings.Contains(out, "untagged") || !strings.Contains(out, "tagged") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestPackageFiltering(t *testing.T) {
	buf := withBuffer(t, Config{LogLevel: "debug", DisabledPackages: []string{"logger"}})
	Infof("from logger package")
	if buf.Len() != 0 {
		t.Errorf("disabled package logged: %s", buf.String())
	}
}

func TestSourceIsCaller(t *testing.T) {
	buf := withBuffer(t, Config{LogLevel: "debug"})
	Infof("where")
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Errorf("source should name the caller file: %s", buf.String())
	}
}
