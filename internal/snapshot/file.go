package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile writes s to path through a temp file and rename, so a crash
// never leaves a half-written snapshot behind.
func SaveFile(path string, s *Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir '%s': %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".pixie-*.json")
	if err != nil {
		return fmt.Errorf("create temp file in '%s': %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot '%s': %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace snapshot '%s': %w", path, err)
	}
	return nil
}

// LoadFile reads and validates the snapshot at path.
func LoadFile(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot '%s': %w", path, err)
	}
	s, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("load '%s': %w", path, err)
	}
	return s, nil
}
