package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
)

// ErrInvalidSnapshot is wrapped by every validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// InvalidSnapshotError names the field that failed.
type InvalidSnapshotError struct {
	Field  string
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	if e.Field == "" {
		return "invalid snapshot: " + e.Reason
	}
	return fmt.Sprintf("invalid snapshot: %s: %s", e.Field, e.Reason)
}

func (e *InvalidSnapshotError) Unwrap() error { return ErrInvalidSnapshot }

func invalid(field, format string, args ...interface{}) error {
	return &InvalidSnapshotError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

var (
	hexPattern      = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	positionPattern = regexp.MustCompile(`^\d+,\d+$`)
	pixelPattern    = regexp.MustCompile(`^rgb\(\d{1,3}, \d{1,3}, \d{1,3}\)$`)
)

// Validate is the acceptance check that must pass before a snapshot is
// decoded. It looks at JSON types and string shapes only; whether pixel
// positions fit the grid is checked by Restore.
func Validate(raw []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invalid("", "not a JSON object: %v", err)
	}

	size, ok := doc["gridSize"].(float64)
	if !ok {
		return invalid("gridSize", "must be a number")
	}
	if size <= 0 || size != math.Trunc(size) {
		return invalid("gridSize", "must be a positive integer, got %v", size)
	}
	if size > MaxGridSize {
		return invalid("gridSize", "%v exceeds %d", size, MaxGridSize)
	}

	status, ok := doc["gridLinesStatus"].(string)
	if !ok || (status != GridLinesOn && status != GridLinesOff) {
		return invalid("gridLinesStatus", "must be %q or %q", GridLinesOn, GridLinesOff)
	}

	for _, field := range []string{"penColor", "backgroundColor"} {
		s, ok := doc[field].(string)
		if !ok || !hexPattern.MatchString(s) {
			return invalid(field, "must be a #RRGGBB color")
		}
	}

	pixels, ok := doc["pixels"].([]interface{})
	if !ok {
		return invalid("pixels", "must be an array")
	}
	for i, p := range pixels {
		field := fmt.Sprintf("pixels[%d]", i)
		obj, ok := p.(map[string]interface{})
		if !ok {
			return invalid(field, "must be an object")
		}
		pos, ok := obj["position"].(string)
		if !ok || !positionPattern.MatchString(pos) {
			return invalid(field+".position", "must match row,col")
		}
		col, ok := obj["color"].(string)
		if !ok || !pixelPattern.MatchString(col) {
			return invalid(field+".color", "must match rgb(r, g, b)")
		}
	}
	return nil
}
