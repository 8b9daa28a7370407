// Package tool maps the active tool and a target cell to grid mutations
// and the history action that records them.
package tool

import (
	"fmt"
	"strings"
)

// Tool is a drawing mode.
type Tool int

const (
	Pen Tool = iota
	Eraser
	Fill
	Shade
	Lighten
	Colorful
)

var toolNames = [...]string{
	Pen:      "pen",
	Eraser:   "eraser",
	Fill:     "fill",
	Shade:    "shading",
	Lighten:  "lighten",
	Colorful: "colorful",
}

// All lists every tool in toolbar order.
var All = []Tool{Pen, Eraser, Fill, Shade, Lighten, Colorful}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Parse resolves a tool by name. "shade" is accepted for shading.
func Parse(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "shade" {
		return Shade, nil
	}
	for _, t := range All {
		if t.String() == name {
			return t, nil
		}
	}
	return Pen, fmt.Errorf("unknown tool %q", name)
}
