// Package color models cell colors as structured RGB triples and converts
// them to and from the textual forms used by snapshots.
package color

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ShadeStep is the per-channel amount Shade subtracts and Lighten adds.
const ShadeStep = 25

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

var (
	hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	// Channels may be negative or wider than a byte after repeated shading.
	rgbPattern = regexp.MustCompile(`^rgb\((-?\d+), (-?\d+), (-?\d+)\)$`)
)

// RGB is a color triple. Channels are deliberately unclamped: shading and
// lightening may leave them outside [0, 255].
type RGB struct {
	R, G, B int
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// String formats the color as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the color as "#rrggbb", clamping each channel.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// Clamped returns c with every channel forced into [0, 255].
func (c RGB) Clamped() RGB {
	return RGB{clamp(c.R), clamp(c.G), clamp(c.B)}
}

// InRange reports whether every channel lies in [0, 255].
func (c RGB) InRange() bool {
	return c.R == clamp(c.R) && c.G == clamp(c.G) && c.B == clamp(c.B)
}

// Colorful converts to a go-colorful color, clamping out-of-range channels.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(clamp(c.R)) / 255,
		G: float64(clamp(c.G)) / 255,
		B: float64(clamp(c.B)) / 255,
	}
}

// TCell converts to a terminal true color.
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(clamp(c.R)), int32(clamp(c.G)), int32(clamp(c.B)))
}

// Shade darkens every channel by ShadeStep without clamping.
func Shade(c RGB) RGB {
	return RGB{c.R - ShadeStep, c.G - ShadeStep, c.B - ShadeStep}
}

// Lighten brightens every channel by ShadeStep without clamping.
func Lighten(c RGB) RGB {
	return RGB{c.R + ShadeStep, c.G + ShadeStep, c.B + ShadeStep}
}

// Random returns a color with every channel uniform in [0, 255].
func Random(rng *rand.Rand) RGB {
	if rng == nil {
		return RGB{rand.Intn(256), rand.Intn(256), rand.Intn(256)}
	}
	return RGB{rng.Intn(256), rng.Intn(256), rng.Intn(256)}
}

// ParseHex parses a 6-digit "#RRGGBB" string.
func ParseHex(s string) (RGB, error) {
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, nil
}

// ParseRGB parses the "rgb(r, g, b)" form.
func ParseRGB(s string) (RGB, error) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q is not rgb(r, g, b)", ErrInvalidColor, s)
	}
	var ch [3]int
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return RGB{}, fmt.Errorf("%w: channel %q: %v", ErrInvalidColor, m[i+1], err)
		}
		ch[i] = v
	}
	return RGB{ch[0], ch[1], ch[2]}, nil
}

// Parse accepts either "#RRGGBB" or "rgb(r, g, b)".
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	return ParseRGB(s)
}

// MustParse is Parse for package-level literals; it panics on error.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
