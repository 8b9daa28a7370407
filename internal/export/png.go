// Package export rasterises a grid to PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrEmptyGrid is returned for a grid with no cells.
var ErrEmptyGrid = errors.New("nothing to export")

// Source is a square grid of resolved colors. *core.View satisfies it.
type Source interface {
	Dim() int
	At(row, col int) color.RGB
	Lines() bool
}

// Options controls the raster.
type Options struct {
	CellSize  int       // pixels per cell side
	GridLines bool      // draw lines when the source shows them
	Ruler     bool      // row and column indices along the top and left
	LineColor color.RGB // see LineColorFor
}

// LineColorFor picks a grid-line color that stays visible on bg.
func LineColorFor(bg color.RGB) color.RGB {
	c := bg.Colorful()
	l, _, _ := c.Lab()
	target := colorful.Color{R: 0, G: 0, B: 0}
	if l < 0.5 {
		target = colorful.Color{R: 1, G: 1, B: 1}
	}
	r, g, b := c.BlendLab(target, 0.3).Clamped().RGB255()
	return color.RGB{R: int(r), G: int(g), B: int(b)}
}

const rulerFontSize = 11.0

// Render draws src into a new image.
func Render(src Source, opts Options) (image.Image, error) {
	n := src.Dim()
	if n <= 0 {
		return nil, ErrEmptyGrid
	}
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", opts.CellSize)
	}
	cell := float64(opts.CellSize)

	var face font.Face
	margin := 0.0
	if opts.Ruler {
		ttfFont, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		face = truetype.NewFace(ttfFont, &truetype.Options{
			Size:    rulerFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		defer face.Close()
		// Widest label plus padding.
		margin = float64(len(strconv.Itoa(n-1)))*rulerFontSize*0.6 + 8
	}

	size := int(margin) + n*opts.CellSize
	dc := gg.NewContext(size, size)
	dc.SetColor(color.White.Colorful())
	dc.Clear()

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			dc.SetColor(src.At(r, c).Colorful())
			dc.DrawRectangle(margin+float64(c)*cell, margin+float64(r)*cell, cell, cell)
			dc.Fill()
		}
	}

	if opts.GridLines && src.Lines() {
		dc.SetColor(opts.LineColor.Colorful())
		dc.SetLineWidth(1)
		for i := 0; i <= n; i++ {
			p := margin + float64(i)*cell
			dc.DrawLine(margin, p, margin+float64(n)*cell, p)
			dc.DrawLine(p, margin, p, margin+float64(n)*cell)
		}
		dc.Stroke()
	}

	if face != nil {
		dc.SetFontFace(face)
		dc.SetColor(color.Black.Colorful())
		step := rulerStep(opts.CellSize)
		for i := 0; i < n; i += step {
			label := strconv.Itoa(i)
			center := margin + (float64(i)+0.5)*cell
			dc.DrawStringAnchored(label, center, margin/2, 0.5, 0.5)
			dc.DrawStringAnchored(label, margin/2, center, 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// rulerStep labels every cell when there is room, else every fifth.
func rulerStep(cellSize int) int {
	if cellSize >= 14 {
		return 1
	}
	return 5
}

// PNG encodes src as PNG to w.
func PNG(w io.Writer, src Source, opts Options) error {
	img, err := Render(src, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// SavePNG writes src to path, creating the directory if needed.
func SavePNG(path string, src Source, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	img, err := Render(src, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save png '%s': %w", path, err)
	}
	logger.Infof("Export: wrote %dx%d grid to '%s'", src.Dim(), src.Dim(), path)
	return nil
}
