// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/pixie/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names looked up by the renderer and the status bar.
const (
	StyleDefault           = "Default"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBar.Modified"
	StyleStatusBarMessage  = "StatusBar.Message"
	StyleStatusBarCommand  = "StatusBar.Command"
	StyleGridLine          = "GridLine"
	StyleCursor            = "Cursor"
	StyleRuler             = "Ruler"
)

// Theme is a named set of tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to its base name (the
// part before the first dot) and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Exact match
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Base name, e.g. "StatusBar" for "StatusBar.Modified"
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Theme default
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// PixieDark is the built-in default.
var PixieDark = func() Theme {
	bg := tcell.NewHexColor(0x1e2127)
	fg := tcell.NewHexColor(0xc5cdd9)
	bar := tcell.NewHexColor(0x2a2f38)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)

	// The grid paints cell colors itself; these only style the chrome.
	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	return Theme{
		Name:   "Pixie Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleStatusBar:         tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bar).Foreground(yellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
			StyleStatusBarCommand:  tcell.StyleDefault.Background(bar).Foreground(green).Bold(true),
			StyleGridLine:          base.Foreground(muted),
			StyleCursor:            base.Foreground(yellow).Bold(true),
			StyleRuler:             base.Foreground(muted),
		},
	}
}()

// PixieLight suits light terminals.
var PixieLight = func() Theme {
	bg := tcell.NewHexColor(0xfafafa)
	fg := tcell.NewHexColor(0x383a42)
	bar := tcell.NewHexColor(0xe5e5e6)
	muted := tcell.NewHexColor(0xa0a1a7)
	blue := tcell.NewHexColor(0x4078f2)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	return Theme{
		Name: "Pixie Light",
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleStatusBar:         tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarModified: tcell.StyleDefault.Background(bar).Foreground(blue),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
			// No StatusBar.Command: it falls back to StatusBar.
			StyleGridLine:          base.Foreground(muted),
			StyleCursor:            base.Foreground(blue).Bold(true),
			StyleRuler:             base.Foreground(muted),
		},
	}
}()
