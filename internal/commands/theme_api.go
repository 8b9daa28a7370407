package commands

import "github.com/bethropolis/pixie/internal/theme"

// ThemeAPI is the subset of the editor API the theme commands need.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}
