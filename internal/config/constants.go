package config

import "time"

// Base application details
const AppName = "pixie"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"
const DefaultConfigFileName = "config.toml"

// Grid
const DefaultGridSize = 16
const MinGridSize = 1
const MaxGridSize = 512
const DefaultPenColor = "#000000"
const DefaultBackgroundColor = "#ffffff"
const DefaultGridLines = true

// Files
const DefaultSnapshotName = "data.json"
const DefaultExportName = "screenshot.png"

// Export
const DefaultExportCellSize = 20

// Autosave
const DefaultAutosaveInterval = time.Minute

// Status Bar
const MessageTimeout = 4 * time.Second
