package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/logger"
	"github.com/bethropolis/pixie/internal/plugin"
	"github.com/bethropolis/pixie/internal/tool"
)

// RegisterAppCommands registers the built-in : commands.
func RegisterAppCommands(api plugin.EditorAPI) {
	cmds := map[string]plugin.CommandFunc{
		"pen":    penCommand(api),
		"bg":     backgroundCommand(api),
		"tool":   toolCommand(api),
		"size":   sizeCommand(api),
		"clear":  clearCommand(api),
		"grid":   gridCommand(api),
		"undo":   undoCommand(api),
		"redo":   redoCommand(api),
		"w":      saveCommand(api),
		"save":   saveCommand(api),
		"e":      loadCommand(api),
		"load":   loadCommand(api),
		"export": exportCommand(api),
		"copy":   copyCommand(api),
		"paste":  pasteCommand(api),
		"q":      quitCommand(api, false),
		"quit":   quitCommand(api, false),
		"q!":     quitCommand(api, true),
		"wq":     saveQuitCommand(api),
	}
	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}

	RegisterThemeCommands(api, api)
}

// parseColorArgs rejoins args so "rgb(1, 2, 3)" survives whitespace splitting.
func parseColorArgs(args []string) (color.RGB, error) {
	return color.Parse(strings.Join(args, " "))
}

func penCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Pen: %s", api.GetPenColor())
			return nil
		}
		c, err := parseColorArgs(args)
		if err != nil {
			return err
		}
		api.SetPenColor(c)
		api.SetStatusMessage("Pen: %s", c)
		return nil
	}
}

func backgroundCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Background: %s", api.GetBackgroundColor())
			return nil
		}
		c, err := parseColorArgs(args)
		if err != nil {
			return err
		}
		api.SetBackgroundColor(c)
		api.SetStatusMessage("Background: %s", c)
		return nil
	}
}

func toolCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			names := make([]string, len(tool.All))
			for i, t := range tool.All {
				names[i] = t.String()
			}
			api.SetStatusMessage("Tool: %s (available: %s)", api.GetTool(), strings.Join(names, ", "))
			return nil
		}
		t, err := tool.Parse(args[0])
		if err != nil {
			return err
		}
		api.SetTool(t)
		api.SetStatusMessage("Tool: %s", t)
		return nil
	}
}

func sizeCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Size: %d", api.GetGridSize())
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid size '%s'", args[0])
		}
		if err := api.Resize(n); err != nil {
			return err
		}
		api.SetStatusMessage("Grid resized to %dx%d", n, n)
		return nil
	}
}

func clearCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if err := api.Clear(); err != nil {
			return err
		}
		api.SetStatusMessage("Grid cleared")
		return nil
	}
}

func gridCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		on := !api.GetGridLines()
		if len(args) > 0 {
			switch strings.ToLower(args[0]) {
			case "on":
				on = true
			case "off":
				on = false
			default:
				return fmt.Errorf("usage: grid [on|off]")
			}
		}
		api.SetGridLines(on)
		if on {
			api.SetStatusMessage("Grid lines ON")
		} else {
			api.SetStatusMessage("Grid lines OFF")
		}
		return nil
	}
}

func undoCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		ok, err := api.Undo()
		if err != nil {
			return err
		}
		if !ok {
			api.SetStatusMessage("Nothing to undo")
		}
		return nil
	}
}

func redoCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		ok, err := api.Redo()
		if err != nil {
			return err
		}
		if !ok {
			api.SetStatusMessage("Nothing to redo")
		}
		return nil
	}
}

func pathArg(args []string) string {
	return strings.Join(args, " ")
}

func saveCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		path, err := api.SaveSnapshot(pathArg(args))
		if err != nil {
			return err
		}
		api.SetStatusMessage("Saved %s", path)
		return nil
	}
}

func loadCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		path, err := api.LoadSnapshot(pathArg(args))
		if err != nil {
			return err
		}
		api.SetStatusMessage("Loaded %s", path)
		return nil
	}
}

func exportCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		path, err := api.ExportPNG(pathArg(args))
		if err != nil {
			return err
		}
		api.SetStatusMessage("Exported %s", path)
		return nil
	}
}

func copyCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if err := api.CopySnapshot(); err != nil {
			return err
		}
		api.SetStatusMessage("Copied snapshot to clipboard")
		return nil
	}
}

func pasteCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if err := api.PasteSnapshot(); err != nil {
			return err
		}
		api.SetStatusMessage("Pasted snapshot from clipboard")
		return nil
	}
}

func quitCommand(api plugin.EditorAPI, force bool) plugin.CommandFunc {
	return func(args []string) error {
		api.RequestQuit(force)
		return nil
	}
}

func saveQuitCommand(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if _, err := api.SaveSnapshot(pathArg(args)); err != nil {
			return err
		}
		api.RequestQuit(true)
		return nil
	}
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			currentTheme := themeAPI.GetTheme()
			themeAPI.SetStatusMessage("Current theme: %s", currentTheme.Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themes := themeAPI.ListThemes()
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themes, ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	if err := api.RegisterCommand("theme", themeCmdFunc); err != nil {
		logger.Warnf("Failed to register ':theme' command: %v", err)
	}
	if err := api.RegisterCommand("themes", themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register ':themes' command: %v", err)
	}
}
