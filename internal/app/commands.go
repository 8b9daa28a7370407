package app

import (
	"strings"

	"github.com/bethropolis/pixie/internal/commands"
	"github.com/bethropolis/pixie/internal/logger"
)

// registerAppCommands registers the built-in commands plus :help.
func registerAppCommands(app *App) {
	api := app.editorAPI
	commands.RegisterAppCommands(api)

	helpCmdFunc := func(args []string) error {
		api.SetStatusMessage("Commands: %s", strings.Join(app.GetModeHandler().Commands(), " "))
		return nil
	}
	if err := api.RegisterCommand("help", helpCmdFunc); err != nil {
		logger.Warnf("Failed to register ':help' command: %v", err)
	}
}
