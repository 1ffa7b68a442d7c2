package cmd

import (
	"github.com/spf13/cobra"

	"github.com/studygenie/studygenie/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setupEnv(cmd, envOpts{logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(e.deps)
}
