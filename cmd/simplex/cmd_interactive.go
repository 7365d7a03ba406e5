package main

import (
	"fmt"

	"simplex/cmd/simplex/ui"
	"simplex/cmd/simplex/workbench"
	"simplex/internal/logging"
)

// runWorkbench starts the interactive editor.
func runWorkbench() error {
	theme := ui.ThemeFor(cfg.UI.DarkMode(ui.DetectDark()))
	logging.UI("Starting workbench: theme dark=%v", theme.IsDark)

	err := workbench.Run(workbench.Options{
		Session:     newSession(),
		Styles:      ui.NewStyles(theme),
		LoadExample: cfg.UI.LoadExample,
		SplitRatio:  cfg.UI.SplitPaneRatio,
	})
	if err != nil {
		return fmt.Errorf("workbench failed: %w", err)
	}
	return nil
}
