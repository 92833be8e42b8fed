package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/portfolio-cards/gradecard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal client (default)",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	m := tui.NewModel(svc, tui.Options{
		Profile:    cfg.Profile,
		FlashDelay: cfg.FlashDelay,
		Logger:     logger,
		Debug:      debugMode,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
