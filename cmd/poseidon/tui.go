package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/poseidon/internal/ui"
)

var (
	tuiTide    string
	tuiSpecies []string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiTide, "tide", "t", "", "Tide direction: 上げ/rising or 下げ/falling (default: estimated)")
	tuiCmd.Flags().StringSliceVarP(&tuiSpecies, "species", "s", nil, "Species to score")
}

func runTUI(ctx context.Context) error {
	tide, err := parseTide(tuiTide)
	if err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.NewModel(a.svc,
		ui.WithClock(a.now),
		ui.WithTide(tide),
		ui.WithSpecies(tuiSpecies...),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
