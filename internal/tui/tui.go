package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the search screen until the user quits or ctx is done.
func Run(ctx context.Context, ctrl Controller, token string) error {
	p := tea.NewProgram(New(ctrl, token), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running search ui: %w", err)
	}
	return nil
}
