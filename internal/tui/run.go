package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harlow-hs/paydash/internal/common"
)

// Run starts the dashboard and blocks until the user quits or the session
// expires.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if cfg.Session == nil {
		return fmt.Errorf("session is required")
	}

	p := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.expired {
		return common.NewUserError("Session expired, run 'paydash login' to sign in again", common.ErrUnauthorized)
	}

	return nil
}
