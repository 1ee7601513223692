package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
)

var ErrUserQuit = errors.New("user quit the dashboard")

type TUI struct {
	services        *service.ClientServices
	refreshInterval time.Duration
	logger          *logger.Logger
}

func New(services *service.ClientServices, refreshInterval time.Duration, logger *logger.Logger) (*TUI, error) {
	return &TUI{
		services:        services,
		refreshInterval: refreshInterval,
		logger:          logger,
	}, nil
}

// Run blocks until the user quits. The persisted session is restored before
// the first frame, so a still-valid session opens straight on the dashboard.
func (t *TUI) Run(ctx context.Context) error {
	t.services.AuthService.Bootstrap(ctx)

	pages := map[string]page{
		"login":     {model: NewLoginModel(ctx, t.services.AuthService), kind: GuestOnly},
		"register":  {model: NewRegisterModel(ctx, t.services.AuthService), kind: GuestOnly},
		"dashboard": {model: NewDashboardModel(ctx, t.services), kind: RequireAuth},
		"users":     {model: NewUsersModel(ctx, t.services.API), kind: RequireAdmin},
	}

	root := NewRootModel(ctx, t.services, pages, "login", t.refreshInterval)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen()).Run()

	t.services.RefreshJob.Stop()

	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
