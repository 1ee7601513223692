package client

import (
	"context"
	"errors"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/tui"
)

type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, logger *logger.Logger) (*App, error) {
	return &App{
		services: services,
		ui:       ui,
		logger:   logger,
	}, nil
}

// Run blocks until the user quits the dashboard. Session restoration, the
// refresh job lifecycle and route guarding all live inside the UI loop; Run
// only owns the process-level context.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("dashboard closed by user")
		return nil
	}

	return err
}
