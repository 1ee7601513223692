package http

import (
	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
)

type Handler struct {
	services *service.Services

	// environment toggles the Secure attribute on the auth cookie.
	environment string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		environment: cfg.Environment,
		logger:      logger,
	}
}
