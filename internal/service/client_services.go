package service

import (
	"github.com/tradedesk/tradedesk/internal/adapter"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
)

type ClientServices struct {
	AuthService ClientAuthService
	RefreshJob  ClientRefreshJob

	// API is exposed for screens that talk to admin endpoints directly.
	API adapter.AuthAPI
}

func NewClientServices(sessionStore store.ClientSessionStore, api adapter.AuthAPI, logger *logger.Logger) *ClientServices {
	authSvc := NewClientAuthService(sessionStore, api, logger)

	return &ClientServices{
		AuthService: authSvc,
		RefreshJob:  NewClientRefreshJob(authSvc),
		API:         api,
	}
}
