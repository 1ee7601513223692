package service

import (
	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/crypto"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
)

type Services struct {
	AuthService  AuthService
	AdminService AdminService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := crypto.NewPasswordHasher(cfg.Auth.BcryptCost)

	return &Services{
		AuthService:  NewAuthService(storages, hasher, cfg.Auth, logger),
		AdminService: NewAdminService(storages.Users, logger),
	}
}
