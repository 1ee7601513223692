package main

import (
	"context"
	"fmt"

	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/crypto"
	myHTTP "github.com/tradedesk/tradedesk/internal/handler/http"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/server"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("tradedesk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	ctx := context.Background()
	hasher := crypto.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err = storages.EnsureDefaultAdmin(ctx, hasher, log); err != nil {
		log.Fatal().Err(err).Msg("error seeding default admin")
	}

	services := service.NewServices(storages, *cfg, log)
	handler := myHTTP.NewHandler(services, cfg.Auth, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	sweeper := workers.NewSessionSweeper(storages.Sessions, log)
	sweeper.Start(ctx, cfg.Workers.SweepInterval)
	defer sweeper.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
