package main

import (
	"fmt"

	"github.com/tradedesk/tradedesk/internal/adapter"
	"github.com/tradedesk/tradedesk/internal/client"
	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/service"
	"github.com/tradedesk/tradedesk/internal/store"
	"github.com/tradedesk/tradedesk/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("tradedesk-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api := adapter.NewHTTPAuthAPI(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	sessionStore := store.NewClientSessionStore(cfg.Storage.SessionFile)

	services := service.NewClientServices(sessionStore, api, log)

	ui, err := tui.New(services, cfg.Workers.RefreshInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
