package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/invest-keeper/internal/config"
	httphandler "github.com/MKhiriev/invest-keeper/internal/handler/http"
	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/mailer"
	"github.com/MKhiriev/invest-keeper/internal/server"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/store"
	"github.com/MKhiriev/invest-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// load .env if present (ok if missing in prod)
	_ = godotenv.Load()

	log := logger.NewLogger("invest-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}

	services := service.NewServices(storages, smtpMailer, *cfg, log)
	handler := httphandler.NewHandler(services, *cfg, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	backgroundWorkers.Run()

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
