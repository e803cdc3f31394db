package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/api"
	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/service"
	"github.com/ericogr/genesis-combat/internal/stream"
	"github.com/ericogr/genesis-combat/internal/version"
)

func main() {
	settings := loadSettingsOrExit()
	logging.Init(settings.LogLevel)
	defer logging.Sync()
	logging.Info("starting genesis-combat", logging.Fields{"version": version.Get().String()})

	lib := loadCatalogOrExit(settings.CatalogPath)
	repo := createRepositoryOrExit(settings.DBPath)
	svc := service.New(repo, lib, stream.NewHub(0), service.Options{
		DefaultSeed:   settings.DefaultSeed,
		MaxConcurrent: settings.MaxConcurrent,
	})

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(svc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: settings.Addr})
	if err := serve(ctx, settings.Addr, router); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
