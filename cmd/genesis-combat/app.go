package main

import (
	"github.com/ericogr/genesis-combat/internal/config"
	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/storage"
)

func loadSettingsOrExit() config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	return settings
}

func loadCatalogOrExit(path string) *game.Catalog {
	lib, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid card catalog", err, logging.Fields{constants.LogFieldSource: path, "hint": "set " + constants.EnvCatalog + " to a catalog .yaml or .json with cards, enemies and optional statuses and constructs"})
	}
	logging.Info("catalog loaded", logging.Fields{constants.LogFieldSource: path, constants.LogFieldCount: len(lib.CardList())})
	return lib
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldSource: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
