package storage

import (
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
)

// OpenAndMigrate opens the sqlite database at dataSourceName, creating
// its directory when needed, and migrates the schema.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && dataSourceName != ":memory:" {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	// Keep schema updated via AutoMigrate; removing the file resets it.
	if err := db.AutoMigrate(&game.PlayerProfile{}, &game.CollectionCard{}, &game.CombatRecord{}); err != nil {
		return nil, err
	}
	logging.Debug("database ready", logging.Fields{constants.LogFieldSource: dataSourceName})
	return db, nil
}
