package storage

import (
	"errors"

	"github.com/ericogr/genesis-combat/internal/game"
)

var ErrNotFound = errors.New("record not found")

// Settlement is what a finished combat changes outside itself.
type Settlement struct {
	PlayerUUID string
	PlayerName string
	Outcome    *game.Outcome
}

type Repository interface {
	CreateCombat(rec *game.CombatRecord) error
	GetCombat(id string) (*game.CombatRecord, error)
	SaveCombat(rec *game.CombatRecord) error
	// SettleCombat saves rec and applies the outcome's persistent deltas
	// and profile stats in one transaction. It is a no-op for a record
	// that is already settled.
	SettleCombat(rec *game.CombatRecord, s Settlement) error

	GetCollection(playerUUID string) ([]game.CollectionEntry, error)
	// SeedCollection stores entries for a player that has no collection yet.
	SeedCollection(playerUUID string, entries []game.CollectionEntry) error

	UpsertProfile(playerUUID, name string) (*game.PlayerProfile, error)
	GetProfile(playerUUID string) (*game.PlayerProfile, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}
