package service

import (
	"context"

	"github.com/ericogr/genesis-combat/internal/dedupe"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/keys"
)

// GetCollection returns a player's persistent cards, deduplicating
// concurrent reads like GetCombat.
func (s *Service) GetCollection(ctx context.Context, playerUUID string) ([]game.CollectionEntry, error) {
	if playerUUID == "" {
		return nil, ErrPlayerRequired
	}
	ch := dedupe.CollectionGroup.DoChan(keys.CollectionKey(playerUUID), func() (interface{}, error) {
		return s.repo.GetCollection(playerUUID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		shared := r.Val.([]game.CollectionEntry)
		out := make([]game.CollectionEntry, len(shared))
		copy(out, shared)
		return out, nil
	}
}

func (s *Service) GetProfile(playerUUID string) (*game.PlayerProfile, error) {
	p, err := s.repo.GetProfile(playerUUID)
	if err != nil {
		return nil, mapStorageError(err, ErrProfileNotFound)
	}
	return p, nil
}

// Leaderboard clamps limit to [1, 100], defaulting to 10.
func (s *Service) Leaderboard(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = defaultTopPlayers
	}
	if limit > maxTopPlayers {
		limit = maxTopPlayers
	}
	return s.repo.GetTopPlayers(limit)
}
