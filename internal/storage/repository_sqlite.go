package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericogr/genesis-combat/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *sqliteRepository) CreateCombat(rec *game.CombatRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetCombat(id string) (*game.CombatRecord, error) {
	var rec game.CombatRecord
	if err := r.db.Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *sqliteRepository) SaveCombat(rec *game.CombatRecord) error {
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) SettleCombat(rec *game.CombatRecord, s Settlement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stored game.CombatRecord
		if err := tx.Select("settled").Where("id = ?", rec.ID).First(&stored).Error; err != nil {
			return notFound(err)
		}
		if stored.Settled {
			return nil
		}
		rec.Settled = true
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		if s.Outcome == nil {
			return nil
		}
		profile, err := upsertProfile(tx, s.PlayerUUID, s.PlayerName)
		if err != nil {
			return err
		}
		profile.CombatsPlayed++
		if s.Outcome.Victory {
			profile.Victories++
			profile.Gold += s.Outcome.Reward.Gold
		} else {
			profile.Defeats++
		}
		for _, d := range s.Outcome.Deltas {
			if d.Kind == game.DeltaMaxHPGain {
				profile.MaxHPBonus += d.Amount
				continue
			}
			if err := applyDelta(tx, s.PlayerUUID, d); err != nil {
				return fmt.Errorf("apply %s delta: %w", d.Kind, err)
			}
		}
		return tx.Save(profile).Error
	})
}

// applyDelta mirrors one in-combat collection change into the store.
func applyDelta(tx *gorm.DB, playerUUID string, d game.Delta) error {
	switch d.Kind {
	case game.DeltaGrant:
		card := game.CollectionCard{PlayerUUID: playerUUID, EntryID: d.CollectionID, TemplateID: d.TemplateID, CostOverride: d.CostOverride}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&card).Error
	case game.DeltaRemove:
		return tx.Unscoped().Where("player_uuid = ? AND entry_id = ?", playerUUID, d.CollectionID).Delete(&game.CollectionCard{}).Error
	case game.DeltaEvolve, game.DeltaCounter:
		var card game.CollectionCard
		if err := tx.Where("player_uuid = ? AND entry_id = ?", playerUUID, d.CollectionID).First(&card).Error; err != nil {
			return notFound(err)
		}
		if card.Counters == nil {
			card.Counters = map[string]int{}
		}
		if d.Kind == game.DeltaEvolve {
			card.TemplateID = d.Successor
			delete(card.Counters, d.Counter)
		} else {
			card.Counters[d.Counter] = d.Amount
		}
		return tx.Save(&card).Error
	}
	return nil
}

func (r *sqliteRepository) GetCollection(playerUUID string) ([]game.CollectionEntry, error) {
	var cards []game.CollectionCard
	if err := r.db.Where("player_uuid = ?", playerUUID).Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	out := make([]game.CollectionEntry, 0, len(cards))
	for i := range cards {
		out = append(out, cards[i].Entry())
	}
	return out, nil
}

func (r *sqliteRepository) SeedCollection(playerUUID string, entries []game.CollectionEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&game.CollectionCard{}).Where("player_uuid = ?", playerUUID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(entries) == 0 {
			return nil
		}
		cards := make([]game.CollectionCard, 0, len(entries))
		for _, e := range entries {
			cards = append(cards, game.CollectionCard{PlayerUUID: playerUUID, EntryID: e.ID, TemplateID: e.TemplateID, CostOverride: e.CostOverride, Counters: e.Counters})
		}
		return tx.Create(&cards).Error
	})
}

func upsertProfile(tx *gorm.DB, playerUUID, name string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := tx.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = game.PlayerProfile{PlayerUUID: playerUUID}
	}
	if name != "" {
		p.PlayerName = name
	}
	if err := tx.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpsertProfile(playerUUID, name string) (*game.PlayerProfile, error) {
	return upsertProfile(r.db, playerUUID, name)
}

func (r *sqliteRepository) GetProfile(playerUUID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetTopPlayers returns top N players ordered by victories desc, then combats played desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []game.PlayerProfile
	if err := r.db.Model(&game.PlayerProfile{}).
		Order("victories DESC").
		Order("combats_played DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
