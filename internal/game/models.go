package game

import (
	"time"

	"gorm.io/gorm"
)

// PlayerProfile stores unique player identity and aggregate combat stats.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID    string `json:"player_uuid" gorm:"uniqueIndex"`
	PlayerName    string `json:"player_name"`
	CombatsPlayed int    `json:"combats_played"`
	Victories     int    `json:"victories"`
	Defeats       int    `json:"defeats"`
	// MaxHPBonus is permanent growth earned from decompose effects.
	MaxHPBonus int `json:"max_hp_bonus"`
	Gold       int `json:"gold"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// CollectionCard is one persistent collection entry. Counters is stored
// as a JSON column.
type CollectionCard struct {
	gorm.Model
	PlayerUUID   string         `json:"player_uuid" gorm:"index"`
	EntryID      string         `json:"entry_id" gorm:"uniqueIndex"`
	TemplateID   string         `json:"template_id"`
	CostOverride *int           `json:"cost_override,omitempty"`
	Counters     map[string]int `json:"counters,omitempty" gorm:"serializer:json"`
}

func (CollectionCard) TableName() string { return "collection_cards" }

// BeforeSave keeps the counters column non-null so JSON decoding on read
// always yields a map.
func (c *CollectionCard) BeforeSave(tx *gorm.DB) (err error) {
	if c.Counters == nil {
		c.Counters = map[string]int{}
	}
	return nil
}

func (c *CollectionCard) Entry() CollectionEntry {
	counters := make(map[string]int, len(c.Counters))
	for k, v := range c.Counters {
		counters[k] = v
	}
	return CollectionEntry{ID: c.EntryID, TemplateID: c.TemplateID, CostOverride: c.CostOverride, Counters: counters}
}

// CombatRecord persists a serialized CombatState.
type CombatRecord struct {
	ID         string `gorm:"primaryKey;size:26"`
	PlayerUUID string `gorm:"index"`
	Phase      Phase
	Snapshot   []byte `gorm:"type:blob"`
	// Settled is set once persistent deltas of a finished combat were applied.
	Settled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CombatRecord) TableName() string { return "combat_records" }
