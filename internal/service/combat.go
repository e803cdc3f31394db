package service

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/dedupe"
	"github.com/ericogr/genesis-combat/internal/engine"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/keys"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/storage"
	"github.com/ericogr/genesis-combat/internal/stream"
)

const (
	defaultMaxHP      = 60
	defaultAttack     = 10
	defaultDefense    = 10
	starterCopies     = 5
	defaultTopPlayers = 10
	maxTopPlayers     = 100
)

// Options tune combats created by the service.
type Options struct {
	DefaultSeed   uint64
	MaxConcurrent int
}

// Service orchestrates combat commands: load the snapshot, run the
// controller, persist, then publish what changed.
type Service struct {
	repo  storage.Repository
	ctrl  *engine.Controller
	hub   *stream.Hub
	opts  Options
	locks keyedMutex
}

func New(repo storage.Repository, lib *game.Catalog, hub *stream.Hub, opts Options) *Service {
	if hub == nil {
		hub = stream.NewHub(0)
	}
	return &Service{repo: repo, ctrl: engine.NewController(lib), hub: hub, opts: opts}
}

func (s *Service) Catalog() *game.Catalog { return s.ctrl.Catalog() }

func (s *Service) Hub() *stream.Hub { return s.hub }

// PlayerStats overrides the default player statistics of a new combat.
type PlayerStats struct {
	MaxHP       int            `json:"max_hp"`
	HP          int            `json:"hp,omitempty"`
	Attack      int            `json:"attack"`
	Defense     int            `json:"defense"`
	MaxCP       int            `json:"max_cp,omitempty"`
	MaxCharge   int            `json:"max_charge,omitempty"`
	DrawPerTurn int            `json:"draw_per_turn,omitempty"`
	Modifiers   game.Modifiers `json:"modifiers"`
}

type StartRequest struct {
	PlayerUUID string       `json:"player_uuid"`
	PlayerName string       `json:"player_name"`
	Enemies    []string     `json:"enemies" binding:"required,min=1"`
	Seed       uint64       `json:"seed,omitempty"`
	Stats      *PlayerStats `json:"stats,omitempty"`
	// Deck seeds the collection of a player that has none yet. Empty
	// means every starter card of the catalog.
	Deck []string `json:"deck,omitempty"`
}

// StartCombat creates a combat for the player, seeding a starter
// collection on first play, and persists its first snapshot.
func (s *Service) StartCombat(req StartRequest) (*game.CombatState, error) {
	if req.PlayerUUID == "" {
		req.PlayerUUID = uuid.NewString()
	}
	profile, err := s.repo.UpsertProfile(req.PlayerUUID, req.PlayerName)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	collection, err := s.ensureCollection(req.PlayerUUID, req.Deck)
	if err != nil {
		return nil, err
	}

	id := ulid.Make()
	seed := req.Seed
	if seed == 0 {
		seed = s.opts.DefaultSeed
	}
	if seed == 0 {
		// random half of the ulid
		seed = binary.BigEndian.Uint64(id[8:])
	}
	stats := PlayerStats{MaxHP: defaultMaxHP, Attack: defaultAttack, Defense: defaultDefense}
	if req.Stats != nil {
		stats = *req.Stats
	}
	enemies := make([]string, len(req.Enemies))
	for i, e := range req.Enemies {
		enemies[i] = keys.CatalogID(e)
	}
	state, err := s.ctrl.Start(engine.Setup{
		ID:            id.String(),
		Seed:          seed,
		Enemies:       enemies,
		MaxConcurrent: s.opts.MaxConcurrent,
		Player: engine.PlayerSetup{
			Name:        profile.PlayerName,
			MaxHP:       stats.MaxHP + profile.MaxHPBonus,
			HP:          stats.HP,
			Attack:      stats.Attack,
			Defense:     stats.Defense,
			MaxCP:       stats.MaxCP,
			MaxCharge:   stats.MaxCharge,
			DrawPerTurn: stats.DrawPerTurn,
			Collection:  collection,
			Modifiers:   stats.Modifiers,
		},
	})
	if err != nil {
		return nil, mapEngineError(err)
	}
	snapshot, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	rec := &game.CombatRecord{ID: state.ID, PlayerUUID: req.PlayerUUID, Phase: state.Phase, Snapshot: snapshot}
	if err := s.repo.CreateCombat(rec); err != nil {
		return nil, fmt.Errorf("create combat: %w", err)
	}
	logging.Info("combat started", logging.Fields{constants.LogFieldCombatID: state.ID, constants.LogFieldPlayerUUID: req.PlayerUUID, constants.LogFieldCount: len(enemies)})
	return state, nil
}

func (s *Service) ensureCollection(playerUUID string, deck []string) ([]game.CollectionEntry, error) {
	entries, err := s.repo.GetCollection(playerUUID)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if len(entries) > 0 {
		return entries, nil
	}
	if len(deck) == 0 {
		deck = s.starterDeck()
	}
	if len(deck) == 0 {
		return nil, ErrEmptyStarterDeck
	}
	entries = make([]game.CollectionEntry, 0, len(deck))
	for _, templateID := range deck {
		entries = append(entries, game.CollectionEntry{ID: ulid.Make().String(), TemplateID: keys.CatalogID(templateID)})
	}
	if err := s.repo.SeedCollection(playerUUID, entries); err != nil {
		return nil, fmt.Errorf("seed collection: %w", err)
	}
	logging.Info("starter collection seeded", logging.Fields{constants.LogFieldPlayerUUID: playerUUID, constants.LogFieldCount: len(entries)})
	return entries, nil
}

func (s *Service) starterDeck() []string {
	var deck []string
	for _, c := range s.Catalog().CardList() {
		if c.Rarity != game.RarityStarter || c.Unobtainable {
			continue
		}
		for i := 0; i < starterCopies; i++ {
			deck = append(deck, c.ID)
		}
	}
	return deck
}

// GetCombat returns the stored snapshot of a combat. Concurrent reads of
// the same combat share one database hit.
func (s *Service) GetCombat(ctx context.Context, combatID string) (*game.CombatState, error) {
	ch := dedupe.CombatGroup.DoChan(keys.CombatKey(combatID), func() (interface{}, error) {
		rec, err := s.repo.GetCombat(combatID)
		if err != nil {
			return nil, mapStorageError(err, ErrCombatNotFound)
		}
		return rec.Snapshot, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return decodeState(r.Val.([]byte))
	}
}

func decodeState(snapshot []byte) (*game.CombatState, error) {
	var state game.CombatState
	if err := json.Unmarshal(snapshot, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &state, nil
}
