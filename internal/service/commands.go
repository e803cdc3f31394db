package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/engine"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/storage"
	"github.com/ericogr/genesis-combat/internal/stream"
)

// Resume kinds accepted from clients, keyed to the phase they answer.
var resumeKinds = map[string]game.Phase{
	"discard":        game.PhaseAwaitingDiscard,
	"return_to_deck": game.PhaseAwaitingReturnToDeck,
	"card_choice":    game.PhaseAwaitingCardChoice,
	"effect_choice":  game.PhaseAwaitingEffectChoice,
}

type PlayRequest struct {
	InstanceID string `json:"instance_id" binding:"required"`
	TargetID   string `json:"target_id"`
}

type ResumeRequest struct {
	Kind    string   `json:"kind" binding:"required"`
	CardIDs []string `json:"card_ids"`
	Option  *int     `json:"option"`
}

func (s *Service) PlayCard(playerUUID, combatID string, req PlayRequest) (*game.CombatState, error) {
	return s.command(playerUUID, combatID, "play", func(state *game.CombatState) error {
		return s.ctrl.PlayCard(state, req.InstanceID, req.TargetID)
	})
}

func (s *Service) EndTurn(playerUUID, combatID string) (*game.CombatState, error) {
	return s.command(playerUUID, combatID, "end_turn", func(state *game.CombatState) error {
		return s.ctrl.EndTurn(state)
	})
}

func (s *Service) Resume(playerUUID, combatID string, req ResumeRequest) (*game.CombatState, error) {
	kind, ok := resumeKinds[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResume, req.Kind)
	}
	return s.command(playerUUID, combatID, "resume", func(state *game.CombatState) error {
		return s.ctrl.Resume(state, kind, engine.ResumeInput{CardIDs: req.CardIDs, Option: req.Option})
	})
}

// command runs one controller call against the stored combat. Rejected
// commands persist nothing; a faulted combat is saved so it stays
// faulted; a finished combat is settled exactly once.
func (s *Service) command(playerUUID, combatID, name string, run func(*game.CombatState) error) (*game.CombatState, error) {
	if playerUUID == "" {
		return nil, ErrPlayerRequired
	}
	unlock := s.locks.Lock(combatID)
	defer unlock()

	rec, err := s.repo.GetCombat(combatID)
	if err != nil {
		return nil, mapStorageError(err, ErrCombatNotFound)
	}
	if rec.PlayerUUID != playerUUID {
		return nil, ErrNotCombatOwner
	}
	state, err := decodeState(rec.Snapshot)
	if err != nil {
		return nil, err
	}
	fields := logging.Fields{constants.LogFieldCombatID: combatID, constants.LogFieldCommand: name}
	prevSeq := state.Seq

	runErr := run(state)
	if runErr != nil && !errors.Is(runErr, engine.ErrInvariant) {
		fields[constants.LogFieldPhase] = state.Phase
		logging.Debug("command rejected", fields)
		return nil, mapEngineError(runErr)
	}
	if err := s.persist(rec, state); err != nil {
		logging.Error("failed to persist combat", err, fields)
		return nil, err
	}
	if runErr != nil {
		return nil, mapEngineError(runErr)
	}
	s.publish(state, prevSeq)
	fields[constants.LogFieldPhase] = state.Phase
	logging.Info("command applied", fields)
	return state, nil
}

func (s *Service) persist(rec *game.CombatRecord, state *game.CombatState) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return err
	}
	rec.Phase = state.Phase
	rec.Snapshot = snapshot
	if !state.Phase.Terminal() || rec.Settled {
		if err := s.repo.SaveCombat(rec); err != nil {
			return fmt.Errorf("save combat: %w", err)
		}
		return nil
	}
	settlement := storage.Settlement{PlayerUUID: rec.PlayerUUID, PlayerName: state.Player.Name, Outcome: state.Outcome}
	if err := s.repo.SettleCombat(rec, settlement); err != nil {
		return fmt.Errorf("settle combat: %w", err)
	}
	logging.Info("combat settled", logging.Fields{constants.LogFieldCombatID: rec.ID, constants.LogFieldOutcome: state.Phase, constants.LogFieldCount: len(state.Deltas)})
	return nil
}

// publish sends everything the command appended after prevSeq.
func (s *Service) publish(state *game.CombatState, prevSeq int) {
	ev := stream.Event{CombatID: state.ID, Seq: state.Seq, Phase: state.Phase, Pending: state.Pending, Outcome: state.Outcome}
	for _, l := range state.Log {
		if l.Seq > prevSeq {
			ev.Log = append(ev.Log, l)
		}
	}
	for _, a := range state.Events {
		if a.Seq > prevSeq {
			ev.Anims = append(ev.Anims, a)
		}
	}
	s.hub.Publish(ev)
}
