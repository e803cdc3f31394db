package service

import (
	"errors"
	"fmt"

	"github.com/ericogr/genesis-combat/internal/engine"
	"github.com/ericogr/genesis-combat/internal/storage"
)

var (
	ErrCombatNotFound   = errors.New("combat not found")
	ErrNotCombatOwner   = errors.New("combat belongs to another player")
	ErrCommandRejected  = errors.New("command rejected")
	ErrCombatFaulted    = errors.New("combat is faulted")
	ErrUnknownResume    = errors.New("unknown resume kind")
	ErrPlayerRequired   = errors.New("player uuid is required")
	ErrCorruptSnapshot  = errors.New("combat snapshot is unreadable")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrEmptyStarterDeck = errors.New("no starter deck available")
)

// mapEngineError translates engine failures into service sentinels while
// keeping the engine error in the chain for diagnostics.
func mapEngineError(err error) error {
	var ce *engine.CommandError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ce):
		return fmt.Errorf("%w: %s", ErrCommandRejected, ce.Reason)
	case errors.Is(err, engine.ErrCombatFaulted), errors.Is(err, engine.ErrInvariant):
		return fmt.Errorf("%w: %w", ErrCombatFaulted, err)
	}
	return err
}

func mapStorageError(err error, notFound error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound
	}
	return err
}
