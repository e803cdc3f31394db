package engine

import (
	"fmt"

	"github.com/ericogr/genesis-combat/internal/zone"
)

// verify checks the combat-wide invariants after a command.
func (e *Engine) verify() error {
	s := e.state
	actors := append(s.Actors(), s.Reserve...)
	if err := zone.Verify(actors...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	for _, a := range actors {
		if err := e.status.Verify(a); err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		if a.HP < 0 || a.Block < 0 || a.CP < 0 || a.Charge < 0 {
			return fmt.Errorf("%w: negative pool on %s", ErrInvariant, a.ID)
		}
	}
	if s.Phase.Awaiting() != (s.Pending != nil) {
		return fmt.Errorf("%w: phase %s with pending=%v", ErrInvariant, s.Phase, s.Pending != nil)
	}
	if !s.Phase.Terminal() && len(s.Player.Zones.Limbo) > 0 && s.Pending == nil {
		return fmt.Errorf("%w: %d cards stuck in limbo", ErrInvariant, len(s.Player.Zones.Limbo))
	}
	return nil
}
