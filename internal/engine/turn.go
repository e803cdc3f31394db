package engine

import (
	"github.com/ericogr/genesis-combat/internal/game"
)

// startTurn runs the turn-start bookkeeping shared by every actor:
// counters reset, block clears unless persisted, statuses tick.
func (e *Engine) startTurn(a *game.Actor) {
	a.Turn = game.TurnCounters{}
	if !e.status.PersistsBlock(a) {
		a.Block = 0
	}
	res := e.status.TickTurnStart(a)
	for _, hit := range res.Hits {
		if !a.Alive() {
			break
		}
		e.state.Emit(a.ID, statusTag(hit.Kind), hit.Damage)
		e.state.Logf("%s takes %d %s damage", displayName(a), hit.Damage, hit.Kind)
		e.loseHP(a, hit.Damage)
	}
	if e.checkDefeat(a) {
		return
	}
	for _, x := range res.Expired {
		e.state.Logf("%s on %s wears off", x.Kind, displayName(a))
		if x.Grant != "" {
			e.grant(a, x.Grant, x.Value)
		}
	}
}

// beginPlayerTurn opens the next player turn: statuses tick on the player
// and its constructs, CP refills and the hand is drawn.
func (e *Engine) beginPlayerTurn() error {
	s := e.state
	p := s.Player
	s.Turn++
	s.Phase = game.PhasePlayerTurn
	s.Logf("Turn %d", s.Turn)
	for _, k := range game.AllZones {
		for _, c := range *p.Zones.Pile(k) {
			c.Reuses = 0
		}
	}
	e.startTurn(p)
	if s.Phase.Terminal() {
		return nil
	}
	if err := e.startConstructTurns(game.SidePlayer); err != nil {
		return err
	}
	if s.Phase.Terminal() {
		return nil
	}
	p.CP = p.MaxCP
	e.draw(p, p.DrawPerTurn, false)
	return e.run()
}

// endPlayerTurn fires end-of-turn reactions and player constructs,
// flushes the hand, runs every hostile, then opens the next turn.
func (e *Engine) endPlayerTurn() error {
	s := e.state
	p := s.Player
	for _, inst := range append([]*game.CardInstance(nil), p.Zones.Hand...) {
		e.fireInstance(p, inst, game.TriggerTurnEnd, true)
	}
	if err := e.run(); err != nil {
		return err
	}
	if s.Phase.Terminal() {
		return nil
	}
	if err := e.triggerConstructs(game.SidePlayer); err != nil {
		return err
	}
	if s.Phase.Terminal() {
		return nil
	}
	e.zones.FlushHand(p)

	s.Phase = game.PhaseEnemyTurn
	if err := e.startConstructTurns(game.SideHostile); err != nil {
		return err
	}
	if s.Phase.Terminal() {
		return nil
	}
	for _, h := range append([]*game.Actor(nil), s.Hostiles...) {
		if !h.Alive() {
			continue
		}
		if err := e.hostileTurn(h); err != nil {
			return err
		}
		if s.Phase.Terminal() {
			return nil
		}
	}
	if err := e.triggerConstructs(game.SideHostile); err != nil {
		return err
	}
	if s.Phase.Terminal() {
		return nil
	}
	return e.beginPlayerTurn()
}
