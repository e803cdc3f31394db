package engine

import (
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/status"
)

// --- Enemy action selector ----------------------------------------------

// selectAction returns the first card in h's hand it is able to play.
func (e *Engine) selectAction(h *game.Actor) *game.CardInstance {
	target := e.state.Player
	for _, inst := range h.Zones.Hand {
		tmpl, ok := e.lib.Card(inst.TemplateID)
		if !ok || tmpl.Unplayable {
			continue
		}
		if tmpl.PlayCondition != nil {
			facts := viewFacts{view: e.capture(), self: h.ID, target: target.ID, turn: e.state.Turn}
			if !tmpl.PlayCondition.Holds(facts) {
				continue
			}
		}
		return inst
	}
	return nil
}

// bleedOnPlay hurts an attacker that carries bleed.
func (e *Engine) bleedOnPlay(a *game.Actor, tmpl *game.CardTemplate) {
	if tmpl.Category != game.CategoryAttack {
		return
	}
	dmg := status.BleedDamage(a.MaxHP, a.StatusValue(game.StatusBleed))
	if dmg <= 0 {
		return
	}
	e.state.Emit(a.ID, game.AnimBleed, dmg)
	e.state.Logf("%s bleeds for %d", displayName(a), dmg)
	e.loseHP(a, dmg)
	e.checkDefeat(a)
}

// playInstance moves inst into limbo and resolves it.
func (e *Engine) playInstance(src *game.Actor, inst *game.CardInstance, targetID string, auto bool) error {
	tmpl, ok := e.lib.Card(inst.TemplateID)
	if !ok {
		return reject("unknown card %q", inst.TemplateID)
	}
	owner := e.state.ZoneOwner(src)
	e.zones.Move(owner, inst.ID, game.ZoneLimbo, "")
	e.state.Logf("%s plays %s", displayName(src), tmpl.Name)
	e.bleedOnPlay(src, tmpl)
	if !src.Alive() {
		e.leaveLimbo(owner, inst.ID)
		return e.run()
	}
	f, err := e.playFrame(src, inst, targetID, auto)
	if err != nil {
		return err
	}
	e.push(f)
	return e.run()
}

// playTemplate resolves a template for h without a backing zone card.
func (e *Engine) playTemplate(h *game.Actor, templateID string, target *game.Actor) error {
	tmpl, ok := e.lib.Card(templateID)
	if !ok {
		return nil
	}
	e.state.Logf("%s plays %s", displayName(h), tmpl.Name)
	e.bleedOnPlay(h, tmpl)
	if !h.Alive() {
		return e.run()
	}
	if f, ok := e.templateFrame(h, templateID, target, true); ok {
		e.push(f)
	}
	return e.run()
}

// hostileTurn runs one hostile's whole turn. Hostiles never suspend:
// every choice takes its default branch.
func (e *Engine) hostileTurn(h *game.Actor) error {
	e.startTurn(h)
	if err := e.run(); err != nil {
		return err
	}
	if !h.Alive() || e.state.Phase.Terminal() {
		return nil
	}
	hs := h.Hostile
	actions := max(1, hs.ActionsPerTurn)
	hs.Tide++
	if hs.TideThreshold > 0 && hs.TideCard != "" && hs.Tide >= hs.TideThreshold {
		hs.Tide = 0
		e.state.Logf("The tide turns for %s", displayName(h))
		if err := e.playTemplate(h, hs.TideCard, e.state.Player); err != nil {
			return err
		}
		actions--
	}
	if actions > 0 && h.Alive() && !e.state.Phase.Terminal() {
		e.draw(h, actions, true)
		if err := e.run(); err != nil {
			return err
		}
	}
	for i := 0; i < actions; i++ {
		if !h.Alive() || e.state.Phase.Terminal() {
			return nil
		}
		inst := e.selectAction(h)
		if inst == nil {
			break
		}
		if err := e.playInstance(h, inst, e.state.Player.ID, true); err != nil {
			return err
		}
	}
	if !e.state.Phase.Terminal() {
		e.zones.FlushHand(h)
	}
	return nil
}
