package engine

import (
	"strconv"

	"github.com/ericogr/genesis-combat/internal/game"
)

// --- Structural effects -------------------------------------------------
func (e *Engine) execBonus(n *game.Bonus, rc *resolveContext) {
	if n.When.Holds(e.factsFor(rc)) {
		e.queue(rc.child(n.Effects))
	}
}

func (e *Engine) execConditional(n *game.Conditional, rc *resolveContext) {
	branch := n.Else
	if n.If.Holds(e.factsFor(rc)) {
		branch = n.Then
	}
	if len(branch) > 0 {
		e.queue(rc.child(branch))
	}
}

// execChoice resolves every branch when the overflow precondition holds,
// takes the default branch in auto frames, and otherwise suspends.
func (e *Engine) execChoice(n *game.Choice, rc *resolveContext) bool {
	if len(n.Options) == 0 {
		return false
	}
	if n.Overflow != nil && n.Overflow.Holds(e.factsFor(rc)) {
		for _, o := range n.Options {
			e.queue(rc.child(o.Effects))
		}
		return false
	}
	if rc.frame.Auto || len(n.Options) == 1 {
		idx := clamp(n.Default, 0, len(n.Options)-1)
		e.queue(rc.child(n.Options[idx].Effects))
		return false
	}
	opts := make([]game.Option, 0, len(n.Options))
	for i, o := range n.Options {
		opts = append(opts, game.Option{ID: strconv.Itoa(i), Label: o.Label})
	}
	e.suspend(game.PhaseAwaitingEffectChoice, n, rc, game.Pending{Prompt: n.Prompt, Options: opts, Count: 1})
	return true
}

// execReaction (re)arms a reaction on the card being resolved. Arming
// replaces any earlier reaction for the same trigger.
func (e *Engine) execReaction(n *game.Reaction, rc *resolveContext) {
	if rc.frame.CardID == "" {
		return
	}
	inst, _ := e.zones.Find(e.state.ZoneOwner(rc.source), rc.frame.CardID)
	if inst == nil {
		return
	}
	inst.TakeArmed(n.On)
	inst.Armed = append(inst.Armed, game.ArmedReaction{On: n.On, Effects: n.Effects})
}

func (e *Engine) execResonance(n *game.Resonance, rc *resolveContext) {
	if rc.source.LastPlayed.Matches(n.Category, n.Tag) {
		e.state.Logf("%s resonates", displayName(rc.source))
		e.queue(rc.child(n.Effects))
	}
}
