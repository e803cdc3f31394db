package engine

import (
	"fmt"
	"math"

	"github.com/ericogr/genesis-combat/internal/game"
)

// --- Magnitude effects --------------------------------------------------
func (e *Engine) gainBlock(a *game.Actor, n int) {
	if n <= 0 {
		return
	}
	a.Block += n
	e.state.Emit(a.ID, game.AnimBlock, n)
	e.state.Logf("%s gains %d block", displayName(a), n)
}

func (e *Engine) heal(a *game.Actor, n int) {
	if n <= 0 || !a.Alive() {
		return
	}
	before := a.HP
	a.HP = min(a.MaxHP, a.HP+n)
	if a.HP > before {
		e.state.Emit(a.ID, game.AnimHeal, a.HP-before)
		e.state.Logf("%s heals %d", displayName(a), a.HP-before)
	}
}

func (e *Engine) execGainBlock(n *game.GainBlock, rc *resolveContext) {
	amount := round(float64(defenseWithModifiers(rc.source))*n.Multiplier) + n.Fixed
	amount = round(float64(amount) * scale(rc.source.Modifiers.Block))
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetSelf) {
		e.gainBlock(t, amount)
	}
}

func (e *Engine) execHeal(n *game.Heal, rc *resolveContext) {
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetSelf) {
		amount := n.Fixed + round(float64(t.MaxHP)*n.Ratio)
		e.heal(t, round(float64(amount)*scale(rc.source.Modifiers.Heal)))
	}
}

func (e *Engine) grant(a *game.Actor, r game.Resource, n int) {
	switch r {
	case game.ResourceCP:
		a.CP = max(0, a.CP+n)
		if a.MaxCP > 0 && a.CP > a.MaxCP {
			a.CP = a.MaxCP
		}
	case game.ResourceCharge:
		a.Charge = max(0, a.Charge+n)
		if a.MaxCharge > 0 && a.Charge > a.MaxCharge {
			a.Charge = a.MaxCharge
		}
	case game.ResourceBlock:
		if n > 0 {
			e.gainBlock(a, n)
		} else {
			a.Block = max(0, a.Block+n)
		}
	}
}

func (e *Engine) execGainResource(n *game.GainResource, rc *resolveContext) {
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetSelf) {
		e.grant(t, n.Resource, n.Amount)
	}
}

// payload converts a consumed quantity into damage, block or healing.
// Damage scales with attack and block with defense; healing is flat.
func (e *Engine) payload(rc *resolveContext, kind game.Payload, qty int, per float64, t game.Target) {
	if qty <= 0 {
		return
	}
	switch kind {
	case game.PayloadDamage:
		amount := round(float64(qty) * per * float64(attackWithModifiers(rc.source)))
		for _, tgt := range e.resolveTargets(rc, t, game.TargetTarget) {
			if e.state.Phase.Terminal() {
				return
			}
			e.strike(rc, tgt, amount, 0)
		}
	case game.PayloadBlock:
		amount := round(float64(qty) * per * float64(defenseWithModifiers(rc.source)))
		for _, tgt := range e.resolveTargets(rc, t, game.TargetSelf) {
			e.gainBlock(tgt, amount)
		}
	case game.PayloadHeal:
		amount := round(float64(qty) * per)
		for _, tgt := range e.resolveTargets(rc, t, game.TargetSelf) {
			e.heal(tgt, amount)
		}
	}
}

func (e *Engine) execConsumeStatus(n *game.ConsumeStatus, rc *resolveContext) error {
	if _, ok := e.lib.Status(n.Status); !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvariant, n.Status)
	}
	from := e.resolveOne(rc, n.From, game.TargetTarget)
	if from == nil {
		return nil
	}
	taken := e.status.Consume(from, n.Status, n.Cap)
	if taken == 0 {
		return nil
	}
	e.state.Logf("%s consumes %d %s from %s", displayName(rc.source), taken, n.Status, displayName(from))
	e.payload(rc, n.Payload, taken, n.PerStack, n.Target)
	return nil
}

func (e *Engine) execConsumeCharge(n *game.ConsumeCharge, rc *resolveContext) error {
	taken := rc.source.Charge
	if n.Cap > 0 && n.Cap < taken {
		taken = n.Cap
	}
	if taken == 0 {
		return nil
	}
	rc.source.Charge -= taken
	e.state.Logf("%s spends %d charge", displayName(rc.source), taken)
	e.payload(rc, n.Payload, taken, n.PerCharge, n.Target)
	return nil
}

// --- Status effects -----------------------------------------------------
func (e *Engine) applyStatus(src, tgt *game.Actor, kind string, stacks, duration int) error {
	v, err := e.status.Apply(tgt, kind, stacks, duration, attackWithModifiers(src))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	e.state.Emit(tgt.ID, statusTag(kind), v)
	e.state.Logf("%s now has %d %s", displayName(tgt), v, kind)
	return nil
}

func (e *Engine) execApplyStatus(n *game.ApplyStatus, rc *resolveContext) error {
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetTarget) {
		if err := e.applyStatus(rc.source, t, n.Status, n.Stacks, n.Duration); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) execRemoveStatus(n *game.RemoveStatus, rc *resolveContext) {
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetSelf) {
		if removed := e.status.Remove(t, n.Status, n.Amount, n.Ratio); removed > 0 {
			e.state.Logf("%s loses %d %s", displayName(t), removed, n.Status)
		}
	}
}

func (e *Engine) execScaleStatus(n *game.ScaleStatus, rc *resolveContext) {
	for _, t := range e.resolveTargets(rc, n.Target, game.TargetTarget) {
		if t.Status(n.Status) == nil {
			continue
		}
		v := e.status.Scale(t, n.Status, n.Multiplier)
		e.state.Logf("%s now has %d %s", displayName(t), v, n.Status)
	}
}

func (e *Engine) execSpreadStatus(n *game.SpreadStatus, rc *resolveContext) error {
	from := e.resolveOne(rc, n.From, game.TargetTarget)
	if from == nil {
		return nil
	}
	amount := int(math.Floor(float64(from.StatusValue(n.Status)) * n.Ratio))
	if amount <= 0 {
		return nil
	}
	for _, t := range e.state.Enemies(rc.source) {
		if t.ID == from.ID {
			continue
		}
		if err := e.applyStatus(rc.source, t, n.Status, amount, 0); err != nil {
			return err
		}
	}
	return nil
}
