package engine

import (
	"github.com/ericogr/genesis-combat/internal/game"
)

// --- Targets ------------------------------------------------------------
func (e *Engine) resolveTargets(rc *resolveContext, t, def game.Target) []*game.Actor {
	switch orDefault(t, def) {
	case game.TargetSelf:
		return []*game.Actor{rc.source}
	case game.TargetTarget:
		if rc.target.Alive() {
			return []*game.Actor{rc.target}
		}
		return nil
	case game.TargetAllEnemies:
		return e.state.Enemies(rc.source)
	case game.TargetRandomEnemy:
		foes := e.state.Enemies(rc.source)
		if len(foes) == 0 {
			return nil
		}
		return []*game.Actor{foes[e.state.RNG.IntN(len(foes))]}
	case game.TargetOwner:
		return []*game.Actor{e.state.ZoneOwner(rc.source)}
	}
	return nil
}

func (e *Engine) resolveOne(rc *resolveContext, t, def game.Target) *game.Actor {
	if ts := e.resolveTargets(rc, t, def); len(ts) > 0 {
		return ts[0]
	}
	return nil
}

// --- Damage -------------------------------------------------------------

// attackDamage computes one hit before mitigation.
func attackDamage(src, tgt *game.Actor, mult float64, fixed, empowerPct int) int {
	atk := attackWithModifiers(src)
	dmg := round(float64(atk)*mult) + fixed
	if mult > 0 && dmg < 1 {
		dmg = 1
	}
	if tgt.Status(game.StatusVulnerable) != nil {
		dmg += round(float64(atk) * 0.5)
	}
	if empowerPct > 0 {
		dmg = dmg * (100 + empowerPct) / 100
	}
	dmg = round(float64(dmg) * scale(src.Modifiers.Damage))
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

func (e *Engine) execDamage(n *game.Damage, rc *resolveContext) error {
	targets := e.resolveTargets(rc, n.Target, game.TargetTarget)
	if len(targets) == 0 {
		return nil
	}
	hits := max(1, n.Hits)
	empower := e.status.ConsumeOneShot(rc.source, game.StatusEmpowered)
	for _, tgt := range targets {
		for i := 0; i < hits; i++ {
			if !tgt.Alive() || e.state.Phase.Terminal() {
				break
			}
			e.strike(rc, tgt, attackDamage(rc.source, tgt, n.Multiplier, n.Fixed, empower), n.Pierce)
		}
	}
	return nil
}

// strike applies amount to tgt: block absorbs the unpierced part first.
// It fires the playing card's hit, blocked and finisher reactions.
func (e *Engine) strike(rc *resolveContext, tgt *game.Actor, amount int, pierce float64) {
	pierced := clamp(round(float64(amount)*pierce), 0, amount)
	rest := amount - pierced
	absorbed := min(tgt.Block, rest)
	tgt.Block -= absorbed
	loss := rest - absorbed + pierced

	e.state.Logf("%s hits %s for %d (%d blocked)", displayName(rc.source), displayName(tgt), amount, absorbed)
	if absorbed > 0 {
		e.state.Emit(tgt.ID, game.AnimBlock, absorbed)
		e.fireCard(rc, game.TriggerBlockedByEnemy)
	}
	if loss > 0 {
		e.state.Emit(tgt.ID, game.AnimHit, loss)
		e.loseHP(tgt, loss)
		e.fireCard(rc, game.TriggerHPDamageDealt)
	}
	if e.checkDefeat(tgt) {
		e.fireCard(rc, game.TriggerFinisher)
	}
}

// loseHP removes health without touching block. Damage-over-time and
// bleed use it directly.
func (e *Engine) loseHP(a *game.Actor, n int) {
	if n <= 0 || !a.Alive() {
		return
	}
	a.HP -= n
	if a.HP < 0 {
		a.HP = 0
	}
	e.checkSpecial(a)
}

// checkSpecial fires a hostile's one-shot special the first time its
// health falls to the threshold.
func (e *Engine) checkSpecial(a *game.Actor) {
	if a.Hostile == nil || a.Hostile.Special == nil || a.Hostile.Special.Fired || a.HP <= 0 {
		return
	}
	sp := a.Hostile.Special
	if float64(a.HP) > sp.Threshold*float64(a.MaxHP) {
		return
	}
	sp.Fired = true
	e.state.Logf("%s unleashes a desperate action", displayName(a))
	if f, ok := e.templateFrame(a, sp.Card, e.state.Player, true); ok {
		e.queue(f)
	}
}

// checkDefeat removes a if its health is gone and reports whether it did.
func (e *Engine) checkDefeat(a *game.Actor) bool {
	if a.HP > 0 || a.Removed {
		return false
	}
	switch a.Kind {
	case game.ActorPlayer:
		e.state.Logf("%s is defeated", displayName(a))
		e.state.Emit(a.ID, game.AnimDefeat, 0)
		e.finishCombat(false)
	case game.ActorHostile:
		a.Removed = true
		e.state.Logf("%s is defeated", displayName(a))
		e.state.Emit(a.ID, game.AnimDefeat, 0)
		for _, id := range a.Constructs {
			if c := e.state.Actor(id); c != nil {
				c.Removed = true
			}
		}
		a.Constructs = nil
		e.promoteReserve()
		if len(e.state.ActiveHostiles()) == 0 && len(e.state.Reserve) == 0 {
			e.finishCombat(true)
		}
	case game.ActorConstruct:
		e.destroyConstruct(a)
	}
	return true
}

// promoteReserve fills free hostile slots from the reserve roster.
func (e *Engine) promoteReserve() {
	limit := e.state.MaxConcurrent
	for len(e.state.Reserve) > 0 && (limit <= 0 || len(e.state.ActiveHostiles()) < limit) {
		next := e.state.Reserve[0]
		e.state.Reserve = e.state.Reserve[1:]
		e.state.Hostiles = append(e.state.Hostiles, next)
		e.state.Logf("%s joins the fight", displayName(next))
		e.deployInitial(next)
	}
}

// finishCombat moves to a terminal phase and assembles the outcome.
func (e *Engine) finishCombat(victory bool) {
	if e.state.Phase.Terminal() {
		return
	}
	out := &game.Outcome{Victory: victory}
	if victory {
		e.state.Phase = game.PhaseVictory
		for _, h := range e.state.Hostiles {
			if h.Hostile != nil {
				out.Reward = out.Reward.Add(h.Hostile.Reward)
			}
		}
		e.state.Logf("Victory")
	} else {
		e.state.Phase = game.PhaseDefeat
		e.state.Logf("Defeat")
	}
	e.state.Pending = nil
	p := e.state.Player
	p.Zones.Discard = append(p.Zones.Discard, p.Zones.Limbo...)
	p.Zones.Limbo = nil
	e.zones.PurgeTemporary(p)
	out.Deltas = append([]game.Delta(nil), e.state.Deltas...)
	e.state.Outcome = out
}
