package engine

import (
	"fmt"

	"github.com/ericogr/genesis-combat/internal/game"
)

// --- Construct runtime --------------------------------------------------

// deploy summons a construct for owner. Stats are taken from the owner
// once and never rescaled.
func (e *Engine) deploy(owner *game.Actor, tmpl *game.ConstructTemplate, bound *game.Actor) *game.Actor {
	c := &game.Actor{
		ID:      e.state.NewActorID("k"),
		Name:    tmpl.Name,
		Kind:    game.ActorConstruct,
		Side:    owner.Side,
		MaxHP:   max(1, round(float64(owner.MaxHP)*tmpl.HPScale)),
		Attack:  round(float64(owner.Attack) * tmpl.AttackScale),
		Defense: round(float64(owner.Defense) * tmpl.DefenseScale),
		Construct: &game.ConstructState{
			TemplateID: tmpl.ID,
			OwnerID:    owner.ID,
			Durability: tmpl.Durability,
		},
	}
	c.HP = c.MaxHP
	if bound != nil {
		c.Construct.BoundTarget = bound.ID
	}
	e.state.Constructs = append(e.state.Constructs, c)
	owner.Constructs = append(owner.Constructs, c.ID)
	e.state.Emit(c.ID, game.AnimDeploy, 0)
	e.state.Logf("%s deploys %s", displayName(owner), displayName(c))
	return c
}

func (e *Engine) execDeploy(n *game.Deploy, rc *resolveContext) error {
	tmpl, ok := e.lib.Construct(n.Construct)
	if !ok {
		return fmt.Errorf("%w: construct %q", ErrInvariant, n.Construct)
	}
	var bound *game.Actor
	if n.Bind && rc.target.Alive() {
		bound = rc.target
	}
	e.deploy(e.state.ZoneOwner(rc.source), tmpl, bound)
	return nil
}

// deployInitial deploys the constructs a hostile template starts with.
func (e *Engine) deployInitial(h *game.Actor) {
	if h.Hostile == nil {
		return
	}
	et, ok := e.lib.Enemy(h.Hostile.TemplateID)
	if !ok {
		return
	}
	for _, id := range et.Constructs {
		if tmpl, ok := e.lib.Construct(id); ok {
			e.deploy(h, tmpl, nil)
		}
	}
}

// constructTargets resolves who a construct's triggered card is aimed at.
func (e *Engine) constructTargets(c *game.Actor, rule game.ConstructTarget) []*game.Actor {
	foes := e.state.Enemies(c)
	switch rule {
	case game.ConstructTargetOwner:
		return []*game.Actor{e.state.ZoneOwner(c)}
	case game.ConstructTargetAllEnemies:
		return foes
	case game.ConstructTargetBound:
		if b := e.state.Actor(c.Construct.BoundTarget); b.Alive() {
			return []*game.Actor{b}
		}
	}
	if len(foes) == 0 {
		return nil
	}
	return []*game.Actor{foes[e.state.RNG.IntN(len(foes))]}
}

// startConstructTurns runs the turn-start pass of every construct on
// side, in registration order.
func (e *Engine) startConstructTurns(side game.Side) error {
	for _, c := range append([]*game.Actor(nil), e.state.Constructs...) {
		if c.Side != side || !c.Alive() {
			continue
		}
		e.startTurn(c)
		if err := e.run(); err != nil {
			return err
		}
		if e.state.Phase.Terminal() {
			return nil
		}
	}
	return nil
}

// triggerConstructs fires the turn-end card of every construct owned by
// the given side, in registration order, and wears down durability.
func (e *Engine) triggerConstructs(side game.Side) error {
	for _, c := range append([]*game.Actor(nil), e.state.Constructs...) {
		if c.Side != side || !c.Alive() || c.Construct == nil {
			continue
		}
		tmpl, ok := e.lib.Construct(c.Construct.TemplateID)
		if !ok {
			continue
		}
		if tmpl.OnTurnEnd != "" {
			for _, t := range e.constructTargets(c, tmpl.TurnEndTarget) {
				if f, ok := e.templateFrame(c, tmpl.OnTurnEnd, t, true); ok {
					e.push(f)
					if err := e.run(); err != nil {
						return err
					}
				}
			}
		}
		if e.state.Phase.Terminal() {
			return nil
		}
		c.Construct.Durability--
		if c.Construct.Durability <= 0 && c.Alive() {
			e.destroyConstruct(c)
			if err := e.run(); err != nil {
				return err
			}
		}
	}
	return nil
}

// destroyConstruct removes c and fires its destruction card exactly once.
func (e *Engine) destroyConstruct(c *game.Actor) {
	if c.Construct == nil || c.Construct.DestroyFired {
		return
	}
	c.Construct.DestroyFired = true
	c.Removed = true
	if owner := e.state.Actor(c.Construct.OwnerID); owner != nil {
		for i, id := range owner.Constructs {
			if id == c.ID {
				owner.Constructs = append(owner.Constructs[:i], owner.Constructs[i+1:]...)
				break
			}
		}
	}
	e.state.Emit(c.ID, game.AnimDestroy, 0)
	e.state.Logf("%s is destroyed", displayName(c))

	tmpl, ok := e.lib.Construct(c.Construct.TemplateID)
	if !ok || tmpl.OnDestroy == "" {
		return
	}
	rule := tmpl.DestroyTarget
	if rule == "" {
		rule = game.ConstructTargetBound
	}
	for _, t := range e.constructTargets(c, rule) {
		if f, ok := e.templateFrame(c, tmpl.OnDestroy, t, true); ok {
			f.Posthumous = true
			e.queue(f)
		}
	}
}
