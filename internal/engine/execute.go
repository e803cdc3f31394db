package engine

import (
	"fmt"

	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/status"
	"github.com/ericogr/genesis-combat/internal/zone"
)

// Engine resolves effect trees against one combat. It is created per
// command and holds no state of its own beyond the frame stack.
type Engine struct {
	lib    *game.Catalog
	state  *game.CombatState
	zones  *zone.Manager
	status *status.Engine

	stack    []game.Frame
	deferred []game.Frame
}

func newEngine(lib *game.Catalog, state *game.CombatState) *Engine {
	return &Engine{
		lib:    lib,
		state:  state,
		zones:  zone.New(state, lib),
		status: status.New(lib),
	}
}

// push schedules f to run before anything already on the stack.
func (e *Engine) push(f game.Frame) {
	e.stack = append(e.stack, f)
}

// queue schedules f to run after the current node finishes. Queued
// frames run in the order they were queued.
func (e *Engine) queue(f game.Frame) {
	e.deferred = append(e.deferred, f)
}

func (e *Engine) flushQueued() {
	for i := len(e.deferred) - 1; i >= 0; i-- {
		e.push(e.deferred[i])
	}
	e.deferred = e.deferred[:0]
}

// run drains the frame stack. It stops early when the combat ends or a
// node suspends; in the latter case the remaining stack is stored in the
// pending request.
func (e *Engine) run() error {
	e.flushQueued()
	for len(e.stack) > 0 {
		if e.state.Phase.Terminal() {
			e.stack = nil
			e.deferred = nil
			return nil
		}
		top := &e.stack[len(e.stack)-1]
		if !top.Posthumous && e.departed(top.SourceID) {
			dropped := *top
			e.stack = e.stack[:len(e.stack)-1]
			if dropped.Finalize {
				e.abandonCard(dropped)
			}
			continue
		}
		if len(top.Effects) == 0 {
			done := *top
			e.stack = e.stack[:len(e.stack)-1]
			if done.Finalize {
				if err := e.finishCard(done); err != nil {
					return err
				}
			}
			e.flushQueued()
			continue
		}
		node := top.Effects[0]
		top.Effects = top.Effects[1:]
		rc := e.contextFor(*top)
		suspended, err := e.exec(node, rc)
		if err != nil {
			return fmt.Errorf("%s: %w", node.Kind(), err)
		}
		if suspended {
			e.state.Pending.Frames = append([]game.Frame(nil), e.stack...)
			e.stack = nil
			e.flushIntoPending()
			return nil
		}
		e.flushQueued()
	}
	return nil
}

// departed reports whether the actor behind a frame has left the combat.
// Its remaining effects are dropped.
func (e *Engine) departed(id string) bool {
	a := e.state.Actor(id)
	return a != nil && a.Removed
}

// flushIntoPending keeps frames queued by a suspending node so they run
// right after resume.
func (e *Engine) flushIntoPending() {
	for i := len(e.deferred) - 1; i >= 0; i-- {
		e.state.Pending.Frames = append(e.state.Pending.Frames, e.deferred[i])
	}
	e.deferred = nil
}

// exec dispatches a single effect node. It reports true when the node
// suspended resolution.
func (e *Engine) exec(node game.Effect, rc *resolveContext) (bool, error) {
	if rc.source == nil {
		return false, fmt.Errorf("%w: frame source %q missing", ErrInvariant, rc.frame.SourceID)
	}
	switch n := node.(type) {
	case *game.Damage:
		return false, e.execDamage(n, rc)
	case *game.GainBlock:
		e.execGainBlock(n, rc)
	case *game.Heal:
		e.execHeal(n, rc)
	case *game.GainResource:
		e.execGainResource(n, rc)
	case *game.ConsumeStatus:
		return false, e.execConsumeStatus(n, rc)
	case *game.ConsumeCharge:
		return false, e.execConsumeCharge(n, rc)
	case *game.ApplyStatus:
		return false, e.execApplyStatus(n, rc)
	case *game.RemoveStatus:
		e.execRemoveStatus(n, rc)
	case *game.ScaleStatus:
		e.execScaleStatus(n, rc)
	case *game.SpreadStatus:
		return false, e.execSpreadStatus(n, rc)
	case *game.Draw:
		e.execDraw(n, rc)
	case *game.Discard:
		return e.execDiscard(n, rc), nil
	case *game.ReturnToDeck:
		return e.execReturnToDeck(n, rc), nil
	case *game.CreateCards:
		return false, e.execCreateCards(n, rc)
	case *game.Deploy:
		return false, e.execDeploy(n, rc)
	case *game.Decompose:
		e.execDecompose(n, rc)
	case *game.Bonus:
		e.execBonus(n, rc)
	case *game.Conditional:
		e.execConditional(n, rc)
	case *game.Choice:
		return e.execChoice(n, rc), nil
	case *game.Reaction:
		e.execReaction(n, rc)
	case *game.Resonance:
		e.execResonance(n, rc)
	case *game.Trace:
		return e.execTrace(n, rc)
	case *game.Discover:
		return e.execDiscover(n, rc), nil
	default:
		return false, fmt.Errorf("%w: unhandled effect %T", ErrInvariant, node)
	}
	return false, nil
}

// suspend records a pending request for node. The caller returns true
// from exec so run stores the remaining stack.
func (e *Engine) suspend(kind game.Phase, node game.Effect, rc *resolveContext, p game.Pending) {
	p.Kind = kind
	p.ActorID = rc.source.ID
	p.Node = game.Effects{node}
	p.Context = rc.frame
	p.Origin = e.state.Phase
	e.state.Pending = &p
	e.state.Phase = kind
}
