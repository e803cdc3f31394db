package engine

import (
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/zone"
)

// ResumeInput carries the player's answer to a pending request. Card
// requests use CardIDs; effect choices use Option.
type ResumeInput struct {
	CardIDs []string `json:"card_ids,omitempty"`
	Option  *int     `json:"option,omitempty"`
}

func (c *Controller) ResumeDiscard(s *game.CombatState, ids []string) error {
	return c.Resume(s, game.PhaseAwaitingDiscard, ResumeInput{CardIDs: ids})
}

func (c *Controller) ResumeReturnToDeck(s *game.CombatState, ids []string) error {
	return c.Resume(s, game.PhaseAwaitingReturnToDeck, ResumeInput{CardIDs: ids})
}

func (c *Controller) ResumeCardChoice(s *game.CombatState, id string) error {
	return c.Resume(s, game.PhaseAwaitingCardChoice, ResumeInput{CardIDs: []string{id}})
}

func (c *Controller) ResumeEffectChoice(s *game.CombatState, option int) error {
	return c.Resume(s, game.PhaseAwaitingEffectChoice, ResumeInput{Option: &option})
}

// validateResume checks an answer against the pending request without
// touching the combat.
func validateResume(p *game.Pending, in ResumeInput) error {
	offered := make(map[string]bool, len(p.Options))
	for _, o := range p.Options {
		offered[o.ID] = true
	}
	switch p.Kind {
	case game.PhaseAwaitingEffectChoice:
		if in.Option == nil || *in.Option < 0 || *in.Option >= len(p.Options) {
			return reject("choose an option between 0 and %d", len(p.Options)-1)
		}
		return nil
	case game.PhaseAwaitingCardChoice:
		if len(in.CardIDs) != 1 || !offered[in.CardIDs[0]] {
			return reject("choose exactly one of the offered cards")
		}
		return nil
	}
	if len(in.CardIDs) != p.Count {
		return reject("select exactly %d cards, got %d", p.Count, len(in.CardIDs))
	}
	seen := map[string]bool{}
	for _, id := range in.CardIDs {
		if !offered[id] {
			return reject("card %s was not offered", id)
		}
		if seen[id] {
			return reject("card %s selected twice", id)
		}
		seen[id] = true
	}
	return nil
}

// Resume is the single entry point that answers a pending request and
// continues resolution from where it stopped.
func (c *Controller) Resume(s *game.CombatState, kind game.Phase, in ResumeInput) error {
	if s.Faulted {
		return ErrCombatFaulted
	}
	p := s.Pending
	if p == nil || s.Phase != p.Kind {
		return reject("nothing is pending")
	}
	if kind != p.Kind {
		return reject("pending request is %s, not %s", p.Kind, kind)
	}
	if err := validateResume(p, in); err != nil {
		return err
	}
	if len(p.Node) != 1 {
		return reject("pending request has no effect")
	}

	e := newEngine(c.lib, s)
	rc := e.contextFor(p.Context)
	if rc.source == nil {
		return reject("pending actor %q is gone", p.Context.SourceID)
	}
	node := p.Node[0]
	s.Phase = p.Origin
	s.Pending = nil
	e.stack = append([]game.Frame(nil), p.Frames...)
	owner := s.ZoneOwner(rc.source)

	switch p.Kind {
	case game.PhaseAwaitingDiscard:
		e.discard(owner, zone.Selector{IDs: in.CardIDs}, rc.frame.Auto)
	case game.PhaseAwaitingReturnToDeck:
		e.returnToDeck(owner, in.CardIDs, p.Position)
	case game.PhaseAwaitingEffectChoice:
		if ch, ok := node.(*game.Choice); ok {
			e.queue(rc.child(ch.Options[*in.Option].Effects))
		}
	case game.PhaseAwaitingCardChoice:
		switch n := node.(type) {
		case *game.Trace:
			inst, _ := e.zones.Find(owner, in.CardIDs[0])
			if inst != nil {
				if err := e.applyTrace(n, rc, inst.TemplateID); err != nil {
					return c.settle(e, err)
				}
			}
		case *game.Discover:
			e.placeDiscovered(n, rc, in.CardIDs[0])
		}
	}
	return c.settle(e, e.run())
}
