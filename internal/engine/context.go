package engine

import "github.com/ericogr/genesis-combat/internal/game"

// --- Resolution context and predicate facts ---------------------------
type resolveContext struct {
	source *game.Actor
	target *game.Actor
	frame  game.Frame
}

// child returns a frame that runs es under the same context.
func (rc *resolveContext) child(es game.Effects) game.Frame {
	f := rc.frame
	f.Effects = sortedByRank(es)
	f.Finalize = false
	return f
}

func (e *Engine) contextFor(f game.Frame) *resolveContext {
	return &resolveContext{
		source: e.state.Actor(f.SourceID),
		target: e.state.Actor(f.TargetID),
		frame:  game.Frame{SourceID: f.SourceID, TargetID: f.TargetID, CardID: f.CardID, TemplateID: f.TemplateID, View: f.View, Auto: f.Auto},
	}
}

// capture freezes the predicate-relevant state of every actor.
func (e *Engine) capture() *game.Snapshot {
	snap := &game.Snapshot{Actors: make(map[string]game.ActorView)}
	for _, a := range e.state.Actors() {
		owner := e.state.ZoneOwner(a)
		v := game.ActorView{
			HP:        a.HP,
			MaxHP:     a.MaxHP,
			Block:     a.Block,
			CP:        a.CP,
			MaxCP:     a.MaxCP,
			Charge:    a.Charge,
			MaxCharge: a.MaxCharge,
			Hand:      len(owner.Zones.Hand),
			Deck:      len(owner.Zones.Deck),
			Discard:   len(owner.Zones.Discard),
			Exhaust:   len(owner.Zones.Exhaust),
			Turn:      a.Turn,
		}
		v.Turn.DistinctAttacks = append([]string(nil), a.Turn.DistinctAttacks...)
		if len(a.Statuses) > 0 {
			v.Statuses = make(map[string]int, len(a.Statuses))
			for _, s := range a.Statuses {
				v.Statuses[s.Kind] = s.Value
			}
		}
		snap.Actors[a.ID] = v
	}
	return snap
}

// viewFacts answers condition lookups against a snapshot.
type viewFacts struct {
	view   *game.Snapshot
	self   string
	target string
	turn   int
}

func (e *Engine) factsFor(rc *resolveContext) viewFacts {
	view := rc.frame.View
	if view == nil {
		view = e.capture()
	}
	return viewFacts{view: view, self: rc.frame.SourceID, target: rc.frame.TargetID, turn: e.state.Turn}
}

func (f viewFacts) actor(subject string) (game.ActorView, bool) {
	switch subject {
	case "self":
		v, ok := f.view.Actors[f.self]
		return v, ok
	case "target":
		v, ok := f.view.Actors[f.target]
		return v, ok
	}
	return game.ActorView{}, false
}

func (f viewFacts) Quantity(subject, field string) int {
	if subject == "turn" {
		self := f.view.Actors[f.self]
		t := self.Turn
		switch field {
		case "number":
			return f.turn
		case "first_attack":
			return boolInt(t.AttacksPlayed == 0)
		case "first_discard":
			return boolInt(t.Discards == 0)
		case "attacks_played":
			return t.AttacksPlayed
		case "distinct_attacks":
			return len(t.DistinctAttacks)
		case "cards_played":
			return t.CardsPlayed
		case "discards":
			return t.Discards
		case "draws":
			return t.Draws
		}
		return 0
	}
	v, ok := f.actor(subject)
	if !ok {
		return 0
	}
	switch field {
	case "hp":
		return v.HP
	case "max_hp":
		return v.MaxHP
	case "hp_pct":
		if v.MaxHP == 0 {
			return 0
		}
		return v.HP * 100 / v.MaxHP
	case "block":
		return v.Block
	case "cp":
		return v.CP
	case "charge":
		return v.Charge
	case "hand":
		return v.Hand
	case "deck":
		return v.Deck
	case "discard":
		return v.Discard
	case "exhaust":
		return v.Exhaust
	}
	return v.Statuses[field]
}

func (f viewFacts) Maximum(subject, field string) (int, bool) {
	v, ok := f.actor(subject)
	if !ok {
		return 0, false
	}
	switch field {
	case "hp":
		return v.MaxHP, true
	case "cp":
		return v.MaxCP, true
	case "charge":
		return v.MaxCharge, v.MaxCharge > 0
	}
	return 0, false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
