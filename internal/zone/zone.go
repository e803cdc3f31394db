// Package zone owns the card piles of every actor in a combat: drawing,
// shuffling, discarding, exhausting and minting card instances.
package zone

import (
	"errors"
	"fmt"

	"github.com/ericogr/genesis-combat/internal/game"
)

var ErrUnknownCard = errors.New("unknown card template")

// Selector picks cards out of a hand for Discard.
type Selector struct {
	// IDs names explicit instances; it takes precedence over Count.
	IDs []string
	// All discards the whole hand.
	All    bool
	Count  int
	Random bool
}

// Spec customises a freshly created instance.
type Spec struct {
	Temporary    bool
	ExhaustOnUse bool
	Disposable   bool
	CostOverride *int
	CollectionID string
}

// Manager performs zone operations against one combat. The same manager
// serves the player, hostiles and constructs; the actor is a parameter.
type Manager struct {
	state *game.CombatState
	lib   *game.Catalog
}

func New(state *game.CombatState, lib *game.Catalog) *Manager {
	return &Manager{state: state, lib: lib}
}

// Create mints a new instance of templateID and places it in zone.
// Top-level reactions of the template are armed on the new instance.
func (m *Manager) Create(a *game.Actor, templateID string, to game.ZoneKind, pos game.DeckPosition, spec Spec) (*game.CardInstance, error) {
	tmpl, ok := m.lib.Card(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, templateID)
	}
	inst := &game.CardInstance{
		ID:           m.state.NewInstanceID(),
		TemplateID:   templateID,
		CollectionID: spec.CollectionID,
		Temporary:    spec.Temporary,
		ExhaustOnUse: spec.ExhaustOnUse,
		Disposable:   spec.Disposable,
		CostOverride: spec.CostOverride,
	}
	Arm(inst, tmpl)
	m.Put(a, inst, to, pos)
	return inst, nil
}

// Arm registers the template's top-level reactions on inst.
func Arm(inst *game.CardInstance, tmpl *game.CardTemplate) {
	for _, e := range tmpl.Effects {
		if r, ok := e.(*game.Reaction); ok {
			inst.Armed = append(inst.Armed, game.ArmedReaction{On: r.On, Effects: r.Effects})
		}
	}
}

// BuildDeck creates the deck of a from collection entries and shuffles it.
func (m *Manager) BuildDeck(a *game.Actor, entries []game.CollectionEntry) error {
	for _, e := range entries {
		if _, err := m.Create(a, e.TemplateID, game.ZoneDeck, game.PositionBottom, Spec{CostOverride: e.CostOverride, CollectionID: e.ID}); err != nil {
			return err
		}
	}
	m.Shuffle(a)
	return nil
}

// Put places inst into zone. Deck placement honours pos; other zones append.
func (m *Manager) Put(a *game.Actor, inst *game.CardInstance, to game.ZoneKind, pos game.DeckPosition) {
	pile := a.Zones.Pile(to)
	if to != game.ZoneDeck {
		*pile = append(*pile, inst)
		return
	}
	switch pos {
	case game.PositionTop:
		*pile = append([]*game.CardInstance{inst}, *pile...)
	case game.PositionShuffle:
		i := m.state.RNG.IntN(len(*pile) + 1)
		*pile = append(*pile, nil)
		copy((*pile)[i+1:], (*pile)[i:])
		(*pile)[i] = inst
	default:
		*pile = append(*pile, inst)
	}
}

// Take removes an instance from whichever zone holds it. Disposable
// copies leave the combat this way once resolved.
func (m *Manager) Take(a *game.Actor, instanceID string) (*game.CardInstance, game.ZoneKind, bool) {
	kind, idx, ok := a.Zones.Locate(instanceID)
	if !ok {
		return nil, "", false
	}
	pile := a.Zones.Pile(kind)
	inst := (*pile)[idx]
	*pile = append((*pile)[:idx], (*pile)[idx+1:]...)
	return inst, kind, true
}

// Move relocates an instance. It reports false when the instance is unknown.
func (m *Manager) Move(a *game.Actor, instanceID string, to game.ZoneKind, pos game.DeckPosition) (*game.CardInstance, bool) {
	inst, _, ok := m.Take(a, instanceID)
	if !ok {
		return nil, false
	}
	m.Put(a, inst, to, pos)
	return inst, true
}

// Find returns the instance and its zone without moving it.
func (m *Manager) Find(a *game.Actor, instanceID string) (*game.CardInstance, game.ZoneKind) {
	kind, idx, ok := a.Zones.Locate(instanceID)
	if !ok {
		return nil, ""
	}
	return (*a.Zones.Pile(kind))[idx], kind
}

func (m *Manager) Shuffle(a *game.Actor) {
	deck := a.Zones.Deck
	m.state.RNG.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// Draw moves up to n cards from the top of the deck to hand, shuffling
// the discard pile back in whenever the deck runs dry. It stops early
// when both piles are empty.
func (m *Manager) Draw(a *game.Actor, n int) []*game.CardInstance {
	var drawn []*game.CardInstance
	for len(drawn) < n {
		if len(a.Zones.Deck) == 0 {
			if len(a.Zones.Discard) == 0 {
				break
			}
			m.reshuffle(a)
		}
		inst := a.Zones.Deck[0]
		a.Zones.Deck = a.Zones.Deck[1:]
		a.Zones.Hand = append(a.Zones.Hand, inst)
		drawn = append(drawn, inst)
	}
	a.Turn.Draws += len(drawn)
	return drawn
}

func (m *Manager) reshuffle(a *game.Actor) {
	a.Zones.Deck = append(a.Zones.Deck, a.Zones.Discard...)
	a.Zones.Discard = nil
	m.Shuffle(a)
	m.state.Logf("%s shuffles their discard pile into the deck", a.Name)
}

// Discard moves selected hand cards to the discard pile and returns them
// in the order moved. Requests larger than the hand are clamped.
func (m *Manager) Discard(a *game.Actor, sel Selector) []*game.CardInstance {
	var ids []string
	switch {
	case len(sel.IDs) > 0:
		ids = sel.IDs
	case sel.All:
		for _, c := range a.Zones.Hand {
			ids = append(ids, c.ID)
		}
	case sel.Random:
		pool := append([]*game.CardInstance(nil), a.Zones.Hand...)
		for i := 0; i < sel.Count && len(pool) > 0; i++ {
			j := m.state.RNG.IntN(len(pool))
			ids = append(ids, pool[j].ID)
			pool = append(pool[:j], pool[j+1:]...)
		}
	default:
		for i := 0; i < sel.Count && i < len(a.Zones.Hand); i++ {
			ids = append(ids, a.Zones.Hand[i].ID)
		}
	}
	var moved []*game.CardInstance
	for _, id := range ids {
		kind, idx, ok := a.Zones.Locate(id)
		if !ok || kind != game.ZoneHand {
			continue
		}
		inst := a.Zones.Hand[idx]
		a.Zones.Hand = append(a.Zones.Hand[:idx], a.Zones.Hand[idx+1:]...)
		a.Zones.Discard = append(a.Zones.Discard, inst)
		moved = append(moved, inst)
	}
	a.Turn.Discards += len(moved)
	return moved
}

// Exhaust removes an instance from play for the rest of the combat.
func (m *Manager) Exhaust(a *game.Actor, instanceID string) bool {
	_, ok := m.Move(a, instanceID, game.ZoneExhaust, "")
	return ok
}

// FlushHand moves the whole hand to discard at end of turn. It does not
// count as a discard for reactions or turn counters.
func (m *Manager) FlushHand(a *game.Actor) []*game.CardInstance {
	moved := a.Zones.Hand
	a.Zones.Discard = append(a.Zones.Discard, moved...)
	a.Zones.Hand = nil
	return moved
}

// PurgeTemporary removes temporary and disposable instances from every
// zone.
func (m *Manager) PurgeTemporary(a *game.Actor) int {
	n := 0
	for _, k := range game.AllZones {
		pile := a.Zones.Pile(k)
		kept := (*pile)[:0]
		for _, c := range *pile {
			if c.Temporary || c.Disposable {
				n++
				continue
			}
			kept = append(kept, c)
		}
		*pile = kept
	}
	return n
}

// Verify checks that every instance id appears in exactly one zone
// across all given actors.
func Verify(actors ...*game.Actor) error {
	seen := make(map[string]string)
	for _, a := range actors {
		for _, k := range game.AllZones {
			for _, c := range *a.Zones.Pile(k) {
				if c == nil {
					return fmt.Errorf("nil card in %s %s", a.ID, k)
				}
				if where, dup := seen[c.ID]; dup {
					return fmt.Errorf("card %s in both %s and %s/%s", c.ID, where, a.ID, k)
				}
				seen[c.ID] = a.ID + "/" + string(k)
			}
		}
	}
	return nil
}
