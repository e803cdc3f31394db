package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/zone"
)

const (
	defaultDrawPerTurn = 5
	defaultMaxCP       = 3
)

// PlayerSetup describes the player entering a combat.
type PlayerSetup struct {
	ID          string
	Name        string
	MaxHP       int
	HP          int
	Attack      int
	Defense     int
	MaxCP       int
	MaxCharge   int
	DrawPerTurn int
	Collection  []game.CollectionEntry
	Modifiers   game.Modifiers
}

// Setup is a started-combat request.
type Setup struct {
	ID            string
	Seed          uint64
	Player        PlayerSetup
	Enemies       []string
	MaxConcurrent int
}

// Controller is the turn state machine. It is stateless: every call
// receives the combat it acts on, so one controller serves all combats.
type Controller struct {
	lib *game.Catalog
}

func NewController(lib *game.Catalog) *Controller {
	return &Controller{lib: lib}
}

func (c *Controller) Catalog() *game.Catalog { return c.lib }

// Start builds a combat, deploys starting constructs and opens turn one.
func (c *Controller) Start(setup Setup) (*game.CombatState, error) {
	ps := setup.Player
	if ps.MaxHP <= 0 {
		return nil, reject("player max HP must be positive")
	}
	if len(setup.Enemies) == 0 {
		return nil, reject("at least one enemy is required")
	}
	for _, id := range setup.Enemies {
		if _, ok := c.lib.Enemy(id); !ok {
			return nil, reject("unknown enemy %q", id)
		}
	}
	for _, entry := range ps.Collection {
		if _, ok := c.lib.Card(entry.TemplateID); !ok {
			return nil, reject("unknown card %q in collection", entry.TemplateID)
		}
	}

	s := &game.CombatState{
		ID:            setup.ID,
		Phase:         game.PhasePlayerTurn,
		RNG:           game.NewRNG(setup.Seed),
		MaxConcurrent: setup.MaxConcurrent,
	}
	e := newEngine(c.lib, s)

	p := &game.Actor{
		ID:          ps.ID,
		Name:        ps.Name,
		Kind:        game.ActorPlayer,
		Side:        game.SidePlayer,
		MaxHP:       ps.MaxHP,
		HP:          ps.HP,
		Attack:      ps.Attack,
		Defense:     ps.Defense,
		MaxCP:       ps.MaxCP,
		MaxCharge:   ps.MaxCharge,
		DrawPerTurn: ps.DrawPerTurn,
		Modifiers:   ps.Modifiers,
	}
	if p.ID == "" {
		p.ID = "player"
	}
	if p.HP <= 0 || p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.MaxCP <= 0 {
		p.MaxCP = defaultMaxCP
	}
	if p.DrawPerTurn <= 0 {
		p.DrawPerTurn = defaultDrawPerTurn
	}
	for _, entry := range ps.Collection {
		cp := entry
		cp.Counters = make(map[string]int, len(entry.Counters))
		for k, v := range entry.Counters {
			cp.Counters[k] = v
		}
		p.Collection = append(p.Collection, cp)
	}
	s.Player = p
	if err := e.zones.BuildDeck(p, p.Collection); err != nil {
		return nil, reject("%v", err)
	}

	for i, id := range setup.Enemies {
		h, err := e.newHostile(id, i)
		if err != nil {
			return nil, err
		}
		if s.MaxConcurrent > 0 && len(s.Hostiles) >= s.MaxConcurrent {
			s.Reserve = append(s.Reserve, h)
		} else {
			s.Hostiles = append(s.Hostiles, h)
		}
	}
	for _, h := range s.Hostiles {
		e.deployInitial(h)
	}
	s.Logf("Combat begins against %d foes", len(setup.Enemies))
	err := e.beginPlayerTurn()
	return s, c.settle(e, err)
}

func (e *Engine) newHostile(templateID string, idx int) (*game.Actor, error) {
	et, _ := e.lib.Enemy(templateID)
	h := &game.Actor{
		ID:      "h" + strconv.Itoa(idx+1),
		Name:    et.Name,
		Kind:    game.ActorHostile,
		Side:    game.SideHostile,
		HP:      et.MaxHP,
		MaxHP:   et.MaxHP,
		Attack:  et.Attack,
		Defense: et.Defense,
		Hostile: &game.HostileState{
			TemplateID:     et.ID,
			ActionsPerTurn: max(1, et.ActionsPerTurn),
			TideThreshold:  et.TideThreshold,
			TideCard:       et.TideCard,
			Reward:         et.Reward,
		},
	}
	if et.Special != nil {
		h.Hostile.Special = &game.SpecialAction{Threshold: et.Special.Threshold, Card: et.Special.Card}
	}
	for _, card := range et.Deck {
		if _, err := e.zones.Create(h, card, game.ZoneDeck, game.PositionBottom, zone.Spec{}); err != nil {
			return nil, fmt.Errorf("%w: enemy %s: %v", ErrInvariant, et.ID, err)
		}
	}
	e.zones.Shuffle(h)
	return h, nil
}

func guard(s *game.CombatState) error {
	if s.Faulted {
		return ErrCombatFaulted
	}
	if s.Phase.Terminal() {
		return reject("combat is over (%s)", s.Phase)
	}
	if s.Pending != nil || s.Phase != game.PhasePlayerTurn {
		return reject("waiting for %s", s.Phase)
	}
	return nil
}

// PlayCard plays a card from the player's hand. Every check happens
// before the first mutation, so a rejected play changes nothing.
func (c *Controller) PlayCard(s *game.CombatState, instanceID, targetID string) error {
	if err := guard(s); err != nil {
		return err
	}
	e := newEngine(c.lib, s)
	p := s.Player
	kind, idx, ok := p.Zones.Locate(instanceID)
	if !ok || kind != game.ZoneHand {
		return reject("card %s is not in hand", instanceID)
	}
	inst := p.Zones.Hand[idx]
	tmpl, ok := c.lib.Card(inst.TemplateID)
	if !ok {
		return reject("unknown card %q", inst.TemplateID)
	}
	if tmpl.Unplayable {
		return reject("%s cannot be played", tmpl.Name)
	}
	cost := cardCost(p, tmpl, inst)
	if cost > p.CP {
		return reject("%s costs %d, only %d CP left", tmpl.Name, cost, p.CP)
	}
	if targetID != "" {
		t := s.Actor(targetID)
		if !t.Alive() {
			return reject("no living target %q", targetID)
		}
		if t.Side == p.Side && needsTarget(tmpl.Effects) {
			return reject("%s cannot target an ally", tmpl.Name)
		}
	} else if needsTarget(tmpl.Effects) {
		targetID = e.defaultTarget(p)
		if targetID == "" {
			return reject("%s needs a target", tmpl.Name)
		}
	}
	if tmpl.PlayCondition != nil {
		facts := viewFacts{view: e.capture(), self: p.ID, target: targetID, turn: s.Turn}
		if !tmpl.PlayCondition.Holds(facts) {
			return reject("%s: condition %q not met", tmpl.Name, tmpl.PlayCondition.String())
		}
	}

	p.CP -= cost
	return c.settle(e, e.playInstance(p, inst, targetID, false))
}

// EndTurn ends the player turn, runs the hostile turns and opens the next
// player turn unless the combat ended or a draw reaction suspended.
func (c *Controller) EndTurn(s *game.CombatState) error {
	if err := guard(s); err != nil {
		return err
	}
	e := newEngine(c.lib, s)
	return c.settle(e, e.endPlayerTurn())
}

// settle verifies invariants after a command and faults the combat on
// any internal error.
func (c *Controller) settle(e *Engine, err error) error {
	if err == nil {
		err = e.verify()
	}
	if err == nil {
		return nil
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return err
	}
	if !errors.Is(err, ErrInvariant) {
		err = fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	e.state.Faulted = true
	logging.Error("combat faulted", err, logging.Fields{
		constants.LogFieldCombatID: e.state.ID,
		constants.LogFieldPhase:    string(e.state.Phase),
	})
	return err
}
