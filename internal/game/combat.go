package game

import (
	"fmt"
	"strconv"
)

// Phase is the turn controller state.
type Phase string

const (
	PhasePlayerTurn           Phase = "player_turn"
	PhaseAwaitingDiscard      Phase = "awaiting_discard"
	PhaseAwaitingReturnToDeck Phase = "awaiting_return_to_deck"
	PhaseAwaitingCardChoice   Phase = "awaiting_card_choice"
	PhaseAwaitingEffectChoice Phase = "awaiting_effect_choice"
	PhaseEnemyTurn            Phase = "enemy_turn"
	PhaseVictory              Phase = "victory"
	PhaseDefeat               Phase = "defeat"
)

func (p Phase) Terminal() bool { return p == PhaseVictory || p == PhaseDefeat }

func (p Phase) Awaiting() bool {
	switch p {
	case PhaseAwaitingDiscard, PhaseAwaitingReturnToDeck, PhaseAwaitingCardChoice, PhaseAwaitingEffectChoice:
		return true
	}
	return false
}

// Option is one selectable entry of a pending request. For card requests
// ID is a card instance id or template id; for effect choices it is the
// branch index.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ChoicePurpose tells the resume path what to do with a card choice.
type ChoicePurpose string

const (
	PurposeTrace    ChoicePurpose = "trace"
	PurposeDiscover ChoicePurpose = "discover"
)

// Snapshot is the frozen view predicates are evaluated against.
type Snapshot struct {
	Actors map[string]ActorView `json:"actors"`
}

type ActorView struct {
	HP        int            `json:"hp"`
	MaxHP     int            `json:"max_hp"`
	Block     int            `json:"block"`
	CP        int            `json:"cp"`
	MaxCP     int            `json:"max_cp"`
	Charge    int            `json:"charge"`
	MaxCharge int            `json:"max_charge"`
	Hand      int            `json:"hand"`
	Deck      int            `json:"deck"`
	Discard   int            `json:"discard"`
	Exhaust   int            `json:"exhaust"`
	Statuses  map[string]int `json:"statuses,omitempty"`
	Turn      TurnCounters   `json:"turn"`
}

// Frame is one partially executed effect list on the interpreter stack.
type Frame struct {
	Effects  Effects `json:"effects"`
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id,omitempty"`
	CardID   string  `json:"card_id,omitempty"`
	// TemplateID identifies the card even when the instance is disposable.
	TemplateID string    `json:"template_id,omitempty"`
	View       *Snapshot `json:"view,omitempty"`
	// Auto frames never suspend; choices take their default branch.
	Auto bool `json:"auto,omitempty"`
	// Finalize marks the root frame of a played card. Popping it moves
	// the card out of limbo.
	Finalize bool `json:"finalize,omitempty"`
	// Posthumous frames still run once their source has left the combat.
	Posthumous bool `json:"posthumous,omitempty"`
}

// Pending is the single outstanding suspension of a combat.
type Pending struct {
	Kind     Phase         `json:"kind"`
	ActorID  string        `json:"actor_id"`
	Prompt   string        `json:"prompt,omitempty"`
	Options  []Option      `json:"options,omitempty"`
	Count    int           `json:"count"`
	Purpose  ChoicePurpose `json:"purpose,omitempty"`
	Position DeckPosition  `json:"position,omitempty"`
	// Node is the suspended effect and Context the frame it ran in.
	Node    Effects `json:"node,omitempty"`
	Context Frame   `json:"context"`
	Frames  []Frame `json:"frames"`
	Origin  Phase   `json:"origin"`
}

type LogEntry struct {
	Seq  int    `json:"seq"`
	Turn int    `json:"turn"`
	Text string `json:"text"`
}

// AnimTag is an advisory presentation cue.
type AnimTag string

const (
	AnimHit     AnimTag = "hit"
	AnimBlock   AnimTag = "block"
	AnimHeal    AnimTag = "heal"
	AnimBurn    AnimTag = "burn"
	AnimBleed   AnimTag = "bleed"
	AnimPoison  AnimTag = "poison"
	AnimStatus  AnimTag = "status"
	AnimDeploy  AnimTag = "deploy"
	AnimDestroy AnimTag = "destroy"
	AnimDefeat  AnimTag = "defeat"
)

type AnimEvent struct {
	Seq      int     `json:"seq"`
	EntityID string  `json:"entity_id"`
	Tag      AnimTag `json:"tag"`
	Amount   int     `json:"amount,omitempty"`
}

// DeltaKind classifies a persistent change the host must apply.
type DeltaKind string

const (
	DeltaEvolve    DeltaKind = "evolve"
	DeltaGrant     DeltaKind = "grant"
	DeltaRemove    DeltaKind = "remove"
	DeltaCounter   DeltaKind = "counter"
	DeltaMaxHPGain DeltaKind = "max_hp_gain"
)

type Delta struct {
	Kind         DeltaKind `json:"kind"`
	CollectionID string    `json:"collection_id,omitempty"`
	TemplateID   string    `json:"template_id,omitempty"`
	Successor    string    `json:"successor,omitempty"`
	Counter      string    `json:"counter,omitempty"`
	CostOverride *int      `json:"cost_override,omitempty"`
	Amount       int       `json:"amount,omitempty"`
}

type Outcome struct {
	Victory bool    `json:"victory"`
	Reward  Reward  `json:"reward"`
	Deltas  []Delta `json:"deltas,omitempty"`
}

// CombatState is the aggregate root of one combat.
type CombatState struct {
	ID            string      `json:"id"`
	Phase         Phase       `json:"phase"`
	Turn          int         `json:"turn"`
	RNG           *RNG        `json:"rng"`
	NextID        int         `json:"next_id"`
	Seq           int         `json:"seq"`
	Player        *Actor      `json:"player"`
	Hostiles      []*Actor    `json:"hostiles"`
	Reserve       []*Actor    `json:"reserve,omitempty"`
	MaxConcurrent int         `json:"max_concurrent,omitempty"`
	Constructs    []*Actor    `json:"constructs,omitempty"`
	Pending       *Pending    `json:"pending,omitempty"`
	Log           []LogEntry  `json:"log"`
	Events        []AnimEvent `json:"events"`
	Deltas        []Delta     `json:"deltas,omitempty"`
	Outcome       *Outcome    `json:"outcome,omitempty"`
	Faulted       bool        `json:"faulted,omitempty"`
}

// Actors returns every live-or-dead participant in registration order:
// player, hostiles, then constructs.
func (s *CombatState) Actors() []*Actor {
	out := make([]*Actor, 0, 1+len(s.Hostiles)+len(s.Constructs))
	if s.Player != nil {
		out = append(out, s.Player)
	}
	out = append(out, s.Hostiles...)
	out = append(out, s.Constructs...)
	return out
}

func (s *CombatState) Actor(id string) *Actor {
	for _, a := range s.Actors() {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ActiveHostiles returns hostiles still in the fight.
func (s *CombatState) ActiveHostiles() []*Actor {
	var out []*Actor
	for _, h := range s.Hostiles {
		if h.Alive() {
			out = append(out, h)
		}
	}
	return out
}

// Enemies returns the living opponents of a, including constructs.
func (s *CombatState) Enemies(a *Actor) []*Actor {
	var out []*Actor
	for _, o := range s.Actors() {
		if o.Side != a.Side && o.Alive() {
			out = append(out, o)
		}
	}
	return out
}

// ZoneOwner returns the actor whose zones a card played by a belongs to.
// Constructs borrow their owner's zones.
func (s *CombatState) ZoneOwner(a *Actor) *Actor {
	if a != nil && a.Construct != nil {
		if o := s.Actor(a.Construct.OwnerID); o != nil {
			return o
		}
	}
	return a
}

// NewInstanceID mints a combat-unique card instance id.
func (s *CombatState) NewInstanceID() string {
	s.NextID++
	return "c" + strconv.Itoa(s.NextID)
}

// NewActorID mints a combat-unique actor id with the given prefix.
func (s *CombatState) NewActorID(prefix string) string {
	s.NextID++
	return prefix + strconv.Itoa(s.NextID)
}

func (s *CombatState) Logf(format string, args ...any) {
	s.Seq++
	s.Log = append(s.Log, LogEntry{Seq: s.Seq, Turn: s.Turn, Text: fmt.Sprintf(format, args...)})
}

func (s *CombatState) Emit(entityID string, tag AnimTag, amount int) {
	s.Seq++
	s.Events = append(s.Events, AnimEvent{Seq: s.Seq, EntityID: entityID, Tag: tag, Amount: amount})
}
