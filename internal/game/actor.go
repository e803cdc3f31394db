package game

type Side string

const (
	SidePlayer  Side = "player"
	SideHostile Side = "hostile"
)

type ActorKind string

const (
	ActorPlayer    ActorKind = "player"
	ActorHostile   ActorKind = "hostile"
	ActorConstruct ActorKind = "construct"
)

// StatusInstance is one active status on an actor. Value is the stack
// count for stacking statuses and the magnitude for scalar ones.
type StatusInstance struct {
	Kind     string `json:"kind"`
	Value    int    `json:"value"`
	Duration int    `json:"duration,omitempty"`
	// ApplierAttack is the attack of whoever last applied burn.
	ApplierAttack int `json:"applier_attack,omitempty"`
}

// Modifiers are multiplicative adjustments carried into combat from
// outside (relics, difficulty, equipment). Zero means 1.
type Modifiers struct {
	Attack    float64 `json:"attack,omitempty"`
	Defense   float64 `json:"defense,omitempty"`
	Damage    float64 `json:"damage,omitempty"`
	Block     float64 `json:"block,omitempty"`
	Heal      float64 `json:"heal,omitempty"`
	CostDelta int     `json:"cost_delta,omitempty"`
}

// TurnCounters reset at the start of the actor's turn.
type TurnCounters struct {
	CardsPlayed     int      `json:"cards_played"`
	AttacksPlayed   int      `json:"attacks_played"`
	DistinctAttacks []string `json:"distinct_attacks,omitempty"`
	Discards        int      `json:"discards"`
	Draws           int      `json:"draws"`
}

func (t *TurnCounters) RecordAttack(templateID string) {
	t.AttacksPlayed++
	for _, id := range t.DistinctAttacks {
		if id == templateID {
			return
		}
	}
	t.DistinctAttacks = append(t.DistinctAttacks, templateID)
}

// SpecialAction fires a card once when HP falls to Threshold of max.
type SpecialAction struct {
	Threshold float64 `json:"threshold"`
	Card      string  `json:"card"`
	Fired     bool    `json:"fired,omitempty"`
}

// HostileState carries enemy-only bookkeeping.
type HostileState struct {
	TemplateID     string         `json:"template_id"`
	ActionsPerTurn int            `json:"actions_per_turn"`
	Tide           int            `json:"tide"`
	TideThreshold  int            `json:"tide_threshold,omitempty"`
	TideCard       string         `json:"tide_card,omitempty"`
	Special        *SpecialAction `json:"special,omitempty"`
	Reward         Reward         `json:"reward"`
}

// ConstructState carries construct-only bookkeeping.
type ConstructState struct {
	TemplateID   string `json:"template_id"`
	OwnerID      string `json:"owner_id"`
	Durability   int    `json:"durability"`
	BoundTarget  string `json:"bound_target,omitempty"`
	DestroyFired bool   `json:"destroy_fired,omitempty"`
}

// Actor is any participant in a combat: the player, an enemy, or a construct.
type Actor struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Kind        ActorKind        `json:"kind"`
	Side        Side             `json:"side"`
	HP          int              `json:"hp"`
	MaxHP       int              `json:"max_hp"`
	Block       int              `json:"block"`
	Attack      int              `json:"attack"`
	Defense     int              `json:"defense"`
	CP          int              `json:"cp"`
	MaxCP       int              `json:"max_cp"`
	Charge      int              `json:"charge"`
	MaxCharge   int              `json:"max_charge"`
	DrawPerTurn int              `json:"draw_per_turn"`
	Statuses    []StatusInstance `json:"statuses,omitempty"`
	Constructs  []string         `json:"constructs,omitempty"`
	Zones       Zones            `json:"zones"`
	Modifiers   Modifiers        `json:"modifiers"`
	// Collection is the persistent card list the deck was built from.
	Collection []CollectionEntry `json:"collection,omitempty"`
	LastPlayed *CardDescriptor   `json:"last_played,omitempty"`
	Turn       TurnCounters      `json:"turn"`
	Removed    bool              `json:"removed,omitempty"`
	Hostile    *HostileState     `json:"hostile,omitempty"`
	Construct  *ConstructState   `json:"construct,omitempty"`
}

func (a *Actor) Alive() bool { return a != nil && !a.Removed && a.HP > 0 }

// Status returns the active instance of kind, or nil.
func (a *Actor) Status(kind string) *StatusInstance {
	for i := range a.Statuses {
		if a.Statuses[i].Kind == kind {
			return &a.Statuses[i]
		}
	}
	return nil
}

// StatusValue returns the stacks or magnitude of kind, zero when absent.
func (a *Actor) StatusValue(kind string) int {
	if s := a.Status(kind); s != nil {
		return s.Value
	}
	return 0
}

func (a *Actor) CollectionEntry(id string) *CollectionEntry {
	for i := range a.Collection {
		if a.Collection[i].ID == id {
			return &a.Collection[i]
		}
	}
	return nil
}
