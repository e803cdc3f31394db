package game

// EffectKind is the discriminator written as "type" in effect JSON.
type EffectKind string

const (
	KindDamage        EffectKind = "damage"
	KindGainBlock     EffectKind = "gain_block"
	KindHeal          EffectKind = "heal"
	KindGainResource  EffectKind = "gain_resource"
	KindConsumeStatus EffectKind = "consume_status"
	KindConsumeCharge EffectKind = "consume_charge"
	KindApplyStatus   EffectKind = "apply_status"
	KindRemoveStatus  EffectKind = "remove_status"
	KindScaleStatus   EffectKind = "scale_status"
	KindSpreadStatus  EffectKind = "spread_status"
	KindDraw          EffectKind = "draw"
	KindDiscard       EffectKind = "discard"
	KindReturnToDeck  EffectKind = "return_to_deck"
	KindCreateCards   EffectKind = "create_cards"
	KindDeploy        EffectKind = "deploy"
	KindDecompose     EffectKind = "decompose"
	KindBonus         EffectKind = "bonus"
	KindConditional   EffectKind = "conditional"
	KindChoice        EffectKind = "choice"
	KindReaction      EffectKind = "reaction"
	KindResonance     EffectKind = "resonance"
	KindTrace         EffectKind = "trace"
	KindDiscover      EffectKind = "discover"
)

// Effect is one node of a card's effect tree. The set of node types is
// closed: every implementation lives in this file.
type Effect interface {
	Kind() EffectKind
	effect()
}

// Effects is an ordered effect list. It (de)serializes with a "type"
// discriminator on each element.
type Effects []Effect

// Rank orders effect kinds within a single list before execution.
// Lower ranks run first; equal ranks keep their authored order.
func Rank(e Effect) int {
	switch e.Kind() {
	case KindReaction:
		return 0
	case KindDamage, KindGainBlock, KindHeal, KindConsumeStatus, KindConsumeCharge:
		return 1
	case KindApplyStatus, KindRemoveStatus, KindScaleStatus, KindSpreadStatus:
		return 2
	case KindDraw, KindDiscard, KindReturnToDeck, KindCreateCards, KindTrace, KindDiscover:
		return 3
	case KindGainResource:
		return 4
	default:
		// bonus, conditional, choice, resonance, deploy, decompose
		return 5
	}
}

// Target names who an effect lands on. The empty value means the
// effect's natural default (usually the card's chosen target for
// hostile effects and the source for beneficial ones).
type Target string

const (
	TargetDefault     Target = ""
	TargetSelf        Target = "self"
	TargetTarget      Target = "target"
	TargetAllEnemies  Target = "all_enemies"
	TargetRandomEnemy Target = "random_enemy"
	TargetOwner       Target = "owner"
)

// Resource is a spendable actor pool.
type Resource string

const (
	ResourceCP     Resource = "cp"
	ResourceCharge Resource = "charge"
	ResourceBlock  Resource = "block"
)

// Trigger is the event an armed reaction waits for.
type Trigger string

const (
	TriggerDiscard        Trigger = "discard"
	TriggerDraw           Trigger = "draw"
	TriggerHPDamageDealt  Trigger = "hp_damage_dealt"
	TriggerBlockedByEnemy Trigger = "blocked_by_enemy"
	TriggerFinisher       Trigger = "finisher"
	TriggerTurnEnd        Trigger = "turn_end"
)

// PickMode selects how cards are chosen from a pool.
type PickMode string

const (
	PickChoose PickMode = "choose"
	PickRandom PickMode = "random"
	PickFirst  PickMode = "first"
	PickLast   PickMode = "last"
)

type DeckPosition string

const (
	PositionTop     DeckPosition = "top"
	PositionBottom  DeckPosition = "bottom"
	PositionShuffle DeckPosition = "shuffle"
)

// Payload is what a consume effect converts the consumed amount into.
type Payload string

const (
	PayloadDamage Payload = "damage"
	PayloadBlock  Payload = "block"
	PayloadHeal   Payload = "heal"
)

// Damage deals round(attack*Multiplier)+Fixed, Hits times. Pierce is the
// fraction of each hit that bypasses block.
type Damage struct {
	Multiplier float64 `json:"multiplier,omitempty"`
	Fixed      int     `json:"fixed,omitempty"`
	Hits       int     `json:"hits,omitempty"`
	Pierce     float64 `json:"pierce,omitempty"`
	Target     Target  `json:"target,omitempty"`
}

type GainBlock struct {
	Multiplier float64 `json:"multiplier,omitempty"`
	Fixed      int     `json:"fixed,omitempty"`
	Target     Target  `json:"target,omitempty"`
}

// Heal restores Fixed plus Ratio of max HP.
type Heal struct {
	Fixed  int     `json:"fixed,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
	Target Target  `json:"target,omitempty"`
}

type GainResource struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
	Target   Target   `json:"target,omitempty"`
}

// ConsumeStatus removes up to Cap stacks (0 = all) of Status from From and
// converts them into Payload at PerStack per stack.
type ConsumeStatus struct {
	Status   string  `json:"status"`
	From     Target  `json:"from,omitempty"`
	Cap      int     `json:"cap,omitempty"`
	PerStack float64 `json:"per_stack"`
	Payload  Payload `json:"payload"`
	Target   Target  `json:"target,omitempty"`
}

// ConsumeCharge spends up to Cap charge (0 = all) and converts it.
type ConsumeCharge struct {
	Cap       int     `json:"cap,omitempty"`
	PerCharge float64 `json:"per_charge"`
	Payload   Payload `json:"payload"`
	Target    Target  `json:"target,omitempty"`
}

type ApplyStatus struct {
	Status   string `json:"status"`
	Stacks   int    `json:"stacks"`
	Duration int    `json:"duration,omitempty"`
	Target   Target `json:"target,omitempty"`
}

// RemoveStatus removes Amount magnitude, or Ratio of it, or all of it
// when both are zero.
type RemoveStatus struct {
	Status string  `json:"status"`
	Amount int     `json:"amount,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
	Target Target  `json:"target,omitempty"`
}

type ScaleStatus struct {
	Status     string  `json:"status"`
	Multiplier float64 `json:"multiplier"`
	Target     Target  `json:"target,omitempty"`
}

// SpreadStatus copies Ratio of From's Status magnitude onto every other
// enemy of the source.
type SpreadStatus struct {
	Status string  `json:"status"`
	Ratio  float64 `json:"ratio"`
	From   Target  `json:"from,omitempty"`
}

type Draw struct {
	Count int `json:"count"`
}

// Discard moves Count cards out of hand. From "all" discards the whole hand.
type Discard struct {
	Count int      `json:"count,omitempty"`
	All   bool     `json:"all,omitempty"`
	Mode  PickMode `json:"mode,omitempty"`
}

type ReturnToDeck struct {
	Count    int          `json:"count"`
	Position DeckPosition `json:"position,omitempty"`
}

type CreateCards struct {
	Card         string   `json:"card"`
	Count        int      `json:"count"`
	Zone         ZoneKind `json:"zone,omitempty"`
	Temporary    bool     `json:"temporary,omitempty"`
	ExhaustOnUse bool     `json:"exhaust_on_use,omitempty"`
	CostOverride *int     `json:"cost_override,omitempty"`
	Target       Target   `json:"target,omitempty"`
}

// Deploy summons a construct for the source. Bind ties it to the
// current target so its destruction effect follows that entity.
type Deploy struct {
	Construct string `json:"construct"`
	Bind      bool   `json:"bind,omitempty"`
}

// Decompose removes the playing card from the owner's collection and
// raises their max HP.
type Decompose struct {
	GrowMaxHP int `json:"grow_max_hp"`
}

type Bonus struct {
	When    Condition `json:"when"`
	Effects Effects   `json:"effects"`
}

type Conditional struct {
	If   Condition `json:"if"`
	Then Effects   `json:"then,omitempty"`
	Else Effects   `json:"else,omitempty"`
}

type ChoiceOption struct {
	Label   string  `json:"label"`
	Effects Effects `json:"effects"`
}

// Choice suspends for a branch pick. Overflow, when it holds, resolves
// every branch instead of asking.
type Choice struct {
	Prompt   string         `json:"prompt,omitempty"`
	Options  []ChoiceOption `json:"options"`
	Overflow *Condition     `json:"overflow,omitempty"`
	Default  int            `json:"default,omitempty"`
}

type Reaction struct {
	On      Trigger `json:"on"`
	Effects Effects `json:"effects"`
}

// Resonance fires Effects only when the source's previous card matched.
type Resonance struct {
	Category Category `json:"category,omitempty"`
	Tag      string   `json:"tag,omitempty"`
	Effects  Effects  `json:"effects"`
}

type TraceAction string

const (
	TracePlay       TraceAction = "play"
	TraceCopyToHand TraceAction = "copy_to_hand"
)

// Trace finds a card in the discard pile and either resolves a disposable
// copy of it or puts a copy in hand.
type Trace struct {
	Category     Category    `json:"category,omitempty"`
	Pick         PickMode    `json:"pick,omitempty"`
	Action       TraceAction `json:"action"`
	CostOverride *int        `json:"cost_override,omitempty"`
}

type PoolSource string

const (
	PoolDeck    PoolSource = "deck"
	PoolCatalog PoolSource = "catalog"
)

type Placement string

const (
	PlaceHand      Placement = "hand"
	PlaceDeck      Placement = "deck"
	PlacePermanent Placement = "permanent"
)

// Discover offers Count candidates from a pool and places the pick.
type Discover struct {
	Source       PoolSource `json:"source"`
	Rarity       Rarity     `json:"rarity,omitempty"`
	Category     Category   `json:"category,omitempty"`
	Tag          string     `json:"tag,omitempty"`
	Count        int        `json:"count"`
	Placement    Placement  `json:"placement"`
	CostOverride *int       `json:"cost_override,omitempty"`
}

func (*Damage) Kind() EffectKind        { return KindDamage }
func (*GainBlock) Kind() EffectKind     { return KindGainBlock }
func (*Heal) Kind() EffectKind          { return KindHeal }
func (*GainResource) Kind() EffectKind  { return KindGainResource }
func (*ConsumeStatus) Kind() EffectKind { return KindConsumeStatus }
func (*ConsumeCharge) Kind() EffectKind { return KindConsumeCharge }
func (*ApplyStatus) Kind() EffectKind   { return KindApplyStatus }
func (*RemoveStatus) Kind() EffectKind  { return KindRemoveStatus }
func (*ScaleStatus) Kind() EffectKind   { return KindScaleStatus }
func (*SpreadStatus) Kind() EffectKind  { return KindSpreadStatus }
func (*Draw) Kind() EffectKind          { return KindDraw }
func (*Discard) Kind() EffectKind       { return KindDiscard }
func (*ReturnToDeck) Kind() EffectKind  { return KindReturnToDeck }
func (*CreateCards) Kind() EffectKind   { return KindCreateCards }
func (*Deploy) Kind() EffectKind        { return KindDeploy }
func (*Decompose) Kind() EffectKind     { return KindDecompose }
func (*Bonus) Kind() EffectKind         { return KindBonus }
func (*Conditional) Kind() EffectKind   { return KindConditional }
func (*Choice) Kind() EffectKind        { return KindChoice }
func (*Reaction) Kind() EffectKind      { return KindReaction }
func (*Resonance) Kind() EffectKind     { return KindResonance }
func (*Trace) Kind() EffectKind         { return KindTrace }
func (*Discover) Kind() EffectKind      { return KindDiscover }

func (*Damage) effect()        {}
func (*GainBlock) effect()     {}
func (*Heal) effect()          {}
func (*GainResource) effect()  {}
func (*ConsumeStatus) effect() {}
func (*ConsumeCharge) effect() {}
func (*ApplyStatus) effect()   {}
func (*RemoveStatus) effect()  {}
func (*ScaleStatus) effect()   {}
func (*SpreadStatus) effect()  {}
func (*Draw) effect()          {}
func (*Discard) effect()       {}
func (*ReturnToDeck) effect()  {}
func (*CreateCards) effect()   {}
func (*Deploy) effect()        {}
func (*Decompose) effect()     {}
func (*Bonus) effect()         {}
func (*Conditional) effect()   {}
func (*Choice) effect()        {}
func (*Reaction) effect()      {}
func (*Resonance) effect()     {}
func (*Trace) effect()         {}
func (*Discover) effect()      {}
