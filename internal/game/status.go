package game

// Built-in status ids.
const (
	StatusBurn           = "burn"
	StatusPoison         = "poison"
	StatusBleed          = "bleed"
	StatusChaining       = "chaining"
	StatusVulnerable     = "vulnerable"
	StatusWeakened       = "weakened"
	StatusEmpowered      = "empowered"
	StatusShielded       = "shielded"
	StatusChargeNextTurn = "charge_next_turn"
)

// TickRule selects the turn-start damage-over-time behaviour of a status.
type TickRule string

const (
	TickNone   TickRule = ""
	TickBurn   TickRule = "burn"
	TickPoison TickRule = "poison"
	TickBleed  TickRule = "bleed"
)

// StatusDef describes how a status kind stacks, ticks and expires.
type StatusDef struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Stacking bool   `json:"stacking,omitempty"`
	// Cap bounds the value; zero means unbounded.
	Cap  int      `json:"cap,omitempty"`
	Tick TickRule `json:"tick,omitempty"`
	// OneShot statuses are removed the first time they are used.
	OneShot bool `json:"one_shot,omitempty"`
	// PersistBlock keeps the bearer's block across its turn start.
	PersistBlock bool `json:"persist_block,omitempty"`
	// ExpireGrant converts the remaining value into this resource on expiry.
	ExpireGrant Resource `json:"expire_grant,omitempty"`
}

// IsDOT reports whether the status is driven by a tick rule rather than
// by its duration.
func (d *StatusDef) IsDOT() bool { return d.Tick != TickNone }

// BuiltinStatuses returns fresh copies of the statuses the engine relies on.
func BuiltinStatuses() []*StatusDef {
	return []*StatusDef{
		{ID: StatusBurn, Name: "Burn", Stacking: true, Tick: TickBurn},
		{ID: StatusPoison, Name: "Poison", Stacking: true, Tick: TickPoison},
		{ID: StatusBleed, Name: "Bleed", Stacking: true, Tick: TickBleed},
		{ID: StatusChaining, Name: "Chaining", Stacking: true},
		{ID: StatusVulnerable, Name: "Vulnerable"},
		{ID: StatusWeakened, Name: "Weakened"},
		{ID: StatusEmpowered, Name: "Empowered", OneShot: true},
		{ID: StatusShielded, Name: "Shielded", PersistBlock: true},
		{ID: StatusChargeNextTurn, Name: "Charge next turn", ExpireGrant: ResourceCharge},
	}
}
