package game

// Category is the broad class of a card. Resonance and bleed both key off it.
type Category string

const (
	CategoryAttack Category = "attack"
	CategorySkill  Category = "skill"
	CategoryPower  Category = "power"
)

type Rarity string

const (
	RarityStarter  Rarity = "starter"
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RaritySpecial  Rarity = "special"
)

// EvolveTrigger names the event that advances an evolve counter.
type EvolveTrigger string

const (
	EvolveOnDrawn  EvolveTrigger = "drawn"
	EvolveOnPlayed EvolveTrigger = "played"
)

// EvolveSpec swaps a card's template identity in the owner's collection
// once Counter reaches Threshold.
type EvolveSpec struct {
	Counter   string        `json:"counter"`
	On        EvolveTrigger `json:"on"`
	Threshold int           `json:"threshold"`
	Successor string        `json:"successor"`
}

// CardTemplate is the immutable definition of a card.
type CardTemplate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Text     string   `json:"text,omitempty"`
	Cost     int      `json:"cost"`
	Rarity   Rarity   `json:"rarity"`
	Category Category `json:"category"`
	Effects  Effects  `json:"effects,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	// Unobtainable cards exist in content pools (curses, generated cards)
	// but are never offered to the player by discover.
	Unobtainable bool `json:"unobtainable,omitempty"`
	// Unplayable cards can sit in hand but never resolve.
	Unplayable        bool        `json:"unplayable,omitempty"`
	PlayCondition     *Condition  `json:"play_condition,omitempty"`
	ReturnsToHand     bool        `json:"returns_to_hand,omitempty"`
	ReuseCostIncrease int         `json:"reuse_cost_increase,omitempty"`
	Exhaust           bool        `json:"exhaust,omitempty"`
	Evolve            *EvolveSpec `json:"evolve,omitempty"`
}

func (t *CardTemplate) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// Descriptor returns what resonance remembers about a played card.
func (t *CardTemplate) Descriptor() CardDescriptor {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	return CardDescriptor{TemplateID: t.ID, Category: t.Category, Tags: tags}
}

// CardDescriptor is the "last card played" memory kept per actor.
type CardDescriptor struct {
	TemplateID string   `json:"template_id"`
	Category   Category `json:"category"`
	Tags       []string `json:"tags,omitempty"`
}

// Matches reports whether the descriptor satisfies a resonance requirement.
// Empty requirement fields match anything.
func (d *CardDescriptor) Matches(category Category, tag string) bool {
	if d == nil {
		return false
	}
	if category != "" && d.Category != category {
		return false
	}
	if tag == "" {
		return true
	}
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ArmedReaction is a deferred effect list waiting on a later event.
type ArmedReaction struct {
	On      Trigger `json:"on"`
	Effects Effects `json:"effects"`
}

// CardInstance binds a template to a unique id while it lives in a zone.
type CardInstance struct {
	ID           string `json:"id"`
	TemplateID   string `json:"template_id"`
	CollectionID string `json:"collection_id,omitempty"`
	Temporary    bool   `json:"temporary,omitempty"`
	ExhaustOnUse bool   `json:"exhaust_on_use,omitempty"`
	// Disposable copies resolve from limbo and vanish instead of moving on.
	Disposable   bool            `json:"disposable,omitempty"`
	CostOverride *int            `json:"cost_override,omitempty"`
	Reuses       int             `json:"reuses,omitempty"`
	Armed        []ArmedReaction `json:"armed,omitempty"`
}

// TakeArmed removes and returns the reactions bound to trigger.
func (c *CardInstance) TakeArmed(on Trigger) []ArmedReaction {
	var hit, keep []ArmedReaction
	for _, r := range c.Armed {
		if r.On == on {
			hit = append(hit, r)
		} else {
			keep = append(keep, r)
		}
	}
	c.Armed = keep
	return hit
}

// CollectionEntry is one card in a player's persistent, cross-combat collection.
type CollectionEntry struct {
	ID           string         `json:"id"`
	TemplateID   string         `json:"template_id"`
	CostOverride *int           `json:"cost_override,omitempty"`
	Counters     map[string]int `json:"counters,omitempty"`
}

// IntPtr is a small helper for optional cost overrides.
func IntPtr(v int) *int { return &v }
