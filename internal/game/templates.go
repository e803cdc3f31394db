package game

// Reward is what defeating a hostile yields.
type Reward struct {
	Gold  int      `json:"gold,omitempty"`
	Cards []string `json:"cards,omitempty"`
}

func (r Reward) Add(o Reward) Reward {
	cards := make([]string, 0, len(r.Cards)+len(o.Cards))
	cards = append(cards, r.Cards...)
	cards = append(cards, o.Cards...)
	if len(cards) == 0 {
		cards = nil
	}
	return Reward{Gold: r.Gold + o.Gold, Cards: cards}
}

type SpecialSpec struct {
	Threshold float64 `json:"threshold"`
	Card      string  `json:"card"`
}

// EnemyTemplate defines a hostile actor and its deck.
type EnemyTemplate struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MaxHP          int          `json:"max_hp"`
	Attack         int          `json:"attack"`
	Defense        int          `json:"defense"`
	Deck           []string     `json:"deck"`
	ActionsPerTurn int          `json:"actions_per_turn,omitempty"`
	TideThreshold  int          `json:"tide_threshold,omitempty"`
	TideCard       string       `json:"tide_card,omitempty"`
	Special        *SpecialSpec `json:"special,omitempty"`
	// Constructs are deployed for the enemy during combat setup.
	Constructs []string `json:"constructs,omitempty"`
	Reward     Reward   `json:"reward"`
}

// ConstructTarget resolves who a construct's triggered card hits.
type ConstructTarget string

const (
	ConstructTargetRandomEnemy ConstructTarget = "random_enemy"
	ConstructTargetAllEnemies  ConstructTarget = "all_enemies"
	ConstructTargetOwner       ConstructTarget = "owner"
	ConstructTargetBound       ConstructTarget = "bound"
)

// ConstructTemplate defines a deployable auxiliary entity. Stats are the
// owner's stats times the scale factors, taken once at deployment.
type ConstructTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	HPScale       float64         `json:"hp_scale"`
	AttackScale   float64         `json:"attack_scale"`
	DefenseScale  float64         `json:"defense_scale"`
	Durability    int             `json:"durability"`
	OnTurnEnd     string          `json:"on_turn_end,omitempty"`
	TurnEndTarget ConstructTarget `json:"turn_end_target,omitempty"`
	OnDestroy     string          `json:"on_destroy,omitempty"`
	DestroyTarget ConstructTarget `json:"destroy_target,omitempty"`
}
