package game

import "sort"

// Catalog is the immutable content library a combat is resolved against.
type Catalog struct {
	Cards      map[string]*CardTemplate      `json:"cards"`
	Statuses   map[string]*StatusDef         `json:"statuses"`
	Enemies    map[string]*EnemyTemplate     `json:"enemies"`
	Constructs map[string]*ConstructTemplate `json:"constructs"`

	cardOrder []string
}

// NewCatalog indexes the given content. Built-in statuses are added
// unless a status with the same id is supplied.
func NewCatalog(cards []*CardTemplate, statuses []*StatusDef, enemies []*EnemyTemplate, constructs []*ConstructTemplate) *Catalog {
	c := &Catalog{
		Cards:      make(map[string]*CardTemplate, len(cards)),
		Statuses:   make(map[string]*StatusDef),
		Enemies:    make(map[string]*EnemyTemplate, len(enemies)),
		Constructs: make(map[string]*ConstructTemplate, len(constructs)),
	}
	for _, s := range BuiltinStatuses() {
		c.Statuses[s.ID] = s
	}
	for _, s := range statuses {
		c.Statuses[s.ID] = s
	}
	for _, t := range cards {
		c.Cards[t.ID] = t
		c.cardOrder = append(c.cardOrder, t.ID)
	}
	sort.Strings(c.cardOrder)
	for _, e := range enemies {
		c.Enemies[e.ID] = e
	}
	for _, k := range constructs {
		c.Constructs[k.ID] = k
	}
	return c
}

func (c *Catalog) Card(id string) (*CardTemplate, bool) {
	t, ok := c.Cards[id]
	return t, ok
}

func (c *Catalog) Status(id string) (*StatusDef, bool) {
	d, ok := c.Statuses[id]
	return d, ok
}

func (c *Catalog) Enemy(id string) (*EnemyTemplate, bool) {
	e, ok := c.Enemies[id]
	return e, ok
}

func (c *Catalog) Construct(id string) (*ConstructTemplate, bool) {
	k, ok := c.Constructs[id]
	return k, ok
}

// CardList returns all card templates sorted by id.
func (c *Catalog) CardList() []*CardTemplate {
	out := make([]*CardTemplate, 0, len(c.cardOrder))
	for _, id := range c.cardOrder {
		out = append(out, c.Cards[id])
	}
	return out
}
