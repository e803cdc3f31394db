package game

type ZoneKind string

const (
	ZoneDeck    ZoneKind = "deck"
	ZoneHand    ZoneKind = "hand"
	ZoneDiscard ZoneKind = "discard"
	ZoneExhaust ZoneKind = "exhaust"
	// ZoneLimbo holds a card while it resolves.
	ZoneLimbo ZoneKind = "limbo"
)

// AllZones lists zones in a stable order.
var AllZones = []ZoneKind{ZoneDeck, ZoneHand, ZoneDiscard, ZoneExhaust, ZoneLimbo}

// Zones are an actor's card piles. Index 0 of Deck is the top.
type Zones struct {
	Deck    []*CardInstance `json:"deck"`
	Hand    []*CardInstance `json:"hand"`
	Discard []*CardInstance `json:"discard"`
	Exhaust []*CardInstance `json:"exhaust"`
	Limbo   []*CardInstance `json:"limbo,omitempty"`
}

// Pile returns a pointer to the slice backing kind.
func (z *Zones) Pile(kind ZoneKind) *[]*CardInstance {
	switch kind {
	case ZoneDeck:
		return &z.Deck
	case ZoneHand:
		return &z.Hand
	case ZoneDiscard:
		return &z.Discard
	case ZoneExhaust:
		return &z.Exhaust
	case ZoneLimbo:
		return &z.Limbo
	}
	return nil
}

// Locate reports which zone holds the instance and its index.
func (z *Zones) Locate(instanceID string) (ZoneKind, int, bool) {
	for _, k := range AllZones {
		for i, c := range *z.Pile(k) {
			if c.ID == instanceID {
				return k, i, true
			}
		}
	}
	return "", -1, false
}

func (z *Zones) Count() int {
	return len(z.Deck) + len(z.Hand) + len(z.Discard) + len(z.Exhaust) + len(z.Limbo)
}
