package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/keys"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

// checkUnique rejects ids that collide once canonicalised, within each
// kind of entry.
func checkUnique(f *File) error {
	seen := func(kind string) func(id string) error {
		set := map[string]string{}
		return func(id string) error {
			k := keys.CatalogID(id)
			if k == "" {
				return invalid("%s entry missing 'id'", kind)
			}
			if prev, ok := set[k]; ok {
				return invalid("duplicate %s id '%s' (collides with '%s')", kind, id, prev)
			}
			set[k] = id
			return nil
		}
	}
	card, status, enemy, construct := seen("card"), seen("status"), seen("enemy"), seen("construct")
	for _, c := range f.Cards {
		if err := card(c.ID); err != nil {
			return err
		}
	}
	for _, s := range f.Statuses {
		if err := status(s.ID); err != nil {
			return err
		}
	}
	for _, e := range f.Enemies {
		if err := enemy(e.ID); err != nil {
			return err
		}
	}
	for _, k := range f.Constructs {
		if err := construct(k.ID); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every cross reference of an indexed catalog: card,
// status and construct ids used anywhere must exist, and numeric
// thresholds must be usable.
func Validate(lib *game.Catalog) error {
	for _, s := range sortedKeys(lib.Statuses) {
		if lib.Statuses[s].Cap < 0 {
			return invalid("status '%s': cap must not be negative", s)
		}
	}
	for _, c := range lib.CardList() {
		if err := validateCard(lib, c); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(lib.Enemies) {
		if err := validateEnemy(lib, lib.Enemies[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(lib.Constructs) {
		if err := validateConstruct(lib, lib.Constructs[id]); err != nil {
			return err
		}
	}
	return nil
}

func validateCard(lib *game.Catalog, c *game.CardTemplate) error {
	if c.Cost < 0 {
		return invalid("card '%s': cost must not be negative", c.ID)
	}
	if c.ReturnsToHand && c.Exhaust {
		return invalid("card '%s': cannot both return to hand and exhaust", c.ID)
	}
	if ev := c.Evolve; ev != nil {
		if ev.Threshold <= 0 || ev.Counter == "" {
			return invalid("card '%s': evolve needs a counter and a positive threshold", c.ID)
		}
		if ev.On != game.EvolveOnDrawn && ev.On != game.EvolveOnPlayed {
			return invalid("card '%s': evolve trigger '%s' unknown", c.ID, ev.On)
		}
		if _, ok := lib.Card(ev.Successor); !ok {
			return invalid("card '%s': evolve successor '%s' not found", c.ID, ev.Successor)
		}
	}
	var err error
	c.Effects.Walk(func(e game.Effect) {
		if err == nil {
			err = validateEffect(lib, e)
		}
	})
	if err != nil {
		return invalid("card '%s': %v", c.ID, err)
	}
	return nil
}

func validateEffect(lib *game.Catalog, e game.Effect) error {
	status := func(id string) error {
		if _, ok := lib.Status(id); !ok {
			return fmt.Errorf("%s references unknown status '%s'", e.Kind(), id)
		}
		return nil
	}
	switch n := e.(type) {
	case *game.ApplyStatus:
		return status(n.Status)
	case *game.RemoveStatus:
		return status(n.Status)
	case *game.ScaleStatus:
		return status(n.Status)
	case *game.SpreadStatus:
		return status(n.Status)
	case *game.ConsumeStatus:
		return status(n.Status)
	case *game.CreateCards:
		if _, ok := lib.Card(n.Card); !ok {
			return fmt.Errorf("create_cards references unknown card '%s'", n.Card)
		}
		if n.Count <= 0 {
			return fmt.Errorf("create_cards count must be positive")
		}
	case *game.Deploy:
		if _, ok := lib.Construct(n.Construct); !ok {
			return fmt.Errorf("deploy references unknown construct '%s'", n.Construct)
		}
	case *game.Choice:
		if len(n.Options) == 0 {
			return fmt.Errorf("choice has no options")
		}
		if n.Default < 0 || n.Default >= len(n.Options) {
			return fmt.Errorf("choice default %d out of range", n.Default)
		}
	case *game.Trace:
		if n.Action != game.TracePlay && n.Action != game.TraceCopyToHand {
			return fmt.Errorf("trace action '%s' unknown", n.Action)
		}
	case *game.Discover:
		if n.Source != game.PoolDeck && n.Source != game.PoolCatalog {
			return fmt.Errorf("discover source '%s' unknown", n.Source)
		}
		switch n.Placement {
		case game.PlaceHand, game.PlaceDeck, game.PlacePermanent:
		default:
			return fmt.Errorf("discover placement '%s' unknown", n.Placement)
		}
	}
	return nil
}

func validateEnemy(lib *game.Catalog, e *game.EnemyTemplate) error {
	if e.MaxHP <= 0 {
		return invalid("enemy '%s': max_hp must be positive", e.ID)
	}
	if len(e.Deck) == 0 {
		return invalid("enemy '%s': deck is empty", e.ID)
	}
	refs := append([]string(nil), e.Deck...)
	refs = append(refs, e.Reward.Cards...)
	if e.TideCard != "" {
		if e.TideThreshold <= 0 {
			return invalid("enemy '%s': tide_card needs a positive tide_threshold", e.ID)
		}
		refs = append(refs, e.TideCard)
	}
	if sp := e.Special; sp != nil {
		if sp.Threshold <= 0 || sp.Threshold >= 1 {
			return invalid("enemy '%s': special threshold must be between 0 and 1", e.ID)
		}
		refs = append(refs, sp.Card)
	}
	for _, id := range refs {
		if _, ok := lib.Card(id); !ok {
			return invalid("enemy '%s': card '%s' not found", e.ID, id)
		}
	}
	for _, id := range e.Constructs {
		if _, ok := lib.Construct(id); !ok {
			return invalid("enemy '%s': construct '%s' not found", e.ID, id)
		}
	}
	return nil
}

func validateConstruct(lib *game.Catalog, k *game.ConstructTemplate) error {
	if k.Durability <= 0 {
		return invalid("construct '%s': durability must be positive", k.ID)
	}
	if k.HPScale <= 0 {
		return invalid("construct '%s': hp_scale must be positive", k.ID)
	}
	for _, id := range []string{k.OnTurnEnd, k.OnDestroy} {
		if id == "" {
			continue
		}
		if _, ok := lib.Card(id); !ok {
			return invalid("construct '%s': card '%s' not found", k.ID, id)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
