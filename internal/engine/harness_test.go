package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/zone"
)

type content struct {
	cards      []*game.CardTemplate
	enemies    []*game.EnemyTemplate
	constructs []*game.ConstructTemplate
}

type harness struct {
	t *testing.T
	c *Controller
	s *game.CombatState
	z *zone.Manager
}

func jab() *game.CardTemplate {
	return &game.CardTemplate{ID: "jab", Name: "Jab", Cost: 1, Category: game.CategoryAttack,
		Effects: game.Effects{&game.Damage{Multiplier: 1}}}
}

func dummy() *game.EnemyTemplate {
	return &game.EnemyTemplate{ID: "dummy", Name: "Dummy", MaxHP: 50, Attack: 5, Deck: []string{"jab"},
		Reward: game.Reward{Gold: 10}}
}

// newHarness builds a turn-one combat with an empty player deck so each
// test controls exactly which cards are in play.
func newHarness(t *testing.T, in content, foes ...string) *harness {
	t.Helper()
	if len(foes) == 0 {
		foes = []string{"dummy"}
	}
	lib := game.NewCatalog(append([]*game.CardTemplate{jab()}, in.cards...), nil,
		append([]*game.EnemyTemplate{dummy()}, in.enemies...), in.constructs)
	s := &game.CombatState{ID: "test", Phase: game.PhasePlayerTurn, Turn: 1, RNG: game.NewRNG(7)}
	s.Player = &game.Actor{
		ID: "player", Name: "Player", Kind: game.ActorPlayer, Side: game.SidePlayer,
		HP: 50, MaxHP: 50, Attack: 10, Defense: 20, CP: 3, MaxCP: 3, DrawPerTurn: 5,
	}
	e := newEngine(lib, s)
	for i, id := range foes {
		h, err := e.newHostile(id, i)
		require.NoError(t, err)
		s.Hostiles = append(s.Hostiles, h)
	}
	return &harness{t: t, c: NewController(lib), s: s, z: zone.New(s, lib)}
}

func (h *harness) give(templateID string, to game.ZoneKind) *game.CardInstance {
	h.t.Helper()
	inst, err := h.z.Create(h.s.Player, templateID, to, game.PositionBottom, zone.Spec{})
	require.NoError(h.t, err)
	return inst
}

func (h *harness) play(inst *game.CardInstance, target string) {
	h.t.Helper()
	require.NoError(h.t, h.c.PlayCard(h.s, inst.ID, target))
}

func (h *harness) hostile(i int) *game.Actor { return h.s.Hostiles[i] }

func (h *harness) engine() *Engine { return newEngine(h.c.lib, h.s) }

func condition(src string) *game.Condition {
	c := game.MustCondition(src)
	return &c
}
