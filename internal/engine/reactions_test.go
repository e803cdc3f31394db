package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
)

func TestPredicatesSeeStateBeforeTheCardApplies(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "lacerate", Name: "Lacerate", Category: game.CategoryAttack,
		Effects: game.Effects{
			&game.Bonus{When: *condition("target.bleed >= 1"), Effects: game.Effects{&game.Damage{Fixed: 5}}},
			&game.Conditional{If: *condition("target.bleed >= 1"), Then: game.Effects{&game.GainBlock{Fixed: 3}}},
			&game.ApplyStatus{Status: game.StatusBleed, Stacks: 2},
			&game.Damage{Multiplier: 1},
		}}}})
	foe := h.hostile(0)

	h.play(h.give("lacerate", game.ZoneHand), foe.ID)
	assert.Equal(t, 40, foe.HP)
	assert.Equal(t, 2, foe.StatusValue(game.StatusBleed))
	assert.Equal(t, 0, h.s.Player.Block)

	h.play(h.give("lacerate", game.ZoneHand), foe.ID)
	assert.Equal(t, 25, foe.HP)
	assert.Equal(t, 4, foe.StatusValue(game.StatusBleed))
	assert.Equal(t, 3, h.s.Player.Block)
}

func leech() *game.CardTemplate {
	return &game.CardTemplate{ID: "leech", Name: "Leech", Cost: 1, Category: game.CategoryAttack, Effects: game.Effects{
		&game.Damage{Multiplier: 1},
		&game.Reaction{On: game.TriggerHPDamageDealt, Effects: game.Effects{&game.GainBlock{Fixed: 7}}},
	}}
}

func TestHPDamageReactionFires(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{leech()}})

	h.play(h.give("leech", game.ZoneHand), "")
	assert.Equal(t, 40, h.hostile(0).HP)
	assert.Equal(t, 7, h.s.Player.Block)
}

func TestBlockedReactionFiresWithoutHPDamage(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "feint", Name: "Feint", Cost: 1, Category: game.CategoryAttack,
		Effects: game.Effects{
			&game.Damage{Multiplier: 1},
			&game.Reaction{On: game.TriggerBlockedByEnemy, Effects: game.Effects{&game.Draw{Count: 1}}},
			&game.Reaction{On: game.TriggerHPDamageDealt, Effects: game.Effects{&game.GainBlock{Fixed: 7}}},
		}}}})
	foe := h.hostile(0)
	foe.Block = 20
	h.give("jab", game.ZoneDeck)

	h.play(h.give("feint", game.ZoneHand), "")
	assert.Equal(t, 50, foe.HP)
	assert.Equal(t, 10, foe.Block)
	require.Len(t, h.s.Player.Zones.Hand, 1)
	assert.Equal(t, "jab", h.s.Player.Zones.Hand[0].TemplateID)
	assert.Equal(t, 0, h.s.Player.Block)
}

func TestFinisherFiresOnKill(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "reap", Name: "Reap", Cost: 1, Category: game.CategoryAttack,
		Effects: game.Effects{
			&game.Damage{Fixed: 50},
			&game.Reaction{On: game.TriggerFinisher, Effects: game.Effects{&game.GainBlock{Fixed: 4}}},
		}}}}, "dummy", "dummy")

	h.play(h.give("reap", game.ZoneHand), "h1")
	assert.True(t, h.hostile(0).Removed)
	assert.Equal(t, 4, h.s.Player.Block)
	assert.Equal(t, game.PhasePlayerTurn, h.s.Phase)

	survivor := h.hostile(1)
	survivor.Block = 10
	h.play(h.give("reap", game.ZoneHand), survivor.ID)
	assert.Equal(t, 10, survivor.HP)
	assert.Equal(t, 4, h.s.Player.Block)
}

func TestDrawReactionFires(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{
		{ID: "study", Name: "Study", Category: game.CategorySkill, Effects: game.Effects{&game.Draw{Count: 1}}},
		{ID: "spark", Name: "Spark", Category: game.CategorySkill, Unplayable: true, Effects: game.Effects{
			&game.Reaction{On: game.TriggerDraw, Effects: game.Effects{&game.Damage{Fixed: 3}}},
		}},
	}})
	h.give("spark", game.ZoneDeck)

	h.play(h.give("study", game.ZoneHand), "")
	assert.Equal(t, 47, h.hostile(0).HP)
	require.Len(t, h.s.Player.Zones.Hand, 1)
	assert.Equal(t, "spark", h.s.Player.Zones.Hand[0].TemplateID)
}

func TestTurnEndReactionFiresFromHand(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "ember", Name: "Ember", Category: game.CategorySkill,
		Unplayable: true, Effects: game.Effects{
			&game.Reaction{On: game.TriggerTurnEnd, Effects: game.Effects{&game.Damage{Fixed: 6}}},
		}}}})
	h.give("ember", game.ZoneHand)

	require.NoError(t, h.c.EndTurn(h.s))
	assert.Equal(t, 44, h.hostile(0).HP)
	assert.Equal(t, 45, h.s.Player.HP)
}

func TestTracePlayIsAFullPlay(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{
		leech(),
		{ID: "echo", Name: "Echo", Category: game.CategorySkill, Effects: game.Effects{
			&game.Trace{Pick: game.PickLast, Action: game.TracePlay},
		}},
	}})
	h.give("leech", game.ZoneDiscard)

	h.play(h.give("echo", game.ZoneHand), "")
	p := h.s.Player
	assert.Equal(t, 40, h.hostile(0).HP)
	assert.Equal(t, 7, p.Block)
	assert.Empty(t, p.Zones.Limbo)
	assert.Len(t, p.Zones.Discard, 2)
	assert.Equal(t, 2, p.Turn.CardsPlayed)
}
