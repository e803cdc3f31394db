package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
)

func forkCard() *game.CardTemplate {
	return &game.CardTemplate{ID: "fork", Name: "Fork", Category: game.CategorySkill, Effects: game.Effects{
		&game.Choice{Prompt: "Pick one", Options: []game.ChoiceOption{
			{Label: "hit", Effects: game.Effects{&game.Damage{Multiplier: 1, Target: game.TargetRandomEnemy}}},
			{Label: "guard", Effects: game.Effects{&game.GainBlock{Multiplier: 0.5}}},
		}},
		&game.Draw{Count: 1},
	}}
}

func TestEffectChoiceSuspendsAndResumes(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{forkCard()}})
	fork := h.give("fork", game.ZoneHand)
	h.give("jab", game.ZoneDeck)

	h.play(fork, "")
	require.Equal(t, game.PhaseAwaitingEffectChoice, h.s.Phase)
	require.NotNil(t, h.s.Pending)
	assert.Len(t, h.s.Pending.Options, 2)
	assert.Len(t, h.s.Player.Zones.Limbo, 1)
	assert.Len(t, h.s.Player.Zones.Hand, 1, "draw ranks ahead of the choice")

	require.ErrorIs(t, h.c.PlayCard(h.s, fork.ID, ""), ErrInvalidCommand)
	require.ErrorIs(t, h.c.ResumeDiscard(h.s, nil), ErrInvalidCommand)
	require.ErrorIs(t, h.c.ResumeEffectChoice(h.s, 2), ErrInvalidCommand)
	require.Equal(t, game.PhaseAwaitingEffectChoice, h.s.Phase)

	require.NoError(t, h.c.ResumeEffectChoice(h.s, 1))
	assert.Equal(t, game.PhasePlayerTurn, h.s.Phase)
	assert.Nil(t, h.s.Pending)
	assert.Equal(t, 10, h.s.Player.Block)
	assert.Len(t, h.s.Player.Zones.Hand, 1)
	assert.Empty(t, h.s.Player.Zones.Limbo)
	assert.Equal(t, fork.ID, h.s.Player.Zones.Discard[0].ID)
}

func TestSuspendedCombatSurvivesSerialization(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{forkCard()}})
	h.play(h.give("fork", game.ZoneHand), "")
	require.Equal(t, game.PhaseAwaitingEffectChoice, h.s.Phase)

	raw, err := json.Marshal(h.s)
	require.NoError(t, err)
	var restored game.CombatState
	require.NoError(t, json.Unmarshal(raw, &restored))

	require.NoError(t, h.c.ResumeEffectChoice(&restored, 0))
	assert.Equal(t, game.PhasePlayerTurn, restored.Phase)
	assert.Equal(t, 40, restored.Hostiles[0].HP)
	assert.Equal(t, 50, h.hostile(0).HP)
}

func TestChoiceOverflowResolvesEveryBranch(t *testing.T) {
	fork := forkCard()
	fork.Effects[0].(*game.Choice).Overflow = condition("self.cp >= 3")
	h := newHarness(t, content{cards: []*game.CardTemplate{fork}})

	h.play(h.give("fork", game.ZoneHand), "")
	assert.Equal(t, game.PhasePlayerTurn, h.s.Phase)
	assert.Equal(t, 10, h.s.Player.Block)
	assert.Equal(t, 40, h.hostile(0).HP)
}

func TestDiscardChoiceValidatesSelection(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "sift", Name: "Sift", Category: game.CategorySkill,
		Effects: game.Effects{&game.Discard{Count: 1}}}}})
	sift := h.give("sift", game.ZoneHand)
	a := h.give("jab", game.ZoneHand)
	b := h.give("jab", game.ZoneHand)

	h.play(sift, "")
	require.Equal(t, game.PhaseAwaitingDiscard, h.s.Phase)
	assert.Equal(t, 1, h.s.Pending.Count)

	require.ErrorIs(t, h.c.ResumeDiscard(h.s, []string{a.ID, b.ID}), ErrInvalidCommand)
	require.ErrorIs(t, h.c.ResumeDiscard(h.s, []string{sift.ID}), ErrInvalidCommand)
	require.ErrorIs(t, h.c.ResumeReturnToDeck(h.s, []string{a.ID}), ErrInvalidCommand)

	require.NoError(t, h.c.ResumeDiscard(h.s, []string{b.ID}))
	p := h.s.Player
	require.Len(t, p.Zones.Hand, 1)
	assert.Equal(t, a.ID, p.Zones.Hand[0].ID)
	assert.Len(t, p.Zones.Discard, 2)
	assert.Equal(t, 1, p.Turn.Discards)
}

func TestReturnToDeckPlacesOnTop(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "stash", Name: "Stash", Category: game.CategorySkill,
		Effects: game.Effects{&game.ReturnToDeck{Count: 1, Position: game.PositionTop}}}}})
	stash := h.give("stash", game.ZoneHand)
	h.give("jab", game.ZoneHand)
	keep := h.give("jab", game.ZoneHand)
	h.give("jab", game.ZoneDeck)

	h.play(stash, "")
	require.Equal(t, game.PhaseAwaitingReturnToDeck, h.s.Phase)
	require.NoError(t, h.c.ResumeReturnToDeck(h.s, []string{keep.ID}))

	deck := h.s.Player.Zones.Deck
	require.Len(t, deck, 2)
	assert.Equal(t, keep.ID, deck[0].ID)
}

func TestTraceCopiesLastDiscard(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{{ID: "recall", Name: "Recall", Category: game.CategorySkill,
		Effects: game.Effects{&game.Trace{Pick: game.PickLast, Action: game.TraceCopyToHand, CostOverride: game.IntPtr(0)}}}}})
	h.give("jab", game.ZoneDiscard)

	h.play(h.give("recall", game.ZoneHand), "")
	hand := h.s.Player.Zones.Hand
	require.Len(t, hand, 1)
	assert.Equal(t, "jab", hand[0].TemplateID)
	assert.True(t, hand[0].Temporary)
	require.NotNil(t, hand[0].CostOverride)
	assert.Equal(t, 0, *hand[0].CostOverride)
}

func TestDiscoverPermanentGrantsCollectionEntry(t *testing.T) {
	h := newHarness(t, content{cards: []*game.CardTemplate{
		{ID: "seek", Name: "Seek", Category: game.CategorySkill, Unobtainable: true, Effects: game.Effects{
			&game.Discover{Source: game.PoolCatalog, Category: game.CategoryAttack, Count: 3, Placement: game.PlacePermanent},
		}},
		{ID: "heavy", Name: "Heavy", Cost: 2, Category: game.CategoryAttack, Effects: game.Effects{&game.Damage{Multiplier: 2}}},
	}})

	h.play(h.give("seek", game.ZoneHand), "")
	require.Equal(t, game.PhaseAwaitingCardChoice, h.s.Phase)
	p := h.s.Pending
	assert.Equal(t, game.PurposeDiscover, p.Purpose)
	require.Len(t, p.Options, 2)

	pick := p.Options[1].ID
	require.ErrorIs(t, h.c.ResumeCardChoice(h.s, "seek"), ErrInvalidCommand)
	require.NoError(t, h.c.ResumeCardChoice(h.s, pick))

	player := h.s.Player
	require.Len(t, player.Collection, 1)
	assert.Equal(t, pick, player.Collection[0].TemplateID)
	require.Len(t, player.Zones.Deck, 1)
	assert.Equal(t, player.Collection[0].ID, player.Zones.Deck[0].CollectionID)
	require.Len(t, h.s.Deltas, 1)
	assert.Equal(t, game.DeltaGrant, h.s.Deltas[0].Kind)
}

func TestCPGainStopsAtMaxSoOverflowHolds(t *testing.T) {
	fork := forkCard()
	fork.Effects[0].(*game.Choice).Overflow = condition("self.cp == max")
	h := newHarness(t, content{cards: []*game.CardTemplate{fork, {ID: "surge", Name: "Surge", Category: game.CategorySkill,
		Effects: game.Effects{&game.GainResource{Resource: game.ResourceCP, Amount: 2}}}}})
	p := h.s.Player

	h.play(h.give("surge", game.ZoneHand), "")
	assert.Equal(t, p.MaxCP, p.CP)

	h.play(h.give("fork", game.ZoneHand), "")
	assert.Equal(t, game.PhasePlayerTurn, h.s.Phase)
	assert.Nil(t, h.s.Pending)
	assert.Equal(t, 10, p.Block)
	assert.Equal(t, 40, h.hostile(0).HP)
}
