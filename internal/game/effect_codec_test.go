package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedTree = `[
  {"type": "damage", "multiplier": 1.2},
  {"type": "bonus", "when": "target.bleed >= 1", "effects": [
    {"type": "apply_status", "status": "bleed", "stacks": 2}
  ]},
  {"type": "choice", "overflow": "self.charge == max", "options": [
    {"label": "Guard", "effects": [{"type": "gain_block", "multiplier": 0.5}]},
    {"label": "Draw", "effects": [{"type": "draw", "count": 2}]}
  ]},
  {"type": "reaction", "on": "discard", "effects": [{"type": "gain_resource", "resource": "cp", "amount": 1}]}
]`

func TestEffectsDecodeNestedTree(t *testing.T) {
	var es Effects
	require.NoError(t, json.Unmarshal([]byte(nestedTree), &es))
	require.Len(t, es, 4)

	dmg, ok := es[0].(*Damage)
	require.True(t, ok)
	assert.InDelta(t, 1.2, dmg.Multiplier, 1e-9)

	bonus, ok := es[1].(*Bonus)
	require.True(t, ok)
	assert.Equal(t, "target.bleed >= 1", bonus.When.String())
	require.Len(t, bonus.Effects, 1)
	assert.Equal(t, KindApplyStatus, bonus.Effects[0].Kind())

	choice, ok := es[2].(*Choice)
	require.True(t, ok)
	require.NotNil(t, choice.Overflow)
	require.Len(t, choice.Options, 2)
	assert.Equal(t, KindDraw, choice.Options[1].Effects[0].Kind())

	var kinds []EffectKind
	es.Walk(func(e Effect) { kinds = append(kinds, e.Kind()) })
	assert.Len(t, kinds, 8)
}

func TestEffectsEncodeCarriesDiscriminator(t *testing.T) {
	es := Effects{&Draw{Count: 2}, &Decompose{}}
	out, err := json.Marshal(es)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"draw","count":2},{"type":"decompose","grow_max_hp":0}]`, string(out))

	var back Effects
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, es, back)
}

func TestEffectsRejectUnknownType(t *testing.T) {
	var es Effects
	err := json.Unmarshal([]byte(`[{"type":"teleport"}]`), &es)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEffect))
}

func TestRankOrdersByCategory(t *testing.T) {
	assert.Less(t, Rank(&Reaction{}), Rank(&Damage{}))
	assert.Less(t, Rank(&Damage{}), Rank(&ApplyStatus{}))
	assert.Less(t, Rank(&ApplyStatus{}), Rank(&Draw{}))
	assert.Less(t, Rank(&Draw{}), Rank(&GainResource{}))
	assert.Less(t, Rank(&GainResource{}), Rank(&Bonus{}))
	assert.Len(t, EffectKinds(), 23)
}
