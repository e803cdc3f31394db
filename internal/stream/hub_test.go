package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
)

func TestPublishReachesOnlyTopicSubscribers(t *testing.T) {
	h := NewHub(4)
	a := h.Subscribe("c1")
	b := h.Subscribe("c1")
	other := h.Subscribe("c2")
	defer a.Close()
	defer b.Close()
	defer other.Close()

	h.Publish(Event{CombatID: "c1", Seq: 3, Phase: game.PhaseEnemyTurn})

	for _, sub := range []*Subscription{a, b} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, 3, ev.Seq)
			assert.Equal(t, game.PhaseEnemyTurn, ev.Phase)
		default:
			t.Fatal("expected an event")
		}
	}
	assert.Len(t, other.C, 0)
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub(1)
	sub := h.Subscribe("c1")
	defer sub.Close()

	h.Publish(Event{CombatID: "c1", Seq: 1})
	h.Publish(Event{CombatID: "c1", Seq: 2})

	ev := <-sub.C
	assert.Equal(t, 1, ev.Seq)
	assert.Len(t, sub.C, 0)
}

func TestCloseRemovesSubscription(t *testing.T) {
	h := NewHub(0)
	sub := h.Subscribe("c1")
	require.Equal(t, 1, h.Subscribers("c1"))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, h.Subscribers("c1"))
	_, open := <-sub.C
	assert.False(t, open)
	h.Publish(Event{CombatID: "c1"})
}
