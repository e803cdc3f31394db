// Package stream fans combat updates out to live subscribers, one topic
// per combat id.
package stream

import (
	"sync"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
)

const defaultBuffer = 16

// Event is one committed command's observable output.
type Event struct {
	CombatID string           `json:"combat_id"`
	Seq      int              `json:"seq"`
	Phase    game.Phase       `json:"phase"`
	Log      []game.LogEntry  `json:"log,omitempty"`
	Anims    []game.AnimEvent `json:"events,omitempty"`
	Pending  *game.Pending    `json:"pending,omitempty"`
	Outcome  *game.Outcome    `json:"outcome,omitempty"`
}

// Subscription receives events for a single combat until Close.
type Subscription struct {
	C        <-chan Event
	ch       chan Event
	combatID string
	hub      *Hub
	once     sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub is safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	buffer int
	topics map[string]map[*Subscription]struct{}
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{buffer: buffer, topics: make(map[string]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(combatID string) *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{C: ch, ch: ch, combatID: combatID, hub: h}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[combatID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[combatID] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.topics[sub.combatID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.combatID)
	}
	close(sub.ch)
}

// Publish never blocks: a subscriber whose buffer is full misses the event
// and can catch up by reading the combat snapshot.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.topics[ev.CombatID] {
		select {
		case sub.ch <- ev:
		default:
			logging.Warn("stream subscriber lagging; event dropped", logging.Fields{constants.LogFieldCombatID: ev.CombatID, constants.LogFieldSeq: ev.Seq})
		}
	}
}

// Subscribers reports how many live subscriptions a combat has.
func (h *Hub) Subscribers(combatID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[combatID])
}
