package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/stream"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is the envelope of every websocket frame: one snapshot
// on connect, then one event per committed command.
type streamMessage struct {
	Type  string            `json:"type"`
	State *game.CombatState `json:"state,omitempty"`
	Event *stream.Event     `json:"event,omitempty"`
}

// Events streams a combat's updates over a websocket.
func (h *CombatHandler) Events(c *gin.Context) {
	id, ok := combatID(c)
	if !ok {
		return
	}
	// Subscribe before reading the snapshot so no event falls in between.
	sub := h.svc.Hub().Subscribe(id)
	defer sub.Close()
	state, err := h.svc.GetCombat(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedLoadCombat)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error(constants.ErrStreamUpgradeFailed, err, logging.Fields{constants.LogFieldCombatID: id})
		return
	}
	defer conn.Close()
	fields := logging.Fields{constants.LogFieldCombatID: id}
	logging.Debug("event stream opened", fields)

	// The client never sends; reading only surfaces close frames and pongs.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msg streamMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg) == nil
	}
	if !write(streamMessage{Type: "snapshot", State: state}) {
		return
	}
	lastSeq := state.Seq

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			logging.Debug("event stream closed by client", fields)
			return
		case ev, open := <-sub.C:
			if !open {
				return
			}
			if ev.Seq <= lastSeq {
				continue
			}
			lastSeq = ev.Seq
			if !write(streamMessage{Type: "event", Event: &ev}) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
