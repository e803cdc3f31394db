package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/logging"
	"github.com/ericogr/genesis-combat/internal/service"
)

// combatID validates the route parameter; ids are 26-char ULIDs.
func combatID(c *gin.Context) (string, bool) {
	id := strings.ToUpper(strings.TrimSpace(c.Param("combatID")))
	if len(id) != 26 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCombatID})
		return "", false
	}
	return id, true
}

// writeServiceError maps service sentinels onto HTTP statuses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCombatNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCombatNotFound})
	case errors.Is(err, service.ErrNotCombatOwner):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourCombat})
	case errors.Is(err, service.ErrCommandRejected), errors.Is(err, service.ErrUnknownResume):
		c.JSON(http.StatusUnprocessableEntity, gin.H{constants.JSONKeyError: constants.ErrCommandRejected, constants.JSONKeyDetails: err.Error()})
	case errors.Is(err, service.ErrCombatFaulted):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCombatFaulted})
	case errors.Is(err, service.ErrPlayerRequired):
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrPlayerUUIDRequired})
	default:
		logging.Error(fallback, err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// StartCombat creates a combat for the calling player.
func (h *CombatHandler) StartCombat(c *gin.Context) {
	var req service.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	req.PlayerUUID = playerUUID(c)
	state, err := h.svc.StartCombat(req)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStartCombat)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetCombat returns the current snapshot of a combat.
func (h *CombatHandler) GetCombat(c *gin.Context) {
	id, ok := combatID(c)
	if !ok {
		return
	}
	state, err := h.svc.GetCombat(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedLoadCombat)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, state)
}

// PlayCard plays one card from the caller's hand.
func (h *CombatHandler) PlayCard(c *gin.Context) {
	id, ok := combatID(c)
	if !ok {
		return
	}
	var req service.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.respond(c, func() (*game.CombatState, error) { return h.svc.PlayCard(playerUUID(c), id, req) })
}

func (h *CombatHandler) EndTurn(c *gin.Context) {
	id, ok := combatID(c)
	if !ok {
		return
	}
	h.respond(c, func() (*game.CombatState, error) { return h.svc.EndTurn(playerUUID(c), id) })
}

// Resume answers the pending choice of a suspended combat.
func (h *CombatHandler) Resume(c *gin.Context) {
	id, ok := combatID(c)
	if !ok {
		return
	}
	var req service.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.respond(c, func() (*game.CombatState, error) { return h.svc.Resume(playerUUID(c), id, req) })
}

func (h *CombatHandler) respond(c *gin.Context, run func() (*game.CombatState, error)) {
	state, err := run()
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedSaveCombat)
		return
	}
	c.JSON(http.StatusOK, state)
}
