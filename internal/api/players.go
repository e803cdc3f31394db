package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/service"
)

// ListCards returns every card template of the loaded catalog.
func (h *CombatHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog().CardList())
}

// ListLeaderboard returns the top players by victories (desc), limited to top 10 by default.
func (h *CombatHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 0
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	players, err := h.svc.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(players)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetProfile returns aggregated stats for a given player UUID.
func (h *CombatHandler) GetProfile(c *gin.Context) {
	p, err := h.svc.GetProfile(c.Param("playerUUID"))
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrProfileNotFound})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CombatHandler) GetCollection(c *gin.Context) {
	entries, err := h.svc.GetCollection(c.Request.Context(), c.Param("playerUUID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCollection})
		return
	}
	c.JSON(http.StatusOK, entries)
}
