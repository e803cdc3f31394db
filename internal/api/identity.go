package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/constants"
)

const ctxPlayerUUID = "playerUUID"

// PlayerRequired reads the caller identity from the X-Player-UUID header,
// falling back to the ?player query parameter for websocket clients that
// cannot set headers, and injects it into the context.
func PlayerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerUUID))
		if id == "" {
			id = strings.TrimSpace(c.Query("player"))
		}
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrPlayerUUIDRequired})
			return
		}
		c.Set(ctxPlayerUUID, strings.ToLower(id))
		c.Next()
	}
}

func playerUUID(c *gin.Context) string {
	v, _ := c.Get(ctxPlayerUUID)
	s, _ := v.(string)
	return s
}
