package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ericogr/genesis-combat/internal/constants"
	"github.com/ericogr/genesis-combat/internal/service"
)

// NewRouter registers every route of the combat service on a gin engine.
func NewRouter(svc *service.Service) *gin.Engine {
	handler := NewCombatHandler(svc)
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteHealth, Health)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteCombatByID, handler.GetCombat)
		apiRoutes.GET(constants.RouteCombatEvents, handler.Events)
		apiRoutes.GET(constants.RoutePlayerCollection, handler.GetCollection)
		apiRoutes.GET(constants.RoutePlayerProfile, handler.GetProfile)

		// Commands carry the caller identity
		protected := apiRoutes.Group("")
		protected.Use(PlayerRequired())
		protected.POST(constants.RouteCombats, handler.StartCombat)
		protected.POST(constants.RouteCombatPlay, handler.PlayCard)
		protected.POST(constants.RouteCombatEndTurn, handler.EndTurn)
		protected.POST(constants.RouteCombatResume, handler.Resume)
	}
	return router
}
