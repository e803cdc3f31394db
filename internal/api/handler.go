package api

import (
	"github.com/ericogr/genesis-combat/internal/service"
)

// CombatHandler groups all combat-related HTTP handlers.
type CombatHandler struct {
	svc *service.Service
}

func NewCombatHandler(svc *service.Service) *CombatHandler {
	return &CombatHandler{svc: svc}
}
