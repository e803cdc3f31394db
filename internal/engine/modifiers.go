package engine

import (
	"math"

	"github.com/ericogr/genesis-combat/internal/game"
)

// --- Modifier helpers --------------------------------------------------
func scale(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }

func attackWithModifiers(a *game.Actor) int {
	atk := round(float64(a.Attack) * scale(a.Modifiers.Attack))
	if atk < 0 {
		atk = 0
	}
	return atk
}

// defenseWithModifiers is the defense used when a gains block. Weakened
// halves it.
func defenseWithModifiers(a *game.Actor) int {
	d := round(float64(a.Defense) * scale(a.Modifiers.Defense))
	if a.Status(game.StatusWeakened) != nil {
		d /= 2
	}
	if d < 0 {
		d = 0
	}
	return d
}

// cardCost is what playing inst costs a right now.
func cardCost(a *game.Actor, tmpl *game.CardTemplate, inst *game.CardInstance) int {
	c := tmpl.Cost
	if inst.CostOverride != nil {
		c = *inst.CostOverride
	}
	c += inst.Reuses*tmpl.ReuseCostIncrease + a.Modifiers.CostDelta
	if c < 0 {
		c = 0
	}
	return c
}
