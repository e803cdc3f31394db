// Package status implements status stacking, consumption and the
// turn-start tick of damage-over-time effects.
package status

import (
	"errors"
	"fmt"
	"math"

	"github.com/ericogr/genesis-combat/internal/game"
)

var (
	ErrUnknownStatus  = errors.New("unknown status")
	ErrNegativeStatus = errors.New("negative status value")
	ErrStatusOverCap  = errors.New("status value over cap")
)

// Hit is turn-start damage from a damage-over-time status.
type Hit struct {
	Kind   string
	Damage int
}

// Expiry is a duration status that ran out this tick.
type Expiry struct {
	Kind  string
	Value int
	Grant game.Resource
}

type TickResult struct {
	Hits    []Hit
	Expired []Expiry
}

type Engine struct {
	lib *game.Catalog
}

func New(lib *game.Catalog) *Engine {
	return &Engine{lib: lib}
}

func (e *Engine) def(kind string) (*game.StatusDef, error) {
	d, ok := e.lib.Status(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, kind)
	}
	return d, nil
}

// Apply adds value to a stacking status or overwrites the magnitude of a
// scalar one. Duration always becomes the greater of current and incoming.
// applierAttack is recorded for burn-style ticks.
func (e *Engine) Apply(a *game.Actor, kind string, value, duration, applierAttack int) (int, error) {
	d, err := e.def(kind)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		value = 0
	}
	if !d.Stacking && value == 0 && duration > 0 {
		value = 1
	}
	if value == 0 {
		return a.StatusValue(kind), nil
	}
	cur := a.Status(kind)
	if cur == nil {
		a.Statuses = append(a.Statuses, game.StatusInstance{Kind: kind})
		cur = &a.Statuses[len(a.Statuses)-1]
	}
	if d.Stacking {
		cur.Value += value
	} else {
		cur.Value = value
	}
	if d.Cap > 0 && cur.Value > d.Cap {
		cur.Value = d.Cap
	}
	if duration > cur.Duration {
		cur.Duration = duration
	}
	if d.Tick == game.TickBurn && applierAttack > 0 {
		cur.ApplierAttack = applierAttack
	}
	return cur.Value, nil
}

func remove(a *game.Actor, kind string) {
	for i := range a.Statuses {
		if a.Statuses[i].Kind == kind {
			a.Statuses = append(a.Statuses[:i], a.Statuses[i+1:]...)
			return
		}
	}
}

// Remove takes amount off kind, or floor(value*ratio) when ratio is set,
// or everything when both are zero. It returns how much was removed.
func (e *Engine) Remove(a *game.Actor, kind string, amount int, ratio float64) int {
	cur := a.Status(kind)
	if cur == nil {
		return 0
	}
	take := cur.Value
	switch {
	case ratio > 0:
		take = int(math.Floor(float64(cur.Value) * ratio))
	case amount > 0:
		take = min(amount, cur.Value)
	}
	cur.Value -= take
	if cur.Value <= 0 {
		remove(a, kind)
	}
	return take
}

// Scale multiplies the value of kind, flooring and honouring the cap.
func (e *Engine) Scale(a *game.Actor, kind string, mult float64) int {
	cur := a.Status(kind)
	if cur == nil {
		return 0
	}
	v := int(math.Floor(float64(cur.Value) * mult))
	if d, err := e.def(kind); err == nil && d.Cap > 0 && v > d.Cap {
		v = d.Cap
	}
	if v <= 0 {
		remove(a, kind)
		return 0
	}
	cur.Value = v
	return v
}

// Consume removes up to limit stacks (all when limit is zero) and
// returns how many were taken.
func (e *Engine) Consume(a *game.Actor, kind string, limit int) int {
	cur := a.Status(kind)
	if cur == nil {
		return 0
	}
	take := cur.Value
	if limit > 0 && limit < take {
		take = limit
	}
	cur.Value -= take
	if cur.Value <= 0 {
		remove(a, kind)
	}
	return take
}

// ConsumeOneShot removes a one-shot status and returns its magnitude,
// or zero when the bearer does not have it.
func (e *Engine) ConsumeOneShot(a *game.Actor, kind string) int {
	v := a.StatusValue(kind)
	if v > 0 {
		remove(a, kind)
	}
	return v
}

// PersistsBlock reports whether any status keeps a's block across turns.
func (e *Engine) PersistsBlock(a *game.Actor) bool {
	for _, s := range a.Statuses {
		if d, ok := e.lib.Status(s.Kind); ok && d.PersistBlock {
			return true
		}
	}
	return false
}

// TickTurnStart runs the turn-start pass for a: damage-over-time first,
// then duration decay. Damage is reported, not applied.
func (e *Engine) TickTurnStart(a *game.Actor) TickResult {
	var res TickResult
	kept := make([]game.StatusInstance, 0, len(a.Statuses))
	for _, s := range a.Statuses {
		d, ok := e.lib.Status(s.Kind)
		if !ok {
			kept = append(kept, s)
			continue
		}
		switch d.Tick {
		case game.TickBurn:
			res.Hits = append(res.Hits, Hit{Kind: s.Kind, Damage: BurnDamage(s.Value, s.ApplierAttack)})
			s.Value /= 2
		case game.TickPoison:
			res.Hits = append(res.Hits, Hit{Kind: s.Kind, Damage: PoisonDamage(a.MaxHP)})
			s.Value--
		case game.TickBleed:
			s.Value--
		default:
			if s.Duration > 0 {
				s.Duration--
				if s.Duration == 0 {
					res.Expired = append(res.Expired, Expiry{Kind: s.Kind, Value: s.Value, Grant: d.ExpireGrant})
					continue
				}
			}
		}
		if s.Value > 0 {
			kept = append(kept, s)
		}
	}
	a.Statuses = kept
	return res
}

// BurnDamage is max(1, ceil(stacks*applierAttack*0.15)).
func BurnDamage(stacks, applierAttack int) int {
	return max(1, (stacks*applierAttack*15+99)/100)
}

// PoisonDamage is ceil(maxHP*0.10).
func PoisonDamage(maxHP int) int {
	return (maxHP + 9) / 10
}

// BleedDamage is the hit a bearer takes when playing an attack card:
// round(maxHP*0.01*stacks), at least 1 while any stacks remain.
func BleedDamage(maxHP, stacks int) int {
	if stacks <= 0 {
		return 0
	}
	return max(1, (maxHP*stacks+50)/100)
}

// Verify checks the value invariants of every status on a.
func (e *Engine) Verify(a *game.Actor) error {
	for _, s := range a.Statuses {
		if s.Value < 0 {
			return fmt.Errorf("%w: %s on %s = %d", ErrNegativeStatus, s.Kind, a.ID, s.Value)
		}
		if d, ok := e.lib.Status(s.Kind); ok && d.Cap > 0 && s.Value > d.Cap {
			return fmt.Errorf("%w: %s on %s = %d", ErrStatusOverCap, s.Kind, a.ID, s.Value)
		}
	}
	return nil
}
