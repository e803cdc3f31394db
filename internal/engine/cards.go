package engine

import (
	"fmt"

	"github.com/ericogr/genesis-combat/internal/game"
	"github.com/ericogr/genesis-combat/internal/zone"
)

// --- Card frames --------------------------------------------------------

// playFrame is the root frame of a card instance being resolved.
func (e *Engine) playFrame(src *game.Actor, inst *game.CardInstance, targetID string, auto bool) (game.Frame, error) {
	tmpl, ok := e.lib.Card(inst.TemplateID)
	if !ok {
		return game.Frame{}, fmt.Errorf("%w: card %q", ErrInvariant, inst.TemplateID)
	}
	return game.Frame{
		Effects:    sortedByRank(tmpl.Effects),
		SourceID:   src.ID,
		TargetID:   targetID,
		CardID:     inst.ID,
		TemplateID: tmpl.ID,
		View:       e.capture(),
		Auto:       auto,
		Finalize:   true,
	}, nil
}

// templateFrame plays a template that is not backed by a zone card, such
// as a construct trigger or a hostile special.
func (e *Engine) templateFrame(src *game.Actor, templateID string, target *game.Actor, auto bool) (game.Frame, bool) {
	tmpl, ok := e.lib.Card(templateID)
	if !ok || templateID == "" {
		return game.Frame{}, false
	}
	f := game.Frame{
		Effects:    sortedByRank(tmpl.Effects),
		SourceID:   src.ID,
		TemplateID: tmpl.ID,
		View:       e.capture(),
		Auto:       auto,
		Finalize:   true,
	}
	if target != nil {
		f.TargetID = target.ID
	}
	return f, true
}

// defaultTarget is the first living opponent of a.
func (e *Engine) defaultTarget(a *game.Actor) string {
	for _, f := range e.state.Enemies(a) {
		if f.Kind != game.ActorConstruct {
			return f.ID
		}
	}
	if foes := e.state.Enemies(a); len(foes) > 0 {
		return foes[0].ID
	}
	return ""
}

// finishCard runs once a played card's root frame is exhausted: it moves
// the card out of limbo and updates per-turn and resonance memory.
func (e *Engine) finishCard(f game.Frame) error {
	src := e.state.Actor(f.SourceID)
	tmpl, ok := e.lib.Card(f.TemplateID)
	if src == nil || !ok {
		return fmt.Errorf("%w: cannot finish card %q of %q", ErrInvariant, f.TemplateID, f.SourceID)
	}
	src.Turn.CardsPlayed++
	if tmpl.Category == game.CategoryAttack {
		src.Turn.RecordAttack(tmpl.ID)
	}
	d := tmpl.Descriptor()
	src.LastPlayed = &d

	owner := e.state.ZoneOwner(src)
	inst, kind := e.zones.Find(owner, f.CardID)
	if inst == nil || kind != game.ZoneLimbo {
		return nil
	}
	switch {
	case inst.Disposable:
		e.zones.Take(owner, inst.ID)
		return nil
	case tmpl.ReturnsToHand:
		inst.Reuses++
		e.zones.Move(owner, inst.ID, game.ZoneHand, "")
	case tmpl.Exhaust || inst.ExhaustOnUse:
		e.zones.Exhaust(owner, inst.ID)
	default:
		e.zones.Move(owner, inst.ID, game.ZoneDiscard, "")
	}
	e.advanceEvolve(owner, inst, game.EvolveOnPlayed)
	return nil
}

// abandonCard takes the card of a root frame whose source left the
// combat mid-resolution out of limbo without counting it as played.
func (e *Engine) abandonCard(f game.Frame) {
	if src := e.state.Actor(f.SourceID); src != nil && f.CardID != "" {
		e.leaveLimbo(e.state.ZoneOwner(src), f.CardID)
	}
}

// leaveLimbo discards an unresolved card. Disposable copies just vanish.
func (e *Engine) leaveLimbo(owner *game.Actor, instanceID string) {
	inst, kind := e.zones.Find(owner, instanceID)
	if inst == nil || kind != game.ZoneLimbo {
		return
	}
	if inst.Disposable {
		e.zones.Take(owner, instanceID)
		return
	}
	e.zones.Move(owner, instanceID, game.ZoneDiscard, "")
}

// --- Reactions ----------------------------------------------------------

// fireCard fires the reactions armed on the card being resolved.
func (e *Engine) fireCard(rc *resolveContext, on game.Trigger) {
	if rc.frame.CardID == "" {
		return
	}
	owner := e.state.ZoneOwner(rc.source)
	inst, _ := e.zones.Find(owner, rc.frame.CardID)
	if inst == nil {
		return
	}
	for _, r := range inst.TakeArmed(on) {
		e.queue(game.Frame{
			Effects:    sortedByRank(r.Effects),
			SourceID:   rc.source.ID,
			TargetID:   rc.frame.TargetID,
			CardID:     inst.ID,
			TemplateID: inst.TemplateID,
			View:       e.capture(),
			Auto:       rc.frame.Auto,
		})
	}
}

// fireInstance fires reactions of a card that is not the one resolving,
// such as a card that was just discarded or drawn.
func (e *Engine) fireInstance(owner *game.Actor, inst *game.CardInstance, on game.Trigger, auto bool) {
	for _, r := range inst.TakeArmed(on) {
		e.queue(game.Frame{
			Effects:    sortedByRank(r.Effects),
			SourceID:   owner.ID,
			TargetID:   e.defaultTarget(owner),
			CardID:     inst.ID,
			TemplateID: inst.TemplateID,
			View:       e.capture(),
			Auto:       auto,
		})
	}
}

// --- Evolve -------------------------------------------------------------

// advanceEvolve bumps the persistent counter of a collection-backed card
// and swaps every collection copy of the template once it hits threshold.
// Instances already in this combat keep their template.
func (e *Engine) advanceEvolve(owner *game.Actor, inst *game.CardInstance, on game.EvolveTrigger) {
	if inst.CollectionID == "" {
		return
	}
	tmpl, ok := e.lib.Card(inst.TemplateID)
	if !ok || tmpl.Evolve == nil || tmpl.Evolve.On != on {
		return
	}
	entry := owner.CollectionEntry(inst.CollectionID)
	if entry == nil || entry.TemplateID != tmpl.ID {
		return
	}
	ev := tmpl.Evolve
	if entry.Counters == nil {
		entry.Counters = map[string]int{}
	}
	entry.Counters[ev.Counter]++
	e.state.Deltas = append(e.state.Deltas, game.Delta{Kind: game.DeltaCounter, CollectionID: entry.ID, Counter: ev.Counter, Amount: entry.Counters[ev.Counter]})
	if entry.Counters[ev.Counter] < ev.Threshold {
		return
	}
	for i := range owner.Collection {
		c := &owner.Collection[i]
		if c.TemplateID != tmpl.ID {
			continue
		}
		c.TemplateID = ev.Successor
		delete(c.Counters, ev.Counter)
		e.state.Deltas = append(e.state.Deltas, game.Delta{Kind: game.DeltaEvolve, CollectionID: c.ID, TemplateID: tmpl.ID, Successor: ev.Successor, Counter: ev.Counter})
	}
	e.state.Logf("%s evolves into %s", tmpl.Name, ev.Successor)
}

// --- Zone effects -------------------------------------------------------
func (e *Engine) draw(owner *game.Actor, n int, auto bool) {
	drawn := e.zones.Draw(owner, n)
	if len(drawn) > 0 {
		e.state.Logf("%s draws %d", displayName(owner), len(drawn))
	}
	for _, c := range drawn {
		e.fireInstance(owner, c, game.TriggerDraw, auto)
		e.advanceEvolve(owner, c, game.EvolveOnDrawn)
	}
}

func (e *Engine) execDraw(n *game.Draw, rc *resolveContext) {
	e.draw(e.state.ZoneOwner(rc.source), n.Count, rc.frame.Auto)
}

func (e *Engine) discard(owner *game.Actor, sel zone.Selector, auto bool) {
	moved := e.zones.Discard(owner, sel)
	if len(moved) > 0 {
		e.state.Logf("%s discards %d", displayName(owner), len(moved))
	}
	for _, c := range moved {
		e.fireInstance(owner, c, game.TriggerDiscard, auto)
	}
}

func handOptions(lib *game.Catalog, hand []*game.CardInstance) []game.Option {
	out := make([]game.Option, 0, len(hand))
	for _, c := range hand {
		label := c.TemplateID
		if t, ok := lib.Card(c.TemplateID); ok {
			label = t.Name
		}
		out = append(out, game.Option{ID: c.ID, Label: label})
	}
	return out
}

func lastIDs(hand []*game.CardInstance, n int) []string {
	var ids []string
	for i := len(hand) - n; i < len(hand); i++ {
		ids = append(ids, hand[i].ID)
	}
	return ids
}

func (e *Engine) execDiscard(n *game.Discard, rc *resolveContext) bool {
	owner := e.state.ZoneOwner(rc.source)
	if n.All {
		e.discard(owner, zone.Selector{All: true}, rc.frame.Auto)
		return false
	}
	count := min(n.Count, len(owner.Zones.Hand))
	if count <= 0 {
		return false
	}
	switch n.Mode {
	case game.PickRandom:
		e.discard(owner, zone.Selector{Count: count, Random: true}, rc.frame.Auto)
	case game.PickLast:
		e.discard(owner, zone.Selector{IDs: lastIDs(owner.Zones.Hand, count)}, rc.frame.Auto)
	case game.PickFirst:
		e.discard(owner, zone.Selector{Count: count}, rc.frame.Auto)
	default:
		if rc.frame.Auto || count == len(owner.Zones.Hand) {
			e.discard(owner, zone.Selector{Count: count}, rc.frame.Auto)
			return false
		}
		e.suspend(game.PhaseAwaitingDiscard, n, rc, game.Pending{
			Prompt:  fmt.Sprintf("Discard %d", count),
			Options: handOptions(e.lib, owner.Zones.Hand),
			Count:   count,
		})
		return true
	}
	return false
}

func (e *Engine) returnToDeck(owner *game.Actor, ids []string, pos game.DeckPosition) {
	for _, id := range ids {
		e.zones.Move(owner, id, game.ZoneDeck, pos)
	}
	if len(ids) > 0 {
		e.state.Logf("%s returns %d to the deck", displayName(owner), len(ids))
	}
}

func (e *Engine) execReturnToDeck(n *game.ReturnToDeck, rc *resolveContext) bool {
	owner := e.state.ZoneOwner(rc.source)
	count := min(n.Count, len(owner.Zones.Hand))
	if count <= 0 {
		return false
	}
	if rc.frame.Auto || count == len(owner.Zones.Hand) {
		var ids []string
		for _, c := range owner.Zones.Hand[:count] {
			ids = append(ids, c.ID)
		}
		e.returnToDeck(owner, ids, n.Position)
		return false
	}
	e.suspend(game.PhaseAwaitingReturnToDeck, n, rc, game.Pending{
		Prompt:   fmt.Sprintf("Return %d to your deck", count),
		Options:  handOptions(e.lib, owner.Zones.Hand),
		Count:    count,
		Position: n.Position,
	})
	return true
}

func (e *Engine) execCreateCards(n *game.CreateCards, rc *resolveContext) error {
	recipient := e.resolveOne(rc, n.Target, game.TargetSelf)
	if recipient == nil {
		return nil
	}
	owner := e.state.ZoneOwner(recipient)
	to := n.Zone
	if to == "" {
		to = game.ZoneHand
	}
	pos := game.PositionShuffle
	for i := 0; i < n.Count; i++ {
		if _, err := e.zones.Create(owner, n.Card, to, pos, zone.Spec{Temporary: n.Temporary, ExhaustOnUse: n.ExhaustOnUse, CostOverride: n.CostOverride}); err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}
	}
	if n.Count > 0 {
		e.state.Logf("%s gains %d %s in %s", displayName(owner), n.Count, n.Card, to)
	}
	return nil
}

func (e *Engine) newCollectionID() string {
	return e.state.ID + "-" + e.state.NewInstanceID()
}

func (e *Engine) execDecompose(n *game.Decompose, rc *resolveContext) {
	owner := e.state.ZoneOwner(rc.source)
	if inst, _ := e.zones.Find(owner, rc.frame.CardID); inst != nil {
		inst.ExhaustOnUse = true
		if inst.CollectionID != "" {
			for i, c := range owner.Collection {
				if c.ID == inst.CollectionID {
					owner.Collection = append(owner.Collection[:i], owner.Collection[i+1:]...)
					e.state.Deltas = append(e.state.Deltas, game.Delta{Kind: game.DeltaRemove, CollectionID: c.ID, TemplateID: c.TemplateID})
					break
				}
			}
			inst.CollectionID = ""
		}
	}
	if n.GrowMaxHP > 0 {
		owner.MaxHP += n.GrowMaxHP
		owner.HP += n.GrowMaxHP
		e.state.Deltas = append(e.state.Deltas, game.Delta{Kind: game.DeltaMaxHPGain, Amount: n.GrowMaxHP})
		e.state.Logf("%s grows %d max HP", displayName(owner), n.GrowMaxHP)
	}
}

// --- Trace --------------------------------------------------------------
func (e *Engine) execTrace(n *game.Trace, rc *resolveContext) (bool, error) {
	owner := e.state.ZoneOwner(rc.source)
	var pool []*game.CardInstance
	for _, c := range owner.Zones.Discard {
		if t, ok := e.lib.Card(c.TemplateID); ok && (n.Category == "" || t.Category == n.Category) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		e.state.Logf("%s finds nothing to trace", displayName(rc.source))
		return false, nil
	}
	var picked *game.CardInstance
	switch n.Pick {
	case game.PickLast:
		picked = pool[len(pool)-1]
	case game.PickRandom:
		picked = pool[e.state.RNG.IntN(len(pool))]
	case game.PickFirst:
		picked = pool[0]
	default:
		if !rc.frame.Auto && len(pool) > 1 {
			e.suspend(game.PhaseAwaitingCardChoice, n, rc, game.Pending{
				Prompt:  "Choose a card to trace",
				Options: handOptions(e.lib, pool),
				Count:   1,
				Purpose: game.PurposeTrace,
			})
			return true, nil
		}
		picked = pool[0]
	}
	return false, e.applyTrace(n, rc, picked.TemplateID)
}

func (e *Engine) applyTrace(n *game.Trace, rc *resolveContext, templateID string) error {
	owner := e.state.ZoneOwner(rc.source)
	if n.Action == game.TraceCopyToHand {
		_, err := e.zones.Create(owner, templateID, game.ZoneHand, "", zone.Spec{Temporary: true, CostOverride: n.CostOverride})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		e.state.Logf("%s copies %s into hand", displayName(rc.source), templateID)
		return nil
	}
	copyInst, err := e.zones.Create(owner, templateID, game.ZoneLimbo, "", zone.Spec{Disposable: true, CostOverride: n.CostOverride})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	target := rc.frame.TargetID
	if !rc.target.Alive() {
		target = e.defaultTarget(rc.source)
	}
	f, err := e.playFrame(rc.source, copyInst, target, rc.frame.Auto)
	if err != nil {
		return err
	}
	e.state.Logf("%s replays %s", displayName(rc.source), templateID)
	e.queue(f)
	return nil
}

// --- Discover -----------------------------------------------------------
func (e *Engine) discoverPool(n *game.Discover, owner *game.Actor) []string {
	match := func(t *game.CardTemplate) bool {
		if t.Unobtainable || t.Unplayable {
			return false
		}
		if n.Rarity != "" && t.Rarity != n.Rarity {
			return false
		}
		if n.Category != "" && t.Category != n.Category {
			return false
		}
		return n.Tag == "" || t.HasTag(n.Tag)
	}
	seen := map[string]bool{}
	var pool []string
	if n.Source == game.PoolDeck {
		for _, c := range owner.Zones.Deck {
			if t, ok := e.lib.Card(c.TemplateID); ok && !seen[t.ID] && match(t) {
				seen[t.ID] = true
				pool = append(pool, t.ID)
			}
		}
	} else {
		for _, t := range e.lib.CardList() {
			if match(t) {
				pool = append(pool, t.ID)
			}
		}
	}
	e.state.RNG.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n.Count > 0 && len(pool) > n.Count {
		pool = pool[:n.Count]
	}
	return pool
}

func (e *Engine) execDiscover(n *game.Discover, rc *resolveContext) bool {
	owner := e.state.ZoneOwner(rc.source)
	pool := e.discoverPool(n, owner)
	if len(pool) == 0 {
		e.state.Logf("%s discovers nothing", displayName(rc.source))
		return false
	}
	if rc.frame.Auto || len(pool) == 1 {
		e.placeDiscovered(n, rc, pool[0])
		return false
	}
	opts := make([]game.Option, 0, len(pool))
	for _, id := range pool {
		opts = append(opts, game.Option{ID: id, Label: e.lib.Cards[id].Name})
	}
	e.suspend(game.PhaseAwaitingCardChoice, n, rc, game.Pending{
		Prompt:  "Discover a card",
		Options: opts,
		Count:   1,
		Purpose: game.PurposeDiscover,
	})
	return true
}

func (e *Engine) placeDiscovered(n *game.Discover, rc *resolveContext, templateID string) {
	owner := e.state.ZoneOwner(rc.source)
	spec := zone.Spec{CostOverride: n.CostOverride}
	to, pos := game.ZoneHand, game.DeckPosition("")
	switch n.Placement {
	case game.PlaceDeck:
		to, pos = game.ZoneDeck, game.PositionShuffle
		spec.Temporary = true
	case game.PlacePermanent:
		to, pos = game.ZoneDeck, game.PositionShuffle
		entry := game.CollectionEntry{ID: e.newCollectionID(), TemplateID: templateID, CostOverride: n.CostOverride}
		owner.Collection = append(owner.Collection, entry)
		spec.CollectionID = entry.ID
		e.state.Deltas = append(e.state.Deltas, game.Delta{Kind: game.DeltaGrant, CollectionID: entry.ID, TemplateID: templateID, CostOverride: n.CostOverride})
	default:
		spec.Temporary = true
	}
	if _, err := e.zones.Create(owner, templateID, to, pos, spec); err == nil {
		e.state.Logf("%s discovers %s", displayName(rc.source), templateID)
	}
}
