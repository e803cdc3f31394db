package engine

import "github.com/ericogr/genesis-combat/internal/game"

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi >= lo && v > hi {
		return hi
	}
	return v
}

// displayName returns the actor's name, or its id when unnamed.
func displayName(a *game.Actor) string {
	if a == nil {
		return "nobody"
	}
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// statusTag maps damage-over-time statuses onto their animation cue.
func statusTag(kind string) game.AnimTag {
	switch kind {
	case game.StatusBurn:
		return game.AnimBurn
	case game.StatusBleed:
		return game.AnimBleed
	case game.StatusPoison:
		return game.AnimPoison
	}
	return game.AnimStatus
}

// sortedByRank returns a copy of es ordered by evaluation rank. Authored
// order is kept within a rank.
func sortedByRank(es game.Effects) game.Effects {
	out := make(game.Effects, len(es))
	copy(out, es)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && game.Rank(out[j]) < game.Rank(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// needsTarget reports whether any effect of the tree lands on the chosen target.
func needsTarget(es game.Effects) bool {
	found := false
	es.Walk(func(e game.Effect) {
		var t game.Target
		switch n := e.(type) {
		case *game.Damage:
			t = orDefault(n.Target, game.TargetTarget)
		case *game.ApplyStatus:
			t = orDefault(n.Target, game.TargetTarget)
		case *game.ScaleStatus:
			t = orDefault(n.Target, game.TargetTarget)
		case *game.ConsumeStatus:
			t = orDefault(n.From, game.TargetTarget)
		case *game.SpreadStatus:
			t = orDefault(n.From, game.TargetTarget)
		case *game.Deploy:
			if n.Bind {
				t = game.TargetTarget
			}
		}
		if t == game.TargetTarget {
			found = true
		}
	})
	return found
}

func orDefault(t, def game.Target) game.Target {
	if t == game.TargetDefault {
		return def
	}
	return t
}
