// Package dedupe provides shared singleflight groups used to collapse
// concurrent reads of the same stored record into one database hit.
package dedupe

import "golang.org/x/sync/singleflight"

// CombatGroup deduplicates combat snapshot loads keyed by keys.CombatKey.
var CombatGroup singleflight.Group

// CollectionGroup deduplicates collection reads keyed by keys.CollectionKey.
var CollectionGroup singleflight.Group
