package keys

import (
	"strings"
)

// CatalogID produces the canonical form of a catalog id: trimmed,
// lower-cased, spaces replaced with underscores. Two ids that differ only
// in case or spacing collide under it.
func CatalogID(id string) string {
	s := strings.TrimSpace(id)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// CombatKey is the key under which reads of one combat are deduplicated.
func CombatKey(combatID string) string {
	return "combat:" + strings.TrimSpace(combatID)
}

// CollectionKey is the deduplication key for a player's collection read.
func CollectionKey(playerUUID string) string {
	return "collection:" + strings.ToLower(strings.TrimSpace(playerUUID))
}
