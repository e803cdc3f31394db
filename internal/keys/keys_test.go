package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogID(t *testing.T) {
	assert.Equal(t, "iron_wall", CatalogID("  Iron Wall "))
	assert.Equal(t, CatalogID("jab"), CatalogID("JAB"))
	assert.Equal(t, "", CatalogID("   "))
}

func TestKeysAreNamespaced(t *testing.T) {
	assert.Equal(t, "combat:01HX", CombatKey(" 01HX"))
	assert.Equal(t, "collection:abc", CollectionKey("ABC"))
}
