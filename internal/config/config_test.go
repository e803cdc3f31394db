package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/genesis-combat/internal/game"
)

func TestLoadConfigJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadConfig("testdata/catalog.json")
	require.NoError(t, err)
	fromYAML, err := LoadConfig("testdata/catalog.yaml")
	require.NoError(t, err)

	a, err := json.Marshal(fromJSON)
	require.NoError(t, err)
	b, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	fork, ok := fromYAML.Card("fork")
	require.True(t, ok)
	choice, ok := fork.Effects[0].(*game.Choice)
	require.True(t, ok)
	require.NotNil(t, choice.Overflow)
	assert.Equal(t, "self.cp == max", choice.Overflow.String())

	_, ok = fromYAML.Status(game.StatusBurn)
	assert.True(t, ok, "built-in statuses are merged in")
	_, ok = fromYAML.Status("frail")
	assert.True(t, ok)
}

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigRejectsBrokenCatalogs(t *testing.T) {
	enemy := `"enemies":[{"id":"imp","name":"Imp","max_hp":10,"attack":1,"deck":["claw"]}]`
	claw := `{"id":"claw","name":"Claw","category":"attack","effects":[{"type":"damage","multiplier":1}]}`
	cases := []struct {
		name string
		body string
	}{
		{"no cards", `{"cards":[],` + enemy + `}`},
		{"unknown field", `{"cards":[` + claw + `],` + enemy + `,"extra":1}`},
		{"duplicate id", `{"cards":[` + claw + `,{"id":"CLAW","name":"Again","category":"attack"}],` + enemy + `}`},
		{"dangling create", `{"cards":[` + claw + `,{"id":"forge","name":"Forge","category":"skill","effects":[{"type":"create_cards","card":"ghost","count":1}]}],` + enemy + `}`},
		{"dangling status", `{"cards":[` + claw + `,{"id":"hex","name":"Hex","category":"skill","effects":[{"type":"apply_status","status":"doom","stacks":1}]}],` + enemy + `}`},
		{"dangling successor", `{"cards":[{"id":"claw","name":"Claw","category":"attack","evolve":{"counter":"n","on":"played","threshold":2,"successor":"talon"}}],` + enemy + `}`},
		{"dangling deck", `{"cards":[` + claw + `],"enemies":[{"id":"imp","name":"Imp","max_hp":10,"deck":["bite"]}]}`},
		{"bad condition", `{"cards":[{"id":"claw","name":"Claw","category":"attack","play_condition":"self.hp >>"}],` + enemy + `}`},
		{"unknown effect", `{"cards":[{"id":"claw","name":"Claw","category":"attack","effects":[{"type":"teleport"}]}],` + enemy + `}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeCatalog(t, "catalog.json", tc.body))
			require.Error(t, err)
		})
	}
}

func TestValidateReportsCatalogSentinel(t *testing.T) {
	lib := game.NewCatalog(nil, nil, nil, []*game.ConstructTemplate{{ID: "wisp", HPScale: 0.1, Durability: 0}})
	err := Validate(lib)
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "durability")
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("GENESIS_ADDR", ":9999")
	t.Setenv("GENESIS_DEFAULT_SEED", "42")
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, ":9999", s.Addr)
	assert.Equal(t, uint64(42), s.DefaultSeed)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 3, s.MaxConcurrent)

	t.Setenv("GENESIS_MAX_CONCURRENT", "many")
	_, err = LoadSettings()
	require.Error(t, err)
}
