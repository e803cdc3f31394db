package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/genesis-combat/internal/game"
)

// File is the on-disk catalog document. YAML files are decoded into the
// same shape as JSON ones.
type File struct {
	Cards      []*game.CardTemplate      `json:"cards"`
	Statuses   []*game.StatusDef         `json:"statuses,omitempty"`
	Enemies    []*game.EnemyTemplate     `json:"enemies"`
	Constructs []*game.ConstructTemplate `json:"constructs,omitempty"`
}

// LoadConfig reads the catalog file at path, validates cross references
// and returns the indexed catalog.
func LoadConfig(path string) (*game.Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yamlToJSON(b)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
		}
	}
	lib, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return lib, nil
}

// Parse decodes and validates a JSON catalog document.
func Parse(b []byte) (*game.Catalog, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(f.Cards) == 0 {
		return nil, fmt.Errorf("cards is empty (provide a 'cards' array)")
	}
	if len(f.Enemies) == 0 {
		return nil, fmt.Errorf("enemies is empty (provide an 'enemies' array)")
	}
	if err := checkUnique(&f); err != nil {
		return nil, err
	}
	lib := game.NewCatalog(f.Cards, f.Statuses, f.Enemies, f.Constructs)
	if err := Validate(lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// yamlToJSON re-encodes a YAML document as JSON so a single decoder, with
// the effect codec, serves both formats.
func yamlToJSON(b []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	norm, err := normalizeYAML(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(norm)
}

func normalizeYAML(v any) (any, error) {
	switch vv := v.(type) {
	case map[string]any:
		for k, val := range vv {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			vv[k] = n
		}
		return vv, nil
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, val := range vv {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[ks] = n
		}
		return out, nil
	case []any:
		for i := range vv {
			n, err := normalizeYAML(vv[i])
			if err != nil {
				return nil, err
			}
			vv[i] = n
		}
		return vv, nil
	default:
		return v, nil
	}
}
