package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/ericogr/genesis-combat/internal/config"
	"github.com/ericogr/genesis-combat/internal/game"
)

const effectDef = "Effect"

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}
	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

var (
	effectsType   = reflect.TypeOf(game.Effects{})
	conditionType = reflect.TypeOf(game.Condition{})
)

// mapType replaces the types that carry their own JSON codec.
func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case effectsType:
		return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/" + effectDef}}
	case conditionType:
		return &jsonschema.Schema{Type: "string", Description: "Condition expression, e.g. target.bleed >= 1 and not turn.first_attack"}
	}
	return nil
}

func buildSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true, Mapper: mapType}
	schema := reflector.Reflect(new(config.File))
	schema.Title = "Genesis Combat Card Catalog"
	schema.Description = "Cards, statuses, enemies and constructs loaded through GENESIS_CATALOG"
	if schema.Definitions == nil {
		schema.Definitions = jsonschema.Definitions{}
	}
	schema.Definitions[effectDef] = effectSchema()
	return schema
}

// effectSchema is a oneOf over every registered effect node, each pinned
// by its "type" discriminator.
func effectSchema() *jsonschema.Schema {
	inline := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true, DoNotReference: true, Mapper: mapType}
	out := &jsonschema.Schema{}
	for _, kind := range game.EffectKinds() {
		node, _ := game.NewEffect(kind)
		s := inline.ReflectFromType(reflect.TypeOf(node).Elem())
		s.Version = ""
		s.ID = ""
		s.Title = string(kind)
		s.Properties.Set("type", &jsonschema.Schema{Type: "string", Const: string(kind)})
		s.Required = append([]string{"type"}, s.Required...)
		out.OneOf = append(out.OneOf, s)
	}
	return out
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
