package tasklist

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// reflectParams produces the JSON Schema parameter object for argument
// struct T as a plain map: inlined (no $ref), closed (additionalProperties
// false), with required listing every field not marked omitempty. Struct
// tags carry descriptions and static enums, so the schema shown to the
// model and the schema arguments are validated against share one source.
func reflectParams[T any]() (map[string]any, error) {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	data, err := json.Marshal(r.Reflect(new(T)))
	if err != nil {
		return nil, err
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil, err
	}
	enrichItemsFromStructTags(schemaMap, reflect.TypeOf(*new(T)))
	stripSchemaMeta(schemaMap)
	if schemaMap["required"] == nil {
		schemaMap["required"] = []any{}
	}
	return schemaMap, nil
}

// enrichItemsFromStructTags copies the itemdesc struct tag of array fields
// into the item schema's description. The generator reflects array element
// types but has no tag channel for per-item descriptions, so the tag fills
// that gap the same way descriptions and enums ride the jsonschema tag.
func enrichItemsFromStructTags(schemaMap map[string]any, typ reflect.Type) {
	if schemaMap == nil || typ == nil {
		return
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}
	props, ok := schemaMap["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		desc := field.Tag.Get("itemdesc")
		if desc == "" {
			continue
		}
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		prop, ok := props[jsonTag].(map[string]any)
		if !ok {
			continue
		}
		if items, ok := prop["items"].(map[string]any); ok {
			items["description"] = desc
		}
	}
}

// walkSchema recursively visits every map node in the schema tree.
func walkSchema(schemaMap map[string]any, visit func(map[string]any)) {
	if schemaMap == nil {
		return
	}
	visit(schemaMap)
	for _, val := range schemaMap {
		switch v := val.(type) {
		case map[string]any:
			walkSchema(v, visit)
		case []any:
			for _, item := range v {
				if m2, ok := item.(map[string]any); ok {
					walkSchema(m2, visit)
				}
			}
		}
	}
}

// stripSchemaMeta removes $schema and $id from every node so the parameter
// object carries only what the providers expect.
func stripSchemaMeta(schemaMap map[string]any) {
	walkSchema(schemaMap, func(n map[string]any) {
		delete(n, "$schema")
		delete(n, "$id")
	})
}

// cloneSchemaMap deep-copies a schema map so per-call mutation (status enum
// injection) never leaks into the cached original.
func cloneSchemaMap(schemaMap map[string]any) (map[string]any, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// requiredFromSchema reads the required list out of a reflected schema map.
func requiredFromSchema(schemaMap map[string]any) []string {
	raw, _ := schemaMap["required"].([]any)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// setEnum sets the enum of the named parameter in place.
func setEnum(props map[string]any, name string, values []string) {
	if prop, ok := props[name].(map[string]any); ok {
		prop["enum"] = toAnySlice(values)
	}
}

// setItemsEnum sets the enum of the named array parameter's item schema.
func setItemsEnum(props map[string]any, name string, values []string) {
	prop, ok := props[name].(map[string]any)
	if !ok {
		return
	}
	if items, ok := prop["items"].(map[string]any); ok {
		items["enum"] = toAnySlice(values)
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Descriptor is one tool in provider-neutral form: a name, a description, a
// parameter map in JSON Schema shape, and the required parameter names.
// Descriptors are rebuilt on every DescribeTools call so status enums track
// the store's current configuration.
type Descriptor struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// render produces the provider envelope for c.
func (d Descriptor) render(c Convention) (map[string]any, error) {
	// required must stay a JSON array even when empty; json.Marshal
	// renders a nil slice as null.
	params := map[string]any{
		"type":       "object",
		"properties": d.Properties,
		"required":   toAnySlice(d.Required),
	}
	switch c {
	case ConventionOpenAI:
		return map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        d.Name,
				"description": d.Description,
				"parameters":  params,
			},
		}, nil
	case ConventionClaude:
		return map[string]any{
			"name":         d.Name,
			"description":  d.Description,
			"input_schema": params,
		}, nil
	default:
		return nil, &ValidationError{
			Reason: fmt.Sprintf("unknown schema convention %q", c),
			Err:    ErrUnknownConvention,
		}
	}
}
