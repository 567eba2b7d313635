package tasklist

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// extractor turns an argument map into a typed struct: marshal, validate
// against the compiled parameter schema, decode. One extractor exists per
// operation, built at Gateway construction so schema defects surface there
// and not on the first call.
type extractor[T any] struct {
	schemaMap map[string]any
	compiled  *jsonschema.Schema
}

// newExtractor reflects T's parameter schema and compiles it under the
// operation name.
func newExtractor[T any](name string) (*extractor[T], error) {
	schemaMap, err := reflectParams[T]()
	if err != nil {
		return nil, err
	}
	compiled, err := compileSchemaMap(name+".json", schemaMap)
	if err != nil {
		return nil, err
	}
	return &extractor[T]{schemaMap: schemaMap, compiled: compiled}, nil
}

// params returns a deep copy of the parameter schema for descriptor
// building; callers may mutate it freely.
func (e *extractor[T]) params() (map[string]any, error) {
	return cloneSchemaMap(e.schemaMap)
}

// extract validates args against the schema and decodes them into T. A nil
// map counts as empty. Failures come back as ArgumentError: a payload that
// does not match the advertised contract is an integration bug, not
// something the model can talk its way out of.
func (e *extractor[T]) extract(tool string, args map[string]any) (T, error) {
	var zero T
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return zero, &ArgumentError{Tool: tool, Err: err}
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return zero, &ArgumentError{Tool: tool, Err: err}
	}
	if err := e.compiled.Validate(instance); err != nil {
		return zero, &ArgumentError{Tool: tool, Err: err}
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, &ArgumentError{Tool: tool, Err: err}
	}
	return out, nil
}

// compileSchemaMap compiles a schema map under a synthetic resource URL.
// The map is not mutated.
func compileSchemaMap(url string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}
