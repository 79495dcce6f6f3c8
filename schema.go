package openai

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Response format types accepted by the chat completions endpoint.
const (
	ResponseFormatTypeText       = "text"
	ResponseFormatTypeJSONObject = "json_object"
	ResponseFormatTypeJSONSchema = "json_schema"
)

// ResponseFormat constrains the shape of the model output.
type ResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat names and carries the schema for structured outputs.
type JSONSchemaFormat struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
	// Strict makes the model follow the schema exactly. Only a subset
	// of JSON Schema is supported when strict.
	Strict *bool `json:"strict,omitempty"`
}

// TextResponseFormat requests plain text output.
func TextResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: ResponseFormatTypeText}
}

// JSONObjectResponseFormat enables JSON mode. The prompt must still
// instruct the model to produce JSON.
func JSONObjectResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: ResponseFormatTypeJSONObject}
}

// SchemaResponseFormat derives a structured-output response format from a
// Go value, named after its type.
func SchemaResponseFormat(v any, strict bool) (*ResponseFormat, error) {
	schema, err := GenerateSchema(v)
	if err != nil {
		return nil, err
	}
	return &ResponseFormat{
		Type: ResponseFormatTypeJSONSchema,
		JSONSchema: &JSONSchemaFormat{
			Name:   schemaName(v),
			Schema: schema,
			Strict: &strict,
		},
	}, nil
}

// SchemaFunctionDefinition derives a function-calling tool definition
// from a Go value describing the parameters.
func SchemaFunctionDefinition(name, description string, params any, strict bool) (FunctionDefinition, error) {
	schema, err := GenerateSchema(params)
	if err != nil {
		return FunctionDefinition{}, err
	}
	return FunctionDefinition{
		Name:        name,
		Description: description,
		Parameters:  schema,
		Strict:      &strict,
	}, nil
}

// GenerateSchema reflects a JSON Schema from a Go value and rewrites it
// into the dialect structured outputs accept: every property becomes
// required, objects forbid additional properties, oneOf becomes anyOf,
// and numeric format/bound constraints are stripped.
func GenerateSchema(v any) (json.RawMessage, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}
	data, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	delete(schema, "$schema")
	delete(schema, "$id")
	normalizeSchema(schema)

	out, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}

func normalizeSchema(node any) {
	obj, ok := node.(map[string]any)
	if !ok {
		if arr, ok := node.([]any); ok {
			for _, v := range arr {
				normalizeSchema(v)
			}
		}
		return
	}

	if v, ok := obj["oneOf"]; ok {
		delete(obj, "oneOf")
		obj["anyOf"] = v
	}
	if variants, ok := obj["anyOf"].([]any); ok {
		for _, v := range variants {
			normalizeSchema(v)
		}
	}

	typ, _ := obj["type"].(string)
	switch typ {
	case "array":
		if items, ok := obj["items"]; ok {
			normalizeSchema(items)
		}
	case "object":
		props, ok := obj["properties"].(map[string]any)
		if !ok {
			return
		}
		required := make([]any, 0, len(props))
		for name, prop := range props {
			normalizeSchema(prop)
			required = append(required, name)
		}
		obj["required"] = required
		if _, ok := obj["additionalProperties"]; !ok {
			obj["additionalProperties"] = false
		}
	case "string":
		pruneSchemaKeys(obj, "type", "enum")
	case "number", "integer":
		// The API rejects format and bound constraints on numbers.
		pruneSchemaKeys(obj, "type")
	}
}

func pruneSchemaKeys(obj map[string]any, keep ...string) {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}
	for k := range obj {
		if !kept[k] {
			delete(obj, k)
		}
	}
}

func schemaName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "schema"
	}
	return t.Name()
}
