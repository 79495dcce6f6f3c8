package openai

import (
	"encoding/json"
	"testing"
)

type weatherReport struct {
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	Conditions  []string `json:"conditions"`
}

func TestGenerateSchema(t *testing.T) {
	raw, err := GenerateSchema(weatherReport{})
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("Schema is not valid JSON: %v", err)
	}

	if schema["type"] != "object" {
		t.Errorf("Expected object schema, got %v", schema["type"])
	}
	if _, ok := schema["$schema"]; ok {
		t.Error("Expected $schema to be stripped")
	}
	if _, ok := schema["$id"]; ok {
		t.Error("Expected $id to be stripped")
	}
	if ap, ok := schema["additionalProperties"].(bool); !ok || ap {
		t.Errorf("Expected additionalProperties=false, got %v", schema["additionalProperties"])
	}

	// Strict mode needs every property listed as required.
	required, ok := schema["required"].([]any)
	if !ok {
		t.Fatalf("Expected required array, got %v", schema["required"])
	}
	props := schema["properties"].(map[string]any)
	if len(required) != len(props) {
		t.Errorf("Expected %d required properties, got %d", len(props), len(required))
	}

	// Leaf schemas carry only the keys strict mode accepts.
	city := props["city"].(map[string]any)
	for key := range city {
		if key != "type" && key != "enum" {
			t.Errorf("Unexpected key %q on string property", key)
		}
	}
	temp := props["temperature"].(map[string]any)
	for key := range temp {
		if key != "type" {
			t.Errorf("Unexpected key %q on number property", key)
		}
	}
}

func TestGenerateSchema_OneOfBecomesAnyOf(t *testing.T) {
	raw, err := GenerateSchema(weatherReport{})
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}
	var schema map[string]any
	json.Unmarshal(raw, &schema)

	// Synthesize a oneOf and run the normalizer the generator uses.
	node := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "number", "minimum": 1.0},
		},
	}
	normalizeSchema(node)
	if _, ok := node["oneOf"]; ok {
		t.Error("Expected oneOf to be rewritten")
	}
	variants, ok := node["anyOf"].([]any)
	if !ok || len(variants) != 2 {
		t.Fatalf("Expected 2 anyOf variants, got %v", node["anyOf"])
	}
	number := variants[1].(map[string]any)
	if _, ok := number["minimum"]; ok {
		t.Error("Expected minimum to be pruned from number schema")
	}
}

func TestSchemaResponseFormat(t *testing.T) {
	format, err := SchemaResponseFormat(weatherReport{}, true)
	if err != nil {
		t.Fatalf("SchemaResponseFormat() error = %v", err)
	}
	if format.Type != ResponseFormatTypeJSONSchema {
		t.Errorf("Expected json_schema, got %s", format.Type)
	}
	if format.JSONSchema == nil {
		t.Fatal("Expected json_schema payload")
	}
	if format.JSONSchema.Name != "weatherReport" {
		t.Errorf("Expected weatherReport, got %s", format.JSONSchema.Name)
	}
	if format.JSONSchema.Strict == nil || !*format.JSONSchema.Strict {
		t.Error("Expected strict=true")
	}
}

func TestSchemaFunctionDefinition(t *testing.T) {
	fd, err := SchemaFunctionDefinition("report_weather", "Report the weather", weatherReport{}, true)
	if err != nil {
		t.Fatalf("SchemaFunctionDefinition() error = %v", err)
	}
	if fd.Name != "report_weather" {
		t.Errorf("Expected report_weather, got %s", fd.Name)
	}
	if len(fd.Parameters) == 0 {
		t.Error("Expected parameters schema")
	}
	if fd.Strict == nil || !*fd.Strict {
		t.Error("Expected strict=true")
	}
}
