package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-explanation",
		Description: "A small explanation object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string", "minLength": 1},
				"steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"confidence": map[string]any{"type": "string", "enum": []string{"low", "high"}},
			},
			"required": []string{"summary"},
		},
	}
}

func TestCheckContent(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"required only", `{"summary":"Apply F = ma."}`, true},
		{"with optional fields", `{"summary":"s","steps":["a","b"],"confidence":"high"}`, true},
		{"missing required", `{"steps":["a"]}`, false},
		{"empty summary", `{"summary":""}`, false},
		{"wrong item type", `{"summary":"s","steps":[1,2]}`, false},
		{"enum violation", `{"summary":"s","confidence":"medium"}`, false},
		{"malformed JSON", `{"summary":`, false},
		{"empty body", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkContent(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("error content = %q, want %q", inv.Content, tt.raw)
			}
		})
	}
}

func TestCheckContent_NilSchema(t *testing.T) {
	if err := checkContent(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := testSchema()
	s.Name = "test-cache"
	a, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("expected the cached schema to be reused")
	}
}

func TestCompileSchema_Invalid(t *testing.T) {
	s := &Schema{Name: "test-broken", Definition: map[string]any{"type": 12}}
	if err := checkContent(s, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for an uncompilable schema")
	}
}
