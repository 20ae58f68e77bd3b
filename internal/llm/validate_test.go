package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// gradeSchema mirrors the shape of a photo grade without depending on the
// evaluation package.
func gradeSchema() *Schema {
	return &Schema{
		Name:        "test_grade",
		Description: "A photo grade",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"rating": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"pass":   map[string]any{"type": "boolean"},
				"notes": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
					"maxItems": 3,
				},
			},
			"required":             []any{"rating", "pass", "notes"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"rating":4,"pass":true,"notes":["a","b"]}`)
	if err := validateResponse(gradeSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"rating":4,"notes":["a","b"]}`},
		{"wrong type", `{"rating":"four","pass":true,"notes":["a","b"]}`},
		{"fractional rating", `{"rating":3.5,"pass":true,"notes":["a","b"]}`},
		{"rating above range", `{"rating":6,"pass":true,"notes":["a","b"]}`},
		{"rating below range", `{"rating":0,"pass":false,"notes":["a","b"]}`},
		{"too few notes", `{"rating":2,"pass":false,"notes":["a"]}`},
		{"too many notes", `{"rating":2,"pass":false,"notes":["a","b","c","d"]}`},
		{"extra field", `{"rating":4,"pass":true,"notes":["a","b"],"mood":"happy"}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(gradeSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
