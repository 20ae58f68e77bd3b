package evaluation

import "github.com/abhisek/aperture/internal/llm"

// ToolName is the structured output name the service must answer with.
const ToolName = "evaluate_photo"

var evaluatePhotoSchema = &llm.Schema{
	Name:        ToolName,
	Description: "Return the structured evaluation of a student photo submission",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rating": map[string]any{
				"type":        "integer",
				"description": "Star rating from 1-5",
				"minimum":     1,
				"maximum":     5,
			},
			"pass": map[string]any{
				"type":        "boolean",
				"description": "true if rating >= 3",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    2,
				"maxItems":    3,
				"description": "2-3 specific strengths observed in the photo",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    2,
				"maxItems":    3,
				"description": "2-3 specific areas for improvement",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "An encouraging 2-3 sentence summary paragraph",
			},
		},
		"required":             []any{"rating", "pass", "strengths", "improvements", "summary"},
		"additionalProperties": false,
	},
}
