package tutor

import "github.com/abhisek/fmaprep/internal/llm"

// ExplanationSchema constrains the worked explanation returned by the model.
var ExplanationSchema = &llm.Schema{
	Name:        "worked-explanation",
	Description: "A step-by-step explanation of a multiple-choice physics problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentences naming the approach",
			},
			"steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    8,
				"description": "Ordered solution steps, each one short paragraph",
			},
			"key_idea": map[string]any{
				"type":        "string",
				"description": "The physical principle that unlocks the problem",
			},
			"common_mistake": map[string]any{
				"type":        "string",
				"description": "The error that leads to the most tempting wrong option",
			},
		},
		"required":             []any{"summary", "steps", "key_idea", "common_mistake"},
		"additionalProperties": false,
	},
}
