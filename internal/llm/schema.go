package llm

import (
	"github.com/dmaresco/cellarscan/constants"
)

// BuildLabelJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Every field is optional; a present field must be an object
// carrying both a string value and a confidence in [0,1]. The wine type is
// pinned to the enum.
func BuildLabelJSONSchema() map[string]any {
	props := make(map[string]any, len(constants.ExtractionFields))
	for _, name := range constants.ExtractionFields {
		props[name] = fieldProp()
	}

	typed := fieldProp()
	typed["properties"].(map[string]any)["value"] = map[string]any{
		"type": "string",
		"enum": constants.WineTypeStrings(),
	}
	props[constants.FieldType] = typed

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func fieldProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"value":      map[string]any{"type": "string", "minLength": 1},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"value", "confidence"},
	}
}
