package llm

import (
	"strings"

	"github.com/dmaresco/cellarscan/constants"
)

// BuildPrompt composes the single deterministic instruction prompt for label
// interpretation. The OCR transcript is embedded verbatim; everything else is
// fixed so that two runs over the same transcript send identical requests.
func BuildPrompt(ocrText string) string {
	parts := []string{
		"You are a wine label reader. You receive the raw OCR transcript of a photo of a wine label.",
		"Return ONLY a JSON object, no prose, no Markdown fences.",
		"The object may contain these keys and NO others: " + strings.Join(constants.ExtractionFields, ", ") + ".",
		"Each key you include must map to an object {\"value\": ..., \"confidence\": ...}.",
		"Omit a key entirely when the label gives you no basis for it. Never output null.",
		"'confidence' is a number between 0 and 1 reflecting how legible and unambiguous the value is on the label; report below 0.8 for anything not clearly printed.",
		"'" + constants.FieldType + "' must be exactly one of: " + strings.Join(constants.WineTypeStrings(), ", ") + ".",
		"'" + constants.FieldVintage + "' is the four-digit year as a string.",
		"'" + constants.FieldAlcoholContent + "' is the percentage by volume, digits only (e.g. \"14.5\").",
		"'" + constants.FieldGrapes + "' is a comma-separated list of grape varieties.",
		"OCR transcript:",
		ocrText,
	}
	return strings.Join(parts, "\n")
}
