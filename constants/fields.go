package constants

// Field names for the structured extraction. The set is fixed; the LLM may
// omit fields but never invent new ones.
const (
	FieldName           = "name"
	FieldProducer       = "producer"
	FieldVintage        = "vintage"
	FieldType           = "type"
	FieldRegion         = "region"
	FieldCountry        = "country"
	FieldAlcoholContent = "alcoholContent"
	FieldGrapes         = "grapes"
)

// ExtractionFields lists every field the interpretation engine may return,
// in a stable order.
var ExtractionFields = []string{
	FieldName,
	FieldProducer,
	FieldVintage,
	FieldType,
	FieldRegion,
	FieldCountry,
	FieldAlcoholContent,
	FieldGrapes,
}

// IsExtractionField reports whether name belongs to the fixed field set.
func IsExtractionField(name string) bool {
	for _, f := range ExtractionFields {
		if f == name {
			return true
		}
	}
	return false
}

// Pipeline limits.
const (
	// MinOCRTextLength is the minimum transcript length (after trimming)
	// required before the interpretation stage runs.
	MinOCRTextLength = 5

	// CandidatePoolLimit bounds the inventory page scanned per match request.
	CandidatePoolLimit = 100

	// MaxMatchCandidates caps the ranked candidate list.
	MaxMatchCandidates = 3

	// DefaultBlockConfidence is assumed when the OCR provider omits a
	// per-token confidence.
	DefaultBlockConfidence = 0.5
)

// OCRLanguageHints is the fixed hint set passed to the text-detection
// provider; wine labels are dominated by these languages.
var OCRLanguageHints = []string{"en", "fr", "it", "es", "de", "pt"}
