package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedField is one confidence-scored value produced by the
// interpretation engine. A field that the model had no basis to populate is
// absent from the map entirely; it is never represented as a field with
// confidence 0.
type ExtractedField struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ExtractionResult is the durable artifact of one pipeline run. It is written
// exactly once; WasManuallyEdited is flipped later by the editing UI, never
// by this pipeline.
type ExtractionResult struct {
	ID                uuid.UUID                 `json:"id"`
	OwnerID           uuid.UUID                 `json:"owner_id"`
	RawOCRText        string                    `json:"raw_ocr_text"`
	Fields            map[string]ExtractedField `json:"extracted_fields"`
	OverallConfidence float64                   `json:"overall_confidence"`
	WasManuallyEdited bool                      `json:"was_manually_edited"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// Field returns the named field and whether it is present.
func (r *ExtractionResult) Field(name string) (ExtractedField, bool) {
	f, ok := r.Fields[name]
	return f, ok
}
