package extract

import (
	"context"

	"github.com/dmaresco/cellarscan/internal/entity"
)

// TextDetector is Stage 1: image reference -> transcript + token blocks.
type TextDetector interface {
	DetectText(ctx context.Context, imageURI string) (TextDetection, error)
}

// TextDetection is the normalized output of one text-detection call. An
// empty detection (no annotations) is a valid result, not an error.
type TextDetection struct {
	Text       string
	Blocks     []TextBlock
	Confidence float64
}

// Empty reports whether the provider found no text at all.
func (d TextDetection) Empty() bool {
	return d.Text == "" && len(d.Blocks) == 0
}

// TextBlock is one token-level annotation with its own confidence and the
// rectangle derived from the provider's bounding polygon.
type TextBlock struct {
	Text       string
	Confidence float64
	Bounds     Rect
}

// Rect is an axis-aligned bounding rectangle in image pixel coordinates.
type Rect struct {
	X      int64
	Y      int64
	Width  int64
	Height int64
}

// FieldInterpreter is Stage 2: transcript -> confidence-scored fields. It
// degrades to an empty map on unusable model output and never fails the
// pipeline.
type FieldInterpreter interface {
	Interpret(ctx context.Context, ocrText string) map[string]entity.ExtractedField
}
