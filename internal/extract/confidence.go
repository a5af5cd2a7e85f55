package extract

import (
	"github.com/dmaresco/cellarscan/internal/entity"
)

// AggregateConfidence reduces per-field confidences to one overall score:
// the arithmetic mean over present fields, 0 when no field is present.
// Pure function; absent fields contribute nothing (absence is not a zero).
func AggregateConfidence(fields map[string]entity.ExtractedField) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return sum / float64(len(fields))
}
