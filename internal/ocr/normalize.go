package ocr

import (
	vision "google.golang.org/api/vision/v1"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/extract"
)

// normalizeAnnotations converts the provider's annotation list into the
// uniform detection shape. The first annotation is the full-document
// transcript; every subsequent annotation is a token-level block.
func normalizeAnnotations(anns []*vision.EntityAnnotation) extract.TextDetection {
	if len(anns) == 0 {
		return extract.TextDetection{}
	}

	det := extract.TextDetection{Text: anns[0].Description}
	if len(anns) == 1 {
		return det
	}

	det.Blocks = make([]extract.TextBlock, 0, len(anns)-1)
	var sum float64
	for _, a := range anns[1:] {
		conf := a.Confidence
		if conf <= 0 {
			conf = constants.DefaultBlockConfidence
		}
		det.Blocks = append(det.Blocks, extract.TextBlock{
			Text:       a.Description,
			Confidence: conf,
			Bounds:     rectFromPoly(a.BoundingPoly),
		})
		sum += conf
	}
	det.Confidence = sum / float64(len(det.Blocks))
	return det
}

// rectFromPoly derives an axis-aligned rectangle from the polygon's first
// vertex and the opposite (third) corner.
func rectFromPoly(poly *vision.BoundingPoly) extract.Rect {
	if poly == nil || len(poly.Vertices) < 3 {
		return extract.Rect{}
	}
	first := poly.Vertices[0]
	opposite := poly.Vertices[2]
	return extract.Rect{
		X:      first.X,
		Y:      first.Y,
		Width:  opposite.X - first.X,
		Height: opposite.Y - first.Y,
	}
}
