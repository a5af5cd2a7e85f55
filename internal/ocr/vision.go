// Package ocr adapts the Google Vision text-detection API to the pipeline's
// TextDetector contract.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/extract"
)

// Config holds provider credentials. One of CredentialsFile or APIKey is
// required; application-default credentials are used when both are empty.
type Config struct {
	CredentialsFile string
	APIKey          string
}

// VisionDetector implements extract.TextDetector over Vision TEXT_DETECTION.
type VisionDetector struct {
	svc    *vision.Service
	logger *slog.Logger
}

// NewVisionDetector builds the Vision service client.
func NewVisionDetector(ctx context.Context, cfg Config, logger *slog.Logger) (*VisionDetector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}
	return &VisionDetector{svc: svc, logger: logger}, nil
}

// DetectText runs TEXT_DETECTION against an already-durable image reference.
// A provider response with zero annotations yields an empty detection and a
// nil error; transport and provider errors are returned as-is for the caller
// to classify.
func (d *VisionDetector) DetectText(ctx context.Context, imageURI string) (extract.TextDetection, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{
					Source: &vision.ImageSource{ImageUri: imageURI},
				},
				Features: []*vision.Feature{
					{Type: "TEXT_DETECTION"},
				},
				ImageContext: &vision.ImageContext{
					LanguageHints: constants.OCRLanguageHints,
				},
			},
		},
	}

	resp, err := d.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		d.logger.Error("ocr.vision.request_failed", "image_uri", imageURI, "error", err)
		return extract.TextDetection{}, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return extract.TextDetection{}, fmt.Errorf("vision annotate: empty batch response")
	}

	r := resp.Responses[0]
	if r.Error != nil {
		d.logger.Error("ocr.vision.provider_error",
			"image_uri", imageURI,
			"code", r.Error.Code,
			"message", r.Error.Message,
		)
		return extract.TextDetection{}, fmt.Errorf("vision annotate: provider error %d: %s", r.Error.Code, r.Error.Message)
	}

	det := normalizeAnnotations(r.TextAnnotations)
	d.logger.Info("ocr.vision.ok",
		"image_uri", imageURI,
		"text_len", len(det.Text),
		"blocks", len(det.Blocks),
		"confidence", det.Confidence,
	)
	return det, nil
}
