// Package pipeline sequences one label scan: text detection, field
// interpretation, confidence aggregation, persistence, and duplicate
// matching. Each run is single-shot and retains no state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/common"
	"github.com/dmaresco/cellarscan/internal/entity"
	"github.com/dmaresco/cellarscan/internal/extract"
	"github.com/dmaresco/cellarscan/internal/repository"
)

// CandidateFinder is the matching stage seen from the orchestrator.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, fields map[string]entity.ExtractedField, ownerID uuid.UUID) ([]entity.WineRecord, error)
}

// Request identifies one extraction run. RequesterID comes from the verified
// auth layer; OwnerID names the cellar being extracted into.
type Request struct {
	ImageURI    string
	OwnerID     string
	RequesterID string
}

// Result is the externally visible outcome of a run. Success false with a
// Message is a normal negative result (no readable text), not an error.
type Result struct {
	Success    bool
	Message    string
	Extraction *entity.ExtractionResult
	Matches    []entity.WineRecord
}

// Pipeline owns step order, error classification, and short-circuit rules.
type Pipeline struct {
	detector    extract.TextDetector
	interpreter extract.FieldInterpreter
	extractions repository.ExtractionRepository
	matcher     CandidateFinder
	logger      *slog.Logger
	minTextLen  int
}

// New wires the pipeline stages together.
func New(
	detector extract.TextDetector,
	interpreter extract.FieldInterpreter,
	extractions repository.ExtractionRepository,
	matcher CandidateFinder,
	minTextLen int,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if minTextLen <= 0 {
		minTextLen = constants.MinOCRTextLength
	}
	return &Pipeline{
		detector:    detector,
		interpreter: interpreter,
		extractions: extractions,
		matcher:     matcher,
		logger:      logger,
		minTextLen:  minTextLen,
	}
}

// Extract runs the full pipeline for one photo.
//
// Step order is fixed: validate, authorize, detect text, interpret,
// aggregate, persist, match. OCR and persistence failures abort with
// classified errors; interpretation failures are absorbed upstream and reach
// this function only as an empty field map; a matching failure after the
// durable write logs and returns an empty candidate list.
func (p *Pipeline) Extract(ctx context.Context, req Request) (*Result, error) {
	requester := strings.TrimSpace(req.RequesterID)
	if requester == "" {
		return nil, common.NewAppError("UNAUTHENTICATED", "no verified requester", common.ErrUnauthenticated)
	}
	requesterID, err := uuid.Parse(requester)
	if err != nil {
		return nil, common.NewAppError("UNAUTHENTICATED", "requester id is not a UUID", common.ErrUnauthenticated)
	}

	ownerID, err := uuid.Parse(strings.TrimSpace(req.OwnerID))
	if err != nil {
		return nil, common.NewAppError("INVALID_REQUEST", "owner id must be a UUID", common.ErrInvalidRequest)
	}
	imageURI := strings.TrimSpace(req.ImageURI)
	if imageURI == "" {
		return nil, common.NewAppError("INVALID_REQUEST", "photo reference is required", common.ErrInvalidRequest)
	}

	// The requester may only extract into their own cellar.
	if requesterID != ownerID {
		p.logger.Warn("pipeline.denied", "requester_id", requesterID, "owner_id", ownerID)
		return nil, common.NewAppError("PERMISSION_DENIED", "requester does not own this cellar", common.ErrPermissionDenied)
	}

	det, err := p.detector.DetectText(ctx, imageURI)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Error("pipeline.ocr.failed", "owner_id", ownerID, "error", err)
		return nil, common.NewAppError("OCR_UNAVAILABLE", "text detection failed", fmt.Errorf("%w: %w", common.ErrOCRUnavailable, err))
	}
	p.logger.Info("pipeline.ocr.ok",
		"owner_id", ownerID,
		"text_len", len(det.Text),
		"blocks", len(det.Blocks),
		"confidence", det.Confidence,
	)

	// Too little text to interpret: a normal negative outcome. Nothing is
	// persisted and the language model is never called.
	if len(strings.TrimSpace(det.Text)) < p.minTextLen {
		p.logger.Info("pipeline.no_text", "owner_id", ownerID, "text_len", len(det.Text))
		return &Result{
			Success: false,
			Message: "no readable text was detected on the photo",
		}, nil
	}

	fields := p.interpreter.Interpret(ctx, det.Text)
	if ctx.Err() != nil {
		// Caller gave up mid-flight; do not persist a partial artifact.
		return nil, ctx.Err()
	}
	if len(fields) == 0 {
		p.logger.Warn("pipeline.interpret.degraded", "owner_id", ownerID)
	}

	result := &entity.ExtractionResult{
		OwnerID:           ownerID,
		RawOCRText:        det.Text,
		Fields:            fields,
		OverallConfidence: extract.AggregateConfidence(fields),
	}

	if _, err := p.extractions.Create(ctx, result); err != nil {
		p.logger.Error("pipeline.persist.failed", "owner_id", ownerID, "error", err)
		return nil, common.NewAppError("PERSISTENCE_FAILED", "could not store the extraction", fmt.Errorf("%w: %w", common.ErrPersistenceFailed, err))
	}
	p.logger.Info("pipeline.persist.ok",
		"owner_id", ownerID,
		"extraction_id", result.ID,
		"overall_confidence", result.OverallConfidence,
	)

	// The extraction is durable; a matching failure must not undo it.
	matches, err := p.matcher.FindCandidates(ctx, fields, ownerID)
	if err != nil {
		p.logger.Error("pipeline.match.failed", "owner_id", ownerID, "error", err)
		matches = nil
	}

	return &Result{
		Success:    true,
		Extraction: result,
		Matches:    matches,
	}, nil
}
