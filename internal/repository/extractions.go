package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaresco/cellarscan/internal/entity"
)

// ExtractionRepository persists the artifact of one pipeline run.
// Append-only: the pipeline never updates or deletes an extraction.
type ExtractionRepository interface {
	Create(ctx context.Context, result *entity.ExtractionResult) (uuid.UUID, error)
}

type extractionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewExtractionRepository builds an ExtractionRepository over the pool.
func NewExtractionRepository(pool *pgxpool.Pool, logger *slog.Logger) ExtractionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionRepository{pool: pool, logger: logger}
}

// Create writes the extraction exactly once, assigning its id and creation
// timestamp. The passed result is updated in place with both.
func (r *extractionRepository) Create(ctx context.Context, result *entity.ExtractionResult) (uuid.UUID, error) {
	fieldsJSON, err := json.Marshal(result.Fields)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode fields: %w", err)
	}

	id := uuid.New()
	createdAt := time.Now().UTC()

	const q = `
		INSERT INTO extractions (id, owner_id, raw_ocr_text, extracted_fields, overall_confidence, was_manually_edited, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)`

	if _, err := r.pool.Exec(ctx, q,
		id, result.OwnerID, result.RawOCRText, fieldsJSON, result.OverallConfidence, createdAt,
	); err != nil {
		r.logger.Error("failed to insert extraction", "owner_id", result.OwnerID, "error", err)
		return uuid.Nil, fmt.Errorf("insert extraction: %w", err)
	}

	result.ID = id
	result.CreatedAt = createdAt
	return id, nil
}
