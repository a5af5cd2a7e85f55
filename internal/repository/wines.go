package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmaresco/cellarscan/internal/entity"
)

// WineRepository is the read-only inventory view used by the matcher and the
// listing endpoints. The extraction pipeline never writes wines.
type WineRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.WineRecord, error)
}

type wineRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewWineRepository builds a WineRepository over the pool.
func NewWineRepository(pool *pgxpool.Pool, logger *slog.Logger) WineRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &wineRepository{pool: pool, logger: logger}
}

// ListByOwner returns one bounded page of the owner's wines in insertion
// order. The page bound keeps the matcher's linear scan cheap; it is a scale
// limit, not a correctness bound.
func (r *wineRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.WineRecord, error) {
	const q = `
		SELECT id, owner_id, name, producer, vintage, wine_type, region, country, alcohol_content, grapes, created_at, updated_at
		FROM wines
		WHERE owner_id = $1
		ORDER BY created_at, id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, q, ownerID, limit)
	if err != nil {
		r.logger.Error("failed to list wines", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("query wines: %w", err)
	}
	defer rows.Close()

	var out []entity.WineRecord
	for rows.Next() {
		var w entity.WineRecord
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Name, &w.Producer, &w.Vintage, &w.Type,
			&w.Region, &w.Country, &w.AlcoholContent, &w.Grapes,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wine: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wines: %w", err)
	}
	return out, nil
}
