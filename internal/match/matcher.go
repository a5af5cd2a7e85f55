// Package match ranks existing cellar records against a fresh extraction so
// the user can confirm a duplicate instead of creating one.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/entity"
)

// InventorySource is the read-only view of the owner's cellar. The linear
// scan over one bounded page is a deliberate scale limit; an indexed search
// backend can replace this without touching the scoring.
type InventorySource interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.WineRecord, error)
}

// Scoring tiers. Name tiers are mutually exclusive, evaluated in priority
// order; producer and vintage add on top.
const (
	nameExactPoints     = 3
	nameSubstringPoints = 2
	nameFuzzyPoints     = 1
	producerExactPoints = 2
	producerSubPoints   = 1
	vintagePoints       = 1

	fuzzyNameThreshold = 0.7
	inclusionThreshold = 2
)

// Matcher finds candidate duplicates for an extraction.
type Matcher struct {
	inventory InventorySource
	logger    *slog.Logger
}

// NewMatcher wires an inventory source into the matcher.
func NewMatcher(inventory InventorySource, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{inventory: inventory, logger: logger}
}

// FindCandidates scores every record in the owner's bounded inventory page
// against the extracted fields and returns at most MaxMatchCandidates,
// exact-name matches first. Without an extracted name there is nothing to
// anchor a comparison, so the result is empty.
func (m *Matcher) FindCandidates(ctx context.Context, fields map[string]entity.ExtractedField, ownerID uuid.UUID) ([]entity.WineRecord, error) {
	name, ok := fields[constants.FieldName]
	if !ok {
		return nil, nil
	}

	records, err := m.inventory.ListByOwner(ctx, ownerID, constants.CandidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	var producer, vintage string
	if f, ok := fields[constants.FieldProducer]; ok {
		producer = f.Value
	}
	if f, ok := fields[constants.FieldVintage]; ok {
		vintage = f.Value
	}

	type scored struct {
		record    entity.WineRecord
		exactName bool
	}
	candidates := make([]scored, 0, len(records))
	for _, rec := range records {
		score, exact := scoreRecord(name.Value, producer, vintage, rec)
		if score < inclusionThreshold {
			continue
		}
		candidates = append(candidates, scored{record: rec, exactName: exact})
	}

	// Exact-name matches first; ties keep discovery order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].exactName && !candidates[j].exactName
	})

	if len(candidates) > constants.MaxMatchCandidates {
		candidates = candidates[:constants.MaxMatchCandidates]
	}

	out := make([]entity.WineRecord, len(candidates))
	for i, c := range candidates {
		out[i] = c.record
	}
	m.logger.Info("match.candidates",
		"owner_id", ownerID,
		"pool", len(records),
		"returned", len(out),
	)
	return out, nil
}

// scoreRecord applies the additive point system, case-insensitive
// throughout. It returns the total and whether the name matched exactly.
func scoreRecord(name, producer, vintage string, rec entity.WineRecord) (int, bool) {
	score := 0
	exact := false

	n, rn := strings.ToLower(name), strings.ToLower(rec.Name)
	switch {
	case n == rn:
		score += nameExactPoints
		exact = true
	case strings.Contains(rn, n) || strings.Contains(n, rn):
		score += nameSubstringPoints
	case Similarity(n, rn) > fuzzyNameThreshold:
		score += nameFuzzyPoints
	}

	// Producer only counts when both sides carry one. No fuzzy tier here.
	if producer != "" && rec.Producer != nil && *rec.Producer != "" {
		p, rp := strings.ToLower(producer), strings.ToLower(*rec.Producer)
		switch {
		case p == rp:
			score += producerExactPoints
		case strings.Contains(rp, p) || strings.Contains(p, rp):
			score += producerSubPoints
		}
	}

	// Vintages compare as strings, never numerically.
	if vintage != "" && rec.Vintage != nil && vintage == *rec.Vintage {
		score += vintagePoints
	}

	return score, exact
}
