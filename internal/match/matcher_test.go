package match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/entity"
)

type stubInventory struct {
	records []entity.WineRecord
	err     error
	calls   int
}

func (s *stubInventory) ListByOwner(_ context.Context, _ uuid.UUID, _ int) ([]entity.WineRecord, error) {
	s.calls++
	return s.records, s.err
}

func strPtr(s string) *string { return &s }

func fields(kv map[string]string) map[string]entity.ExtractedField {
	out := make(map[string]entity.ExtractedField, len(kv))
	for k, v := range kv {
		out[k] = entity.ExtractedField{Value: v, Confidence: 0.9}
	}
	return out
}

func wine(name string, producer, vintage *string) entity.WineRecord {
	return entity.WineRecord{
		ID:       uuid.New(),
		Name:     name,
		Producer: producer,
		Vintage:  vintage,
		Type:     "red",
	}
}

func TestFindCandidates_NoNameNoCandidates(t *testing.T) {
	inv := &stubInventory{records: []entity.WineRecord{wine("Barolo", nil, nil)}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(), fields(map[string]string{"producer": "Conterno"}), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, inv.calls, "no inventory read without a name anchor")
}

func TestFindCandidates_InclusionThreshold(t *testing.T) {
	// A lone fuzzy name match scores 1 and is excluded; a substring match
	// scores 2 and qualifies on its own.
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Barola", nil, nil),         // fuzzy only: 1
		wine("Barolo Riserva", nil, nil), // substring: 2
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(), fields(map[string]string{"name": "Barolo"}), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Barolo Riserva", got[0].Name)
}

func TestFindCandidates_FuzzyPlusSecondarySignalQualifies(t *testing.T) {
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Barola", nil, strPtr("2016")), // fuzzy 1 + vintage 1 = 2
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(),
		fields(map[string]string{"name": "Barolo", "vintage": "2016"}), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFindCandidates_ProducerNeedsBothSides(t *testing.T) {
	// Candidate has no producer: the producer signal is skipped entirely,
	// leaving the fuzzy name score of 1, below threshold.
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Barola", nil, nil),
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(),
		fields(map[string]string{"name": "Barolo", "producer": "Conterno"}), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindCandidates_ExactNameRanksFirst(t *testing.T) {
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Barolo Riserva", nil, nil),                     // substring: 2
		wine("Barolo", strPtr("Giacomo Conterno"), nil),      // exact+producer: 5
		wine("Barolo del Comune", strPtr("Vietti"), nil),     // substring: 2
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(),
		fields(map[string]string{"name": "Barolo", "producer": "Giacomo Conterno"}), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Barolo", got[0].Name)
	// ties stay in discovery order
	assert.Equal(t, "Barolo Riserva", got[1].Name)
	assert.Equal(t, "Barolo del Comune", got[2].Name)
}

func TestFindCandidates_CapsAtThree(t *testing.T) {
	var recs []entity.WineRecord
	for i := 0; i < 10; i++ {
		recs = append(recs, wine("Barolo", nil, nil))
	}
	inv := &stubInventory{records: recs}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(), fields(map[string]string{"name": "Barolo"}), uuid.New())
	require.NoError(t, err)
	assert.Len(t, got, constants.MaxMatchCandidates)
}

func TestFindCandidates_CaseInsensitive(t *testing.T) {
	inv := &stubInventory{records: []entity.WineRecord{
		wine("barolo monfortino", strPtr("giacomo conterno"), strPtr("2016")),
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(), fields(map[string]string{
		"name":     "Barolo Monfortino",
		"producer": "GIACOMO CONTERNO",
		"vintage":  "2016",
	}), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFindCandidates_BaroloMonfortinoScenario(t *testing.T) {
	target := wine("Barolo Monfortino", strPtr("Giacomo Conterno"), strPtr("2016"))
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Chianti Classico", strPtr("Fontodi"), strPtr("2019")),
		target,
		wine("Dom Pérignon", strPtr("Moët & Chandon"), strPtr("2012")),
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(), fields(map[string]string{
		"name":     "Barolo Monfortino",
		"producer": "Giacomo Conterno",
		"vintage":  "2016",
	}), uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, target.ID, got[0].ID)
}

func TestFindCandidates_VintageComparedAsString(t *testing.T) {
	inv := &stubInventory{records: []entity.WineRecord{
		wine("Barola", nil, strPtr("02016")), // not string-equal to "2016"
	}}
	m := NewMatcher(inv, nil)

	got, err := m.FindCandidates(context.Background(),
		fields(map[string]string{"name": "Barolo", "vintage": "2016"}), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindCandidates_InventoryError(t *testing.T) {
	inv := &stubInventory{err: errors.New("db down")}
	m := NewMatcher(inv, nil)

	_, err := m.FindCandidates(context.Background(), fields(map[string]string{"name": "Barolo"}), uuid.New())
	assert.Error(t, err)
}

func TestScoreRecord_TiersAreExclusive(t *testing.T) {
	// Exact match must not also collect substring or fuzzy points.
	score, exact := scoreRecord("barolo", "", "", wine("Barolo", nil, nil))
	assert.Equal(t, 3, score)
	assert.True(t, exact)

	score, exact = scoreRecord("barolo", "", "", wine("Barolo Riserva", nil, nil))
	assert.Equal(t, 2, score)
	assert.False(t, exact)

	score, exact = scoreRecord("barolo", "", "", wine("Barola", nil, nil))
	assert.Equal(t, 1, score)
	assert.False(t, exact)
}
