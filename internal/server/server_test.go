package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaresco/cellarscan/internal/entity"
	"github.com/dmaresco/cellarscan/internal/extract"
	"github.com/dmaresco/cellarscan/internal/pipeline"
)

type fakeAuth struct {
	users map[string]string // token -> user id
}

func (f *fakeAuth) VerifyToken(_ context.Context, token string) (string, error) {
	if id, ok := f.users[token]; ok {
		return id, nil
	}
	return "", errors.New("unknown token")
}

type fakeDetector struct {
	det extract.TextDetection
	err error
}

func (f *fakeDetector) DetectText(_ context.Context, _ string) (extract.TextDetection, error) {
	return f.det, f.err
}

type fakeInterpreter struct {
	fields map[string]entity.ExtractedField
}

func (f *fakeInterpreter) Interpret(_ context.Context, _ string) map[string]entity.ExtractedField {
	if f.fields == nil {
		return map[string]entity.ExtractedField{}
	}
	return f.fields
}

type fakeExtractions struct{ err error }

func (f *fakeExtractions) Create(_ context.Context, r *entity.ExtractionResult) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now().UTC()
	return r.ID, nil
}

type fakeFinder struct{ matches []entity.WineRecord }

func (f *fakeFinder) FindCandidates(_ context.Context, _ map[string]entity.ExtractedField, _ uuid.UUID) ([]entity.WineRecord, error) {
	return f.matches, nil
}

type fakeWines struct {
	wines []entity.WineRecord
	err   error
}

func (f *fakeWines) ListByOwner(_ context.Context, _ uuid.UUID, _ int) ([]entity.WineRecord, error) {
	return f.wines, f.err
}

type testEnv struct {
	handler http.Handler
	owner   uuid.UUID
	token   string
}

func newTestEnv(det *fakeDetector, interp *fakeInterpreter, ext *fakeExtractions) *testEnv {
	owner := uuid.New()
	p := pipeline.New(det, interp, ext, &fakeFinder{}, 5, nil)
	srv := New(p, &fakeWines{}, &fakeAuth{users: map[string]string{"good-token": owner.String()}}, time.Minute, nil)
	return &testEnv{
		handler: srv.Router(nil),
		owner:   owner,
		token:   "good-token",
	}
}

func (e *testEnv) post(t *testing.T, body string, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/extractions", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) extractResponse {
	t.Helper()
	var resp extractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(&fakeDetector{}, &fakeInterpreter{}, &fakeExtractions{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtract_Unauthenticated(t *testing.T) {
	e := newTestEnv(&fakeDetector{}, &fakeInterpreter{}, &fakeExtractions{})
	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+e.owner.String()+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestExtract_WrongOwner(t *testing.T) {
	e := newTestEnv(&fakeDetector{}, &fakeInterpreter{}, &fakeExtractions{})
	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+uuid.NewString()+`"}`, e.token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtract_BadBody(t *testing.T) {
	e := newTestEnv(&fakeDetector{}, &fakeInterpreter{}, &fakeExtractions{})
	rec := e.post(t, `{not json`, e.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_OCRUnavailable(t *testing.T) {
	e := newTestEnv(&fakeDetector{err: errors.New("vision down")}, &fakeInterpreter{}, &fakeExtractions{})
	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+e.owner.String()+`"}`, e.token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode(t, rec)
	assert.NotContains(t, resp.Error, "vision", "provider errors never leak")
}

func TestExtract_NoTextIsSuccessFalse(t *testing.T) {
	e := newTestEnv(&fakeDetector{det: extract.TextDetection{Text: "ab "}}, &fakeInterpreter{}, &fakeExtractions{})
	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+e.owner.String()+`"}`, e.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Extraction)
	assert.NotEmpty(t, resp.Error)
}

func TestExtract_Success(t *testing.T) {
	det := &fakeDetector{det: extract.TextDetection{Text: "BAROLO MONFORTINO GIACOMO CONTERNO 2016"}}
	interp := &fakeInterpreter{fields: map[string]entity.ExtractedField{
		"name":    {Value: "Barolo Monfortino", Confidence: 0.9},
		"vintage": {Value: "2016", Confidence: 0.8},
	}}
	e := newTestEnv(det, interp, &fakeExtractions{})

	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+e.owner.String()+`"}`, e.token)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Extraction)
	assert.InDelta(t, 0.85, resp.Extraction.OverallConfidence, 1e-9)
	assert.Equal(t, "Barolo Monfortino", resp.Extraction.Fields["name"].Value)
}

func TestExtract_PersistenceFailure(t *testing.T) {
	det := &fakeDetector{det: extract.TextDetection{Text: "CHABLIS GRAND CRU"}}
	e := newTestEnv(det, &fakeInterpreter{}, &fakeExtractions{err: errors.New("db down")})

	rec := e.post(t, `{"photoReference":"gs://x/1.jpg","ownerId":"`+e.owner.String()+`"}`, e.token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListWines_RequiresAuth(t *testing.T) {
	e := newTestEnv(&fakeDetector{}, &fakeInterpreter{}, &fakeExtractions{})
	req := httptest.NewRequest(http.MethodGet, "/v1/wines", nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
