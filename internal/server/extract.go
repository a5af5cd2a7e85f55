package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmaresco/cellarscan/constants"
	"github.com/dmaresco/cellarscan/internal/common"
	"github.com/dmaresco/cellarscan/internal/entity"
	"github.com/dmaresco/cellarscan/internal/pipeline"
)

// extractRequest is the inbound shape for one label scan.
type extractRequest struct {
	PhotoReference string `json:"photoReference"`
	OwnerID        string `json:"ownerId"`
}

// extractResponse is the structured pipeline outcome. On failure Error holds
// a short human-readable message, never a provider error.
type extractResponse struct {
	Success          bool                     `json:"success"`
	Extraction       *entity.ExtractionResult `json:"extraction,omitempty"`
	SuggestedMatches []entity.WineRecord      `json:"suggestedMatches,omitempty"`
	Error            string                   `json:"error,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, extractResponse{Success: false, Error: "invalid request body"})
		return
	}

	result, err := s.pipeline.Extract(r.Context(), pipeline.Request{
		ImageURI:    req.PhotoReference,
		OwnerID:     req.OwnerID,
		RequesterID: common.RequesterIDFromContext(r.Context()),
	})
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusOK, extractResponse{Success: false, Error: result.Message})
		return
	}
	writeJSON(w, http.StatusOK, extractResponse{
		Success:          true,
		Extraction:       result.Extraction,
		SuggestedMatches: result.Matches,
	})
}

func (s *Server) handleListWines(w http.ResponseWriter, r *http.Request) {
	requester := common.RequesterIDFromContext(r.Context())
	if requester == "" {
		writeJSON(w, http.StatusUnauthorized, extractResponse{Success: false, Error: "authentication required"})
		return
	}
	ownerID, err := uuid.Parse(requester)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, extractResponse{Success: false, Error: "authentication required"})
		return
	}

	wines, err := s.wines.ListByOwner(r.Context(), ownerID, constants.CandidatePoolLimit)
	if err != nil {
		s.logger.Error("server.wines.list_failed", "owner_id", ownerID, "error", err)
		writeJSON(w, http.StatusInternalServerError, extractResponse{Success: false, Error: "could not load the cellar"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wines": wines})
}

// writePipelineError maps the pipeline taxonomy onto HTTP statuses with
// short user-facing messages.
func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *common.AppError
	message := "something went wrong"
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = "authentication required"
	case errors.Is(err, common.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrOCRUnavailable):
		status = http.StatusBadGateway
		message = "the label could not be scanned right now, please retry"
	case errors.Is(err, common.ErrPersistenceFailed):
		status = http.StatusInternalServerError
		message = "the extraction could not be saved"
	}

	s.logger.Error("server.extract.failed",
		"request_id", middleware.GetReqID(r.Context()),
		"status", status,
		"error", err,
	)
	writeJSON(w, status, extractResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
