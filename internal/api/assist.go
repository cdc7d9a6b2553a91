package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agriconnect/agriconnect/internal/assist"
	"github.com/agriconnect/agriconnect/internal/storage"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
		return
	}

	answer, err := s.deps.Chat.Ask(r.Context(), req.Message)
	if errors.Is(err, assist.ErrNotConfigured) {
		httpError(w, http.StatusServiceUnavailable, "api_error", "the advisory assistant is not configured on this server")
		return
	}
	if err != nil {
		s.logger.Warn("assist upstream failed", "error", err)
		httpError(w, http.StatusBadGateway, "api_error", "the advisory assistant is unreachable, try again later")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": answer})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid user id")
		return
	}

	recs, err := s.deps.Recommender.Recommend(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to compute recommendations: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}
