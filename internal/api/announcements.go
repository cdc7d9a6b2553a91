package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/ingest"
	"github.com/agriconnect/agriconnect/internal/storage"
)

func recordFromAnnouncement(a storage.Announcement) catalog.Record {
	return catalog.Record{
		ID:          a.ID,
		Kind:        catalog.KindAnnouncement,
		Name:        a.Title,
		Description: a.Body,
		Location:    a.Location,
		Category:    a.Category,
		Payload:     a,
	}
}

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := s.deps.Store.ListAnnouncements()
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list announcements: %v", err)
		return
	}

	records := make([]catalog.Record, 0, len(announcements))
	for _, a := range announcements {
		records = append(records, recordFromAnnouncement(a))
	}

	filtered := filterFromQuery(r).Apply(records)
	mode := catalog.ParseViewMode(r.URL.Query().Get("view"))
	writeJSON(w, http.StatusOK, viewResponse(filtered, mode))
}

func (s *Server) handleGetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid announcement id")
		return
	}

	a, err := s.deps.Store.GetAnnouncement(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "announcement not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get announcement: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var a storage.Announcement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	if a.Title == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
		return
	}
	if a.Body == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "body is required")
		return
	}
	a.Source = "api"

	created, err := s.deps.Store.CreateAnnouncement(a)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to create announcement: %v", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleIngestAnnouncement queues an extraction job for a text, URL or PDF
// submission. The announcement appears in the feed once the worker has run.
func (s *Server) handleIngestAnnouncement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload ingest.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	switch payload.Source {
	case "text", "url", "pdf":
	default:
		httpError(w, http.StatusBadRequest, "invalid_request_error", "source must be text, url or pdf")
		return
	}
	if payload.Title == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
		return
	}
	if payload.Source == "text" && strings.TrimSpace(payload.Content) == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "content is required for text submissions")
		return
	}
	if payload.Source == "url" && payload.URL == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "url is required for url submissions")
		return
	}
	if payload.Source == "pdf" && payload.Path == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "path is required for pdf submissions")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to create job payload: %v", err)
		return
	}
	job := storage.Job{
		ID:          uuid.New().String(),
		Type:        ingest.JobType,
		PayloadJSON: string(body),
	}
	if err := s.deps.Store.EnqueueJob(job); err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to enqueue job: %v", err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":     job.ID,
		"status": "queued",
	})
}
