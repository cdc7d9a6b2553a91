package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agriconnect/agriconnect/internal/storage"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.deps.Store.ListNotifications(requestUserID(r))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list notifications: %v", err)
		return
	}
	if notifications == nil {
		notifications = []storage.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid notification id")
		return
	}

	err = s.deps.Store.MarkNotificationRead(id, requestUserID(r))
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "notification not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to mark notification: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid notification id")
		return
	}

	err = s.deps.Store.DeleteNotification(id, requestUserID(r))
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "notification not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to delete notification: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
