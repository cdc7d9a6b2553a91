package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/storage"
)

type contextKey string

const userIDKey contextKey = "user_id"

// sessionAuth requires a valid bearer session token. Expired and unknown
// tokens both get 401; clients react by clearing their stored session.
func (s *Server) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or missing bearer token")
			return
		}

		sess, err := s.deps.Store.GetSession(auth[len(prefix):])
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusUnauthorized, "authentication_error", "session expired or revoked, log in again")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to check session: %v", err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestUserID returns the authenticated user's ID, or 0 when the request
// came through an unauthenticated route.
func requestUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
