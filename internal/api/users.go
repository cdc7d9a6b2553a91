package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriconnect/agriconnect/internal/storage"
)

const sessionTTL = 24 * time.Hour

// Pre-computed bcrypt hash of an arbitrary string (cost=10) for timing-equalized comparisons.
// Any valid bcrypt hash works; value choice is irrelevant as long as it's valid.
var dummyBcryptHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOa5hnhtNGRjukDWO2xzg3sjQTL1dDQ2u")

type registerRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Phone           string   `json:"phone"`
	UserType        string   `json:"userType"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRate      float64  `json:"hourlyRate"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "password must be at least 6 characters")
		return
	}
	role := strings.ToUpper(req.UserType)
	switch role {
	case storage.RoleFarmer, storage.RoleLabour, storage.RoleAdmin:
	default:
		httpError(w, http.StatusBadRequest, "invalid_request_error", "userType must be FARMER, LABOUR or ADMIN")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to hash password: %v", err)
		return
	}

	user, err := s.deps.Store.CreateUser(storage.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    string(hash),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		UserType:        role,
		Location:        req.Location,
		Bio:             req.Bio,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
		Availability:    "AVAILABLE",
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			httpError(w, http.StatusConflict, "invalid_request_error", "%v", err)
			return
		}
		httpError(w, http.StatusInternalServerError, "api_error", "failed to create user: %v", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin accepts the urlencoded form the web client sends as well as a
// JSON body. Success returns the session token plus the user snapshot.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var email, password string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		email, password = req.Email, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid form body: %v", err)
			return
		}
		email = r.PostFormValue("email")
		password = r.PostFormValue("password")
	}

	user, err := s.deps.Store.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, storage.ErrNotFound) {
		//nolint:errcheck // Intentionally ignore error for timing equalization to prevent timing attacks
		_ = bcrypt.CompareHashAndPassword(dummyBcryptHash, []byte(password))
		httpError(w, http.StatusUnauthorized, "authentication_error", "invalid email or password")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to look up user: %v", err)
		return
	}
	if !user.IsActive {
		//nolint:errcheck // Intentionally ignore error for timing equalization to prevent timing attacks
		_ = bcrypt.CompareHashAndPassword(dummyBcryptHash, []byte(password))
		httpError(w, http.StatusUnauthorized, "authentication_error", "account is deactivated")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		httpError(w, http.StatusUnauthorized, "authentication_error", "invalid email or password")
		return
	}

	now := time.Now().UTC()
	sess := storage.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.deps.Store.CreateSession(sess); err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to create session: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  sess.Token,
		"user":   user,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid user id")
		return
	}

	user, err := s.deps.Store.GetUser(id)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := s.deps.Store.GetUserByEmail(chi.URLParam(r, "email"))
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsersByType(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Store.ListUsersByType(strings.ToUpper(chi.URLParam(r, "type")))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list users: %v", err)
		return
	}
	if users == nil {
		users = []storage.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListUsersByLocationAndType(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Store.ListUsersByLocationAndType(
		chi.URLParam(r, "loc"),
		strings.ToUpper(chi.URLParam(r, "type")),
	)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list users: %v", err)
		return
	}
	if users == nil {
		users = []storage.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid user id")
		return
	}
	if requestUserID(r) != id {
		httpError(w, http.StatusForbidden, "authorization_error", "cannot edit another user's profile")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var u storage.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	updated, err := s.deps.Store.UpdateUserProfile(id, u)
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to update profile: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid user id")
		return
	}
	if requestUserID(r) != id {
		httpError(w, http.StatusForbidden, "authorization_error", "cannot deactivate another user")
		return
	}

	if err := s.deps.Store.DeactivateUser(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		httpError(w, http.StatusInternalServerError, "api_error", "failed to deactivate user: %v", err)
		return
	}

	// Revoke every outstanding session for the account.
	if err := s.deps.Store.DeleteUserSessions(id); err != nil {
		s.logger.Warn("failed to revoke sessions", "user_id", id, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
