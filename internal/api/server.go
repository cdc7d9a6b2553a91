// Package api exposes the marketplace over REST: accounts and sessions,
// the task board, the fixture-backed directories, announcements,
// notifications, the advisory endpoints, and the news/weather panels.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agriconnect/agriconnect/internal/assist"
	"github.com/agriconnect/agriconnect/internal/catalog"
	"github.com/agriconnect/agriconnect/internal/feeds"
	"github.com/agriconnect/agriconnect/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Chatter answers advisory questions.
type Chatter interface {
	Ask(ctx context.Context, question string) (string, error)
	Configured() bool
}

// Recommender scores marketplace matches for a user.
type Recommender interface {
	Recommend(ctx context.Context, userID int64) ([]assist.Recommendation, error)
}

// FeedReader serves cached news and weather snapshots.
type FeedReader interface {
	News() []feeds.NewsItem
	WeatherFor(ctx context.Context, region string) *feeds.Weather
}

// Deps carries everything the handler tree needs.
type Deps struct {
	Store       *storage.Store
	Chat        Chatter
	Recommender Recommender
	Feeds       FeedReader
	Labour      catalog.Source
	Tractors    catalog.Source
	Middlemen   catalog.Source
	Logger      *slog.Logger
}

// Server is the assembled handler state.
type Server struct {
	deps   Deps
	logger *slog.Logger
}

// NewHandler builds the chi router for the whole REST surface.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &Server{deps: deps, logger: deps.Logger}

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public surface: registration, login and all read-only browsing.
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.Get("/users/{id}", s.handleGetUser)
		r.Get("/users/email/{email}", s.handleGetUserByEmail)
		r.Get("/users/type/{type}", s.handleListUsersByType)
		r.Get("/users/location/{loc}/type/{type}", s.handleListUsersByLocationAndType)

		r.Get("/tasks", s.handleListTasks)
		r.Get("/tasks/{id}", s.handleGetTask)
		r.Get("/tasks/farmer/{farmerId}", s.handleListTasksByFarmer)

		r.Get("/labour", s.handleDirectory(deps.Labour))
		r.Get("/tractors", s.handleDirectory(deps.Tractors))
		r.Get("/middlemen", s.handleDirectory(deps.Middlemen))

		r.Get("/announcements", s.handleListAnnouncements)
		r.Get("/announcements/{id}", s.handleGetAnnouncement)

		r.Get("/news", s.handleNews)
		r.Get("/weather", s.handleWeather)

		// Everything that mutates or addresses an identity needs a session.
		r.Group(func(r chi.Router) {
			r.Use(s.sessionAuth)

			r.Put("/users/{id}/profile", s.handleUpdateProfile)
			r.Delete("/users/{id}", s.handleDeactivateUser)

			r.Post("/tasks", s.handleCreateTask)
			r.Put("/tasks/{id}", s.handleUpdateTask)
			r.Delete("/tasks/{id}", s.handleDeleteTask)

			r.Post("/announcements", s.handleCreateAnnouncement)
			r.Post("/announcements/ingest", s.handleIngestAnnouncement)

			r.Get("/notifications", s.handleListNotifications)
			r.Put("/notifications/{id}/read", s.handleMarkNotificationRead)
			r.Delete("/notifications/{id}", s.handleDeleteNotification)

			r.Post("/ai/chat", s.handleChat)
			r.Get("/ai/recommendations/{userId}", s.handleRecommendations)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
