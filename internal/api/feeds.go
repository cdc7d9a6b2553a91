package api

import (
	"net/http"
)

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Feeds.News())
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = r.URL.Query().Get("location")
	}
	writeJSON(w, http.StatusOK, s.deps.Feeds.WeatherFor(r.Context(), region))
}
