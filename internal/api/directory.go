package api

import (
	"net/http"

	"github.com/agriconnect/agriconnect/internal/catalog"
)

// handleDirectory serves one people/vendor directory through the shared
// engine: filter from the page's query params, sort, then project for the
// requested view mode.
func (s *Server) handleDirectory(source catalog.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := source.Records(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load directory: %v", err)
			return
		}

		filtered := filterFromQuery(r).Apply(records)
		sorted := catalog.SortRecords(filtered, catalog.ParseSortKey(r.URL.Query().Get("sort")))
		mode := catalog.ParseViewMode(r.URL.Query().Get("view"))

		writeJSON(w, http.StatusOK, viewResponse(sorted, mode))
	}
}
