package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/briangreenhill/pokedex/internal/catalog"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (s *Server) listPokemon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := intParam(q.Get("limit"), defaultLimit)
	if !ok || limit < 1 || limit > maxLimit {
		writeError(w, r, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxLimit))
		return
	}
	offset, ok := intParam(q.Get("offset"), 0)
	if !ok || offset < 0 {
		writeError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	list, err := s.Catalog.GetList(r.Context(), offset, limit)
	if err != nil {
		writeCatalogError(w, r, err, "Failed to fetch Pokemon data. Please try again later.")
		return
	}

	// the search filter applies to the aggregated page and never to cache keys
	if term := strings.ToLower(strings.TrimSpace(q.Get("q"))); term != "" {
		filtered := make([]catalog.EntitySummary, 0, len(list))
		for _, e := range list {
			if strings.Contains(strings.ToLower(e.Name), term) {
				filtered = append(filtered, e)
			}
		}
		list = filtered
	}

	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid Pokemon ID")
		return
	}

	detail, err := s.Catalog.GetDetail(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err, "Failed to fetch Pokemon details. Please try again later.")
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func intParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
