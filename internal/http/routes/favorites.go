package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/pokedex/internal/favorites"
)

type addFavoriteRequest struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

type addFavoriteResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id,omitempty"`
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.Favorites.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list favorites")
		writeError(w, r, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}
	if favs == nil {
		favs = []favorites.Favorite{}
	}
	writeJSON(w, r, http.StatusOK, favs)
}

// addFavorite stores the entry first and fills in a missing name afterwards,
// inline or through the worker when one is configured.
func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == nil || *req.ID == 0 {
		writeError(w, r, http.StatusBadRequest, "Pokemon ID is required")
		return
	}
	id := *req.ID
	if id < 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid Pokemon ID")
		return
	}

	err := s.Favorites.Add(r.Context(), favorites.Favorite{ID: id, Name: req.Name})
	switch {
	case errors.Is(err, favorites.ErrExists):
		writeError(w, r, http.StatusBadRequest, "Pokemon is already a favorite")
		return
	case err != nil:
		log.Error().Err(err).Int("id", id).Msg("save favorite")
		writeError(w, r, http.StatusInternalServerError, "Failed to save favorites")
		return
	}

	resp := addFavoriteResponse{Message: "Added to favorites"}
	if req.Name == "" {
		if s.Jobs != nil {
			taskID, err := s.Jobs.EnqueueResolveName(r.Context(), id)
			if err != nil {
				log.Warn().Err(err).Int("id", id).Msg("enqueue name resolution")
			}
			resp.TaskID = taskID
		} else {
			s.resolveName(r, id)
		}
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

// resolveName looks the name up inline. The favorite is kept without a name
// when the lookup fails.
func (s *Server) resolveName(r *http.Request, id int) {
	log := hlog.FromRequest(r)
	name, err := s.Catalog.LookupName(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Int("id", id).Msg("lookup favorite name")
		return
	}
	if err := s.Favorites.SetName(r.Context(), id, name); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("set favorite name")
	}
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid Pokemon ID")
		return
	}

	err = s.Favorites.Remove(r.Context(), id)
	switch {
	case errors.Is(err, favorites.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Pokemon not found in favorites")
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Int("id", id).Msg("remove favorite")
		writeError(w, r, http.StatusInternalServerError, "Failed to remove from favorites")
	default:
		writeJSON(w, r, http.StatusOK, messageBody{Message: "Removed from favorites"})
	}
}
