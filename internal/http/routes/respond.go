package routes

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/pokedex/internal/catalog"
)

const (
	msgRateLimited = "Rate limit exceeded. Please try again later."
	msgNotFound    = "Pokemon not found"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// writeJSON encodes v and tags successful GET responses with a strong ETag.
// A matching If-None-Match yields 304 with no body.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if status == http.StatusOK && r.Method == http.MethodGet {
		etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
		w.Header().Set("ETag", etag)
		if etagMatch(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write response")
	}
}

func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorBody{Error: msg})
}

// writeCatalogError maps the catalog taxonomy onto status codes. fallback is
// the body for anything that is not the caller's fault.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidArgument):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, r, http.StatusNotFound, msgNotFound)
	case errors.Is(err, catalog.ErrRateLimited):
		if d := catalog.RetryAfter(err); d > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
		}
		writeError(w, r, http.StatusTooManyRequests, msgRateLimited)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("catalog request failed")
		writeError(w, r, http.StatusInternalServerError, fallback)
	}
}
