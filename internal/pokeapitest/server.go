// Package pokeapitest provides an in-process fake of the PokeAPI endpoints the
// catalog consumes, with per-path status overrides, latency injection and
// call counters.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/go-chi/chi/v5"
)

const APIPrefix = "/api/v2"

// Server is a fake PokeAPI backed by in-memory fixtures
type Server struct {
	server *httptest.Server

	mu        sync.Mutex
	pokemon   map[int]pokeapi.Pokemon
	species   map[int]pokeapi.Species
	chains    map[int]pokeapi.EvolutionChain
	abilities map[string]pokeapi.Ability
	index     []pokeapi.NamedResource

	status map[string]int
	delay  map[string]time.Duration
	calls  map[string]int
	total  int
}

// NewServer starts a fake seeded with the default fixtures
func NewServer() *Server {
	s := NewEmptyServer()
	s.seed()
	return s
}

// NewEmptyServer starts a fake with no fixtures; every resource is a 404
func NewEmptyServer() *Server {
	s := &Server{
		pokemon:   make(map[int]pokeapi.Pokemon),
		species:   make(map[int]pokeapi.Species),
		chains:    make(map[int]pokeapi.EvolutionChain),
		abilities: make(map[string]pokeapi.Ability),
		status:    make(map[string]int),
		delay:     make(map[string]time.Duration),
		calls:     make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.intercept)
	r.Get(APIPrefix+"/pokemon/", s.handlePage)
	r.Get(APIPrefix+"/pokemon/{id}/", s.handlePokemon)
	r.Get(APIPrefix+"/pokemon-species/{id}/", s.handleSpecies)
	r.Get(APIPrefix+"/evolution-chain/{id}/", s.handleChain)
	r.Get(APIPrefix+"/ability/{name}/", s.handleAbility)

	s.server = httptest.NewServer(r)
	return s
}

func (s *Server) Close() {
	s.server.Close()
}

// BaseURL is the API root to hand to pokeapi.WithBaseURL
func (s *Server) BaseURL() string {
	return s.server.URL + APIPrefix
}

// Ref builds the absolute URL of a resource, e.g. Ref("ability", "overgrow")
func (s *Server) Ref(kind string, id any) string {
	return fmt.Sprintf("%s/%s/%v/", s.BaseURL(), kind, id)
}

func PokemonPath(id int) string { return fmt.Sprintf("%s/pokemon/%d/", APIPrefix, id) }
func SpeciesPath(id int) string { return fmt.Sprintf("%s/pokemon-species/%d/", APIPrefix, id) }
func ChainPath(id int) string { return fmt.Sprintf("%s/evolution-chain/%d/", APIPrefix, id) }
func AbilityPath(name string) string { return fmt.Sprintf("%s/ability/%s/", APIPrefix, name) }

const PagePath = APIPrefix + "/pokemon/"

// SetStatus forces every request to path to answer with code.
// A zero code removes the override.
func (s *Server) SetStatus(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == 0 {
		delete(s.status, path)
		return
	}
	s.status[path] = code
}

// SetDelay holds every response for path by d
func (s *Server) SetDelay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay[path] = d
}

// Calls reports how many requests reached path
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// TotalCalls reports how many requests reached the server
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ResetCalls zeroes the call counters
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
	s.total = 0
}

// AddPokemon stores p and appends it to the paged index
func (s *Server) AddPokemon(p pokeapi.Pokemon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pokemon[p.ID]; !exists {
		s.index = append(s.index, pokeapi.NamedResource{Name: p.Name, URL: s.Ref("pokemon", p.ID)})
	}
	s.pokemon[p.ID] = p
}

func (s *Server) AddSpecies(sp pokeapi.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.species[sp.ID] = sp
}

func (s *Server) AddChain(c pokeapi.EvolutionChain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chains[c.ID] = c
}

func (s *Server) AddAbility(a pokeapi.Ability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abilities[a.Name] = a
}

// intercept counts the call, then applies any delay and status override
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		s.total++
		code := s.status[r.URL.Path]
		delay := s.delay[r.URL.Path]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if code != 0 {
			if code == http.StatusTooManyRequests {
				w.Header().Set("Retry-After", "2")
			}
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	count := len(s.index)
	start := min(max(offset, 0), count)
	end := min(start+limit, count)
	results := append([]pokeapi.NamedResource{}, s.index[start:end]...)
	s.mu.Unlock()

	writeJSON(w, pokeapi.Page{Count: count, Results: results})
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	p, ok := s.pokemon[id]
	s.mu.Unlock()
	respond(w, p, ok)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	sp, ok := s.species[id]
	s.mu.Unlock()
	respond(w, sp, ok)
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s.mu.Lock()
	c, ok := s.chains[id]
	s.mu.Unlock()
	respond(w, c, ok)
}

func (s *Server) handleAbility(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	a, ok := s.abilities[name]
	s.mu.Unlock()
	respond(w, a, ok)
}

func respond(w http.ResponseWriter, v any, ok bool) {
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding fixture: %v", err)
	}
}
