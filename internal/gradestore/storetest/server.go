// Package storetest provides an in-memory grade store that speaks the same
// REST contract as the real backend, for use in tests.
package storetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio-cards/gradecard/internal/grades"
)

// Request is a recorded call made against the fake store
type Request struct {
	Method    string
	CardID    string
	RequestID string
	Body      map[string]interface{}
}

// Store is an in-memory grade store keyed by card id
type Store struct {
	mu       sync.Mutex
	cards    map[string]grades.Set
	requests []Request
	failNext int
	failBody string
}

// New creates a store where card "4" holds set
func New(set grades.Set) *Store {
	return &Store{cards: map[string]grades.Set{"4": set.Clone()}}
}

// Serve starts an httptest server for the store. The server is closed when
// the test ends.
func Serve(t interface {
	Helper()
	Cleanup(func())
}, set grades.Set) (*Store, *httptest.Server) {
	t.Helper()
	store := New(set)
	srv := httptest.NewServer(store.Router())
	t.Cleanup(srv.Close)
	return store, srv
}

// Router returns the chi router exposing /api/base-notas/{card}
func (s *Store) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/base-notas/{card}", func(r chi.Router) {
		r.Use(s.record)
		r.Use(s.injectFailure)
		r.Get("/", s.list)
		r.Post("/", s.add)
		r.Put("/", s.update)
		r.Delete("/", s.remove)
	})
	return r
}

// FailNext makes the next request fail with the given status and body
func (s *Store) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
	s.failBody = body
}

// Requests returns every request received so far
func (s *Store) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Set returns the current grades of a card
func (s *Store) Set(cardID string) grades.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards[cardID].Clone()
}

// Replace overwrites the grades of a card
func (s *Store) Replace(cardID string, set grades.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[cardID] = set.Clone()
}

type addBody struct {
	Tipo       string   `json:"tipo"`
	Disciplina string   `json:"disciplina"`
	Valor      *float64 `json:"valor"`
}

type updateBody struct {
	Tipo        string   `json:"tipo"`
	Disciplina  string   `json:"disciplina"`
	ValorAntigo *float64 `json:"valorAntigo"`
	NovoValor   *float64 `json:"novoValor"`
}

func (s *Store) list(w http.ResponseWriter, r *http.Request) {
	card := chi.URLParam(r, "card")
	s.mu.Lock()
	set, ok := s.cards[card]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "card not found")
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Store) add(w http.ResponseWriter, r *http.Request) {
	var body addBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Valor == nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mutate(w, r, body.Tipo, body.Disciplina, func(scores []float64) ([]float64, bool) {
		return append(scores, *body.Valor), true
	})
}

func (s *Store) update(w http.ResponseWriter, r *http.Request) {
	var body updateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ValorAntigo == nil || body.NovoValor == nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mutate(w, r, body.Tipo, body.Disciplina, func(scores []float64) ([]float64, bool) {
		for i, v := range scores {
			if v == *body.ValorAntigo {
				scores[i] = *body.NovoValor
				return scores, true
			}
		}
		return scores, false
	})
}

func (s *Store) remove(w http.ResponseWriter, r *http.Request) {
	var body addBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Valor == nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mutate(w, r, body.Tipo, body.Disciplina, func(scores []float64) ([]float64, bool) {
		for i, v := range scores {
			if v == *body.Valor {
				return append(scores[:i], scores[i+1:]...), true
			}
		}
		return scores, false
	})
}

// mutate applies fn to the scores of (tipo, disciplina) and answers with the new set
func (s *Store) mutate(w http.ResponseWriter, r *http.Request, tipo, disciplina string, fn func([]float64) ([]float64, bool)) {
	category, err := grades.ParseCategory(tipo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card := chi.URLParam(r, "card")

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.cards[card]
	if !ok {
		writeError(w, http.StatusNotFound, "card not found")
		return
	}
	scores, ok := set.Scores(category, disciplina)
	if !ok {
		writeError(w, http.StatusNotFound, "subject not found")
		return
	}
	updated, ok := fn(scores)
	if !ok {
		writeError(w, http.StatusNotFound, "score not found")
		return
	}

	s.cards[card] = set.With(category, disciplina, updated...)
	writeJSON(w, http.StatusOK, s.cards[card])
}

// record keeps a copy of every request, decoding its JSON body when present
func (s *Store) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method:    r.Method,
			CardID:    chi.URLParam(r, "card"),
			RequestID: r.Header.Get("X-Request-ID"),
		}

		var raw json.RawMessage
		if r.Body != nil {
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				_ = json.Unmarshal(raw, &req.Body)
			}
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// injectFailure answers with the configured failure once
func (s *Store) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, body := s.failNext, s.failBody
		s.failNext, s.failBody = 0, ""
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
