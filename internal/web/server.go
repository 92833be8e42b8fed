package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/grades"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the web rendition
type Options struct {
	Profile    portfolio.Profile
	FlashDelay time.Duration
	Logger     *zap.Logger
}

// Server renders the card as a server-side HTML page. Every visitor shares
// one card view.
type Server struct {
	service    *portfolio.Service
	profile    portfolio.Profile
	flashDelay time.Duration
	logger     *zap.Logger
	tmpl       *template.Template
	now        func() time.Time

	mu   sync.Mutex
	card portfolio.View
}

// NewServer creates the web rendition over service
func NewServer(service *portfolio.Service, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FlashDelay <= 0 {
		opts.FlashDelay = 3 * time.Second
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		service:    service,
		profile:    opts.Profile,
		flashDelay: opts.FlashDelay,
		logger:     opts.Logger,
		tmpl:       tmpl,
		now:        time.Now,
	}, nil
}

// Router creates the chi router with all routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(s.logger))
	r.Use(Recovery(s.logger))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/notas", func(r chi.Router) {
		r.Post("/adicionar", s.handleAdd)
		r.Post("/editar", s.handleEdit)
		r.Post("/excluir", s.handleDelete)
	})
	r.Post("/alerta/ok", s.handleDismiss)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/card", s.handleCard)
	})

	return r
}

// handleIndex renders the card. Grades are fetched on the first visit and
// whenever ?recarregar is present; a failed fetch keeps the current state.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	loaded := s.card.Loaded()
	s.mu.Unlock()

	if !loaded || q.Has("recarregar") {
		if set, err := s.service.Load(r.Context()); err == nil {
			s.mu.Lock()
			s.card.ReplaceGrades(set)
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	data := s.buildPage(q)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "card.html", data); err != nil {
		s.logger.Error("failed to render card", zap.Error(err))
	}
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	in := portfolio.AddInput{
		Category: r.PostFormValue("tipo"),
		Subject:  r.PostFormValue("disciplina"),
		Value:    r.PostFormValue("valor"),
	}

	if set, err := s.service.Add(r.Context(), in); err == nil {
		s.mu.Lock()
		s.card.ReplaceGrades(set)
		s.card.SetFlash(portfolio.MsgAdded, s.now(), s.flashDelay)
		s.mu.Unlock()
	}

	redirectToForm(w, r, portfolio.FormAdd, in.Category, in.Subject)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	in := portfolio.EditInput{
		Category: r.PostFormValue("tipo"),
		Subject:  r.PostFormValue("disciplina"),
		OldValue: r.PostFormValue("valorAntigo"),
		NewValue: r.PostFormValue("novoValor"),
	}

	if set, err := s.service.Edit(r.Context(), in); err == nil {
		s.mu.Lock()
		s.card.ReplaceGrades(set)
		s.card.SetFlash(portfolio.MsgEdited, s.now(), s.flashDelay)
		s.mu.Unlock()
	}

	redirectToForm(w, r, portfolio.FormEdit, in.Category, in.Subject)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	in := portfolio.DeleteInput{
		Category: r.PostFormValue("tipo"),
		Subject:  r.PostFormValue("disciplina"),
		Value:    r.PostFormValue("valor"),
	}

	req, err := s.service.Delete(r.Context(), in)

	s.mu.Lock()
	if err != nil {
		s.card.ShowAlert(portfolio.MsgDeleteFailed, true)
	} else {
		s.card.RemoveScore(req.Category, req.Subject, req.Value)
		s.card.ShowAlert(portfolio.MsgDeleted, false)
	}
	s.mu.Unlock()

	redirectToForm(w, r, portfolio.FormDelete, in.Category, in.Subject)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.card.DismissAlert()
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// cardResponse is the JSON shape of GET /api/card
type cardResponse struct {
	Profile portfolio.Profile `json:"profile"`
	Grades  *grades.Set       `json:"grades"`
	Loaded  bool              `json:"loaded"`
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := cardResponse{Profile: s.profile, Loaded: s.card.Loaded()}
	if s.card.Grades != nil {
		set := s.card.Grades.Clone()
		resp.Grades = &set
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// redirectToForm answers a form post with 303 back to the card, keeping the
// form's category and subject picked.
func redirectToForm(w http.ResponseWriter, r *http.Request, kind portfolio.FormKind, category, subject string) {
	q := url.Values{}
	q.Set("form", string(kind))
	if category != "" {
		q.Set("tipo", category)
	}
	if subject != "" {
		q.Set("disciplina", subject)
	}
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
