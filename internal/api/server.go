// Package api exposes the read-side search endpoint. It is deliberately
// thin: the live index is resolved through the pointer store on every
// request, so a rebuild finishing mid-flight is picked up by the very next
// request.
package api

import (
	"github.com/go-json-experiment/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leafdex/leafdex-server/internal/errors"
	"github.com/leafdex/leafdex-server/internal/search"
)

// Server handles search API requests.
type Server struct {
	resolver *search.Resolver
	logger   *slog.Logger
}

// NewServer creates an API server resolving indexes through resolver.
func NewServer(resolver *search.Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{resolver: resolver, logger: logger}
}

// Routes returns the chi router for the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.DefaultParams()
	params.Query = q.Get("q")
	params.Type = q.Get("type")
	params.Game = q.Get("game")
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 100 {
			s.writeError(w, errors.Validation("limit must be an integer between 1 and 100"))
			return
		}
		params.Limit = n
	}
	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			s.writeError(w, errors.Validation("offset must be a non-negative integer"))
			return
		}
		params.Offset = n
	}

	if params.Query == "" {
		s.writeError(w, errors.Validation("query parameter q is required"))
		return
	}

	idx, err := s.resolver.Resolve(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := idx.Query(r.Context(), params)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := map[string]string{"error": "internal error"}

	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		status = domainErr.HTTPStatus()
		body["error"] = domainErr.Message
		body["code"] = string(domainErr.Code)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("search request failed", "error", err)
	}
	s.writeJSON(w, status, body)
}
