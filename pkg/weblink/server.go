// Package weblink is the HTTP face of the link domain. It serves the
// site-association files that iOS and Android fetch from
// /.well-known/, plus a resolve preview endpoint for debugging how a
// path maps onto the route table. Mount the handler into any chi or
// stdlib mux fronting the domain.
package weblink

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wayfind-dev/wayfind/pkg/deeplink"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Server serves the link-domain endpoints for one registry.
type Server struct {
	registry  *router.Registry
	cfg       deeplink.AssociationConfig
	logger    *slog.Logger
	inspector http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithInspector mounts a dev inspector WebSocket handler at
// /_wayfind/inspector.
func WithInspector(handler http.Handler) Option {
	return func(s *Server) {
		s.inspector = handler
	}
}

// New creates a link-domain server over the given registry.
func New(registry *router.Registry, cfg deeplink.AssociationConfig, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving:
//
//	GET /.well-known/apple-app-site-association
//	GET /.well-known/assetlinks.json
//	GET /_wayfind/resolve?path=/users/42
//	GET /_wayfind/inspector            (when configured)
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/.well-known/apple-app-site-association", s.handleAppleAssociation)
	r.Get("/.well-known/assetlinks.json", s.handleAssetLinks)
	r.Get("/_wayfind/resolve", s.handleResolve)
	if s.inspector != nil {
		r.Handle("/_wayfind/inspector", s.inspector)
	}
	return r
}

func (s *Server) handleAppleAssociation(w http.ResponseWriter, r *http.Request) {
	doc, err := deeplink.AppleSiteAssociation(s.registry, s.cfg)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

func (s *Server) handleAssetLinks(w http.ResponseWriter, r *http.Request) {
	doc, err := deeplink.AssetLinks(s.cfg)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(doc)
}

// resolveResponse is the body of the resolve preview endpoint.
type resolveResponse struct {
	OK      bool           `json:"ok"`
	RouteID string         `json:"routeId,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	Path    string         `json:"path,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, resolveResponse{
			OK:    false,
			Error: "path query parameter is required",
		})
		return
	}

	res, err := s.registry.Resolve(path)
	if err != nil {
		s.logger.Debug("resolve preview miss", "path", path, "error", err)
		writeJSON(w, statusForResolveError(err), resolveResponse{
			OK:    false,
			Error: err.Error(),
		})
		return
	}

	// Echo the canonical path so callers see the round trip.
	canonical, err := s.registry.ToPath(res)
	if err != nil {
		canonical = ""
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		OK:      true,
		RouteID: res.RouteID,
		Params:  res.Params,
		Path:    canonical,
	})
}

// statusForResolveError maps resolver errors onto HTTP status codes.
func statusForResolveError(err error) int {
	var missing *router.MissingParamError
	var mismatch *router.ParamTypeMismatchError
	switch {
	case errors.Is(err, router.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, router.ErrMalformedPath):
		return http.StatusBadRequest
	case errors.As(err, &missing), errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
