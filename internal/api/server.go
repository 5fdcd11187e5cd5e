// Package api exposes closure resolution over HTTP.
//
// The server wraps the same resolver the CLI uses. Endpoints:
//
//	GET  /healthz     liveness and build info
//	POST /v1/closure  resolve the transitive closure of descriptor files
//	POST /v1/coords   flattened coordinate listing of one descriptor file
//
// Errors are returned as JSON carrying the structured error code, so API
// consumers can distinguish a malformed descriptor from an unresolvable
// coordinate without string matching.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/varun-a1/odlparent/pkg/buildinfo"
	"github.com/varun-a1/odlparent/pkg/closure"
	"github.com/varun-a1/odlparent/pkg/coord"
	"github.com/varun-a1/odlparent/pkg/errors"
	"github.com/varun-a1/odlparent/pkg/feature"
)

// Server handles HTTP requests for closure resolution.
type Server struct {
	resolver *closure.Resolver
	logger   *log.Logger
	router   chi.Router
}

// NewServer creates a Server around the given resolver.
// A nil logger falls back to the default logger.
func NewServer(resolver *closure.Resolver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{resolver: resolver, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/closure", s.handleClosure)
	r.Post("/v1/coords", s.handleCoords)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestID tags every request with a unique ID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// closureRequest names the descriptor files to start from.
type closureRequest struct {
	Paths []string `json:"paths"`
}

// descriptorInfo summarizes one discovered descriptor.
type descriptorInfo struct {
	Name         string `json:"name"`
	Repositories int    `json:"repositories"`
	Features     int    `json:"features"`
}

// closureResponse lists the discovered descriptors and every visited
// repository coordinate in discovery order.
type closureResponse struct {
	Descriptors []descriptorInfo `json:"descriptors"`
	Visited     []string         `json:"visited"`
}

func (s *Server) handleClosure(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no descriptor paths given"))
		return
	}

	roots := make([]*feature.Features, 0, len(req.Paths))
	for _, p := range req.Paths {
		f, err := feature.Read(p)
		if err != nil {
			writeError(w, err)
			return
		}
		roots = append(roots, f)
	}

	visited := coord.NewSet()
	found, err := s.resolver.ResolveAll(r.Context(), roots, visited)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := closureResponse{
		Descriptors: make([]descriptorInfo, 0, len(found)),
		Visited:     visited.Values(),
	}
	for _, f := range found {
		resp.Descriptors = append(resp.Descriptors, descriptorInfo{
			Name:         f.Name,
			Repositories: len(f.Repository),
			Features:     len(f.Feature),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// coordsRequest names the descriptor file to flatten.
type coordsRequest struct {
	Path string `json:"path"`
}

// coordsResponse lists the descriptor's referenced coordinates.
type coordsResponse struct {
	Name        string   `json:"name"`
	Coordinates []string `json:"coordinates"`
}

func (s *Server) handleCoords(w http.ResponseWriter, r *http.Request) {
	var req coordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	if req.Path == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no descriptor path given"))
		return
	}

	f, err := feature.Read(req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	coords, err := f.Coords()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, coordsResponse{
		Name:        f.Name,
		Coordinates: coords.Values(),
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	resp.Error.Message = errors.UserMessage(err)
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, statusFor(errors.GetCode(err)), resp)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMalformedLocation, errors.ErrCodeMalformedDescriptor:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUnresolvableCoordinate:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
