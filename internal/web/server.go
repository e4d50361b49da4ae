// Package web exposes the placeholder engine over a small JSON API, used
// for debugging boards and for host UIs that keep their layout out of
// process.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vietanhdev/kirapilot-dnd/pkg/board"
	"github.com/vietanhdev/kirapilot-dnd/pkg/collision"
	"github.com/vietanhdev/kirapilot-dnd/pkg/errors"
	"github.com/vietanhdev/kirapilot-dnd/pkg/geom"
	"github.com/vietanhdev/kirapilot-dnd/pkg/placeholder"
)

// Server hosts the debug API. Every request carries its own board fixture,
// so the server holds no per-board state and scales trivially.
type Server struct {
	logger *log.Logger
	router chi.Router
}

// NewServer creates the server and mounts its routes.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/placeholder", s.handlePlaceholder)
		r.Post("/collision", s.handleCollision)
		r.Post("/validate", s.handleValidate)
	})

	s.router = r
	return s
}

// Handler returns the mounted routes.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// detectRequest is the shared body for placeholder and collision queries.
type detectRequest struct {
	Board     board.Fixture `json:"board"`
	Pointer   geom.Point    `json:"pointer"`
	DraggedID string        `json:"draggedId"`
}

// placeholderResponse is the body for /v1/placeholder.
type placeholderResponse struct {
	Position   *placeholder.Position `json:"position"`
	ColumnID   string                `json:"columnId,omitempty"`
	SameColumn bool                  `json:"sameColumn"`
	Duration   string                `json:"duration"`
}

// collisionResponse is the body for /v1/collision.
type collisionResponse struct {
	Matches []collision.Match `json:"matches"`
}

// validateRequest is the body for /v1/validate.
type validateRequest struct {
	Board    board.Fixture         `json:"board"`
	Position *placeholder.Position `json:"position"`
}

// validateResponse is the body for /v1/validate.
type validateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// errorBody is the envelope for all error responses.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlaceholder computes the placeholder position for a pointer over a
// board carried in the request.
func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	req, root, ok := s.decodeDetect(w, r)
	if !ok {
		return
	}

	start := time.Now()
	matches := detect(r.Context(), root, req)
	elapsed := time.Since(start)

	resp := placeholderResponse{Duration: elapsed.String()}
	if len(matches) > 0 {
		resp.ColumnID = matches[0].ID
		if matches[0].Data != nil {
			resp.Position = matches[0].Data.Position
			resp.SameColumn = matches[0].Data.SameColumn
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCollision returns the raw match list, mirroring what a pluggable
// drag framework would receive.
func (s *Server) handleCollision(w http.ResponseWriter, r *http.Request) {
	req, root, ok := s.decodeDetect(w, r)
	if !ok {
		return
	}

	matches := detect(r.Context(), root, req)
	if matches == nil {
		matches = []collision.Match{}
	}
	writeJSON(w, http.StatusOK, collisionResponse{Matches: matches})
}

// handleValidate checks a previously computed position against a board,
// catching positions that went stale after a board mutation.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	root, err := req.Board.Build()
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := validateResponse{Valid: true}
	if err := placeholder.Validate(req.Position, root); err != nil {
		resp.Valid = false
		resp.Reason = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeDetect decodes the shared request body and builds the board tree.
func (s *Server) decodeDetect(w http.ResponseWriter, r *http.Request) (detectRequest, board.Element, bool) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return req, nil, false
	}
	root, err := req.Board.Build()
	if err != nil {
		s.writeError(w, err)
		return req, nil, false
	}
	return req, root, true
}

// detect runs one detection pass over a freshly built board. Each request
// gets its own adapter so per-board caches never outlive the request.
func detect(ctx context.Context, root board.Element, req detectRequest) []collision.Match {
	adapter := collision.NewAdapter(nil, nil)
	return adapter.Detect(ctx, collision.Args{
		Active:     collision.Active{ID: req.DraggedID},
		Droppables: collision.DroppablesFrom(root),
		Pointer:    req.Pointer,
	})
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidBoard,
		errors.ErrCodeInvalidPointer, errors.ErrCodeInvalidPosition:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeColumnNotFound, errors.ErrCodeTaskNotFound:
		status = http.StatusNotFound
	}

	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)

	s.logger.Warn("request failed", "status", status, "err", err)
	writeJSON(w, status, body)
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
