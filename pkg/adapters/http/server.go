package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hashpad/turing"
	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/presentation/graph"
	"github.com/hashpad/turing/pkg/domain"
	"github.com/hashpad/turing/pkg/observability"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/schema"
	"github.com/hashpad/turing/pkg/session"
)

// CreateRequest is the body of POST /sessions.
// Exactly one of Preset or Definition must be set; Tape overrides the initial tape of either.
type CreateRequest struct {
	Preset     string             `json:"preset,omitempty"`
	Definition *schema.Definition `json:"definition,omitempty"`
	Tape       *string            `json:"tape,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Server exposes a session manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Metrics  *observability.Metrics
	Streams  *StreamManager
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts the Prometheus handler on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.Logger

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/presets", s.ListPresets)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/step", s.StepSession)
			r.Get("/graph", s.GetGraph)
			r.Get("/trace", s.GetTrace)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
	})
}

// ListPresets handles GET /presets.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, presets.All())
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	def, err := body.resolve()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	info, err := s.Sessions.Create(r.Context(), def)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, info)
}

func (req CreateRequest) resolve() (*schema.Definition, error) {
	var def *schema.Definition
	switch {
	case req.Preset != "" && req.Definition != nil:
		return nil, errors.New("set either preset or definition, not both")
	case req.Preset != "":
		d, err := presets.Get(req.Preset)
		if err != nil {
			return nil, err
		}
		def = d
	case req.Definition != nil:
		def = req.Definition
	default:
		return nil, errors.New("preset or definition is required")
	}
	if req.Tape != nil {
		def.Tape = *req.Tape
	}
	return def, nil
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	infos, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles POST /sessions/{id}/step?count=n.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("count must be a positive integer, got %q", raw))
			return
		}
		count = n
	}

	info, err := s.Sessions.Step(r.Context(), id, count)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	if payload, err := json.Marshal(info.Snapshot); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	s.writeJSON(w, http.StatusOK, info)
}

// GetGraph handles GET /sessions/{id}/graph.
// The default format is Mermaid with the current state highlighted; format=json returns the raw projection.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, info, err := s.Sessions.Graph(r.Context(), id)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "json":
		s.writeJSON(w, http.StatusOK, g)
	case "", "mermaid":
		overlay := graph.OverlayFromSnapshot(info.Snapshot)
		if trace, err := s.Sessions.Trace(r.Context(), id); err == nil {
			if o := graph.OverlayFromTrace(trace); o != nil {
				overlay = o
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, graph.GenerateMermaid(g, overlay))
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", format))
	}
}

// GetTrace handles GET /sessions/{id}/trace.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	trace, err := s.Sessions.Trace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, trace)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// Each step request on the session pushes the resulting snapshot.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Get(r.Context(), id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	s.Logger.Info("SSE: subscribing to session updates", "session_id", id)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTraceNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrTracingDisabled):
		return http.StatusNotImplemented
	case schema.ValidationErrors(err) != nil,
		errors.Is(err, domain.ErrNoStates),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrUnknownState),
		errors.Is(err, domain.ErrDuplicateTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "err", err)
	}

	resp := ErrorResponse{Error: err.Error()}
	if errs := schema.ValidationErrors(err); errs != nil {
		resp.Error = "invalid machine definition"
		for _, e := range errs {
			resp.Details = append(resp.Details, e.Error())
		}
	}
	s.writeJSON(w, status, resp)
}
