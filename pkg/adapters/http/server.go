package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nagarniyantran/civicnav"
	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/nagarniyantran/civicnav/pkg/navigator"
	"github.com/nagarniyantran/civicnav/pkg/observability"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/nagarniyantran/civicnav/pkg/runner"
	"github.com/nagarniyantran/civicnav/pkg/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds request bodies; every accepted body is a handful of short fields.
const maxBodySize = 16 << 10

// Server exposes stored navigation sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	backend ports.Backend
	metrics *observability.Metrics
	matcher *locale.Matcher
	logger  *slog.Logger
	newID   func() string

	swagger *openapi3.T
	router  routers.Router
}

// Option configures the Server.
type Option func(*Server)

// WithBackend enables GET /collections/{name}.
func WithBackend(backend ports.Backend) Option {
	return func(s *Server) {
		s.backend = backend
	}
}

// WithMetrics enables GET /metrics and the open stream gauge.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLocaleMatcher sets the Accept-Language negotiation used for new sessions.
func WithLocaleMatcher(m *locale.Matcher) Option {
	return func(s *Server) {
		s.matcher = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIDGenerator replaces the random session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// NewServer creates a Server over the given session manager.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		matcher:  locale.NewMatcher(domain.LanguageEnglish),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	swagger, router, err := loadSpec()
	if err != nil {
		s.logger.Error("OpenAPI validation disabled", "err", err)
	} else {
		s.swagger, s.router = swagger, router
	}
	return s
}

// NewHandler creates the HTTP handler for sessions.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.validateRequest)

	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/swagger", s.GetSwaggerUI)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/screens", s.GetScreens)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/events", s.DispatchEvent)
			r.Post("/navigate", s.transition(navigateTo))
			r.Post("/back", s.transition(goBack))
			r.Post("/login", s.transition(login))
			r.Post("/role", s.transition(setRole))
			r.Post("/language", s.transition(setLanguage))
			r.Get("/stream", s.StreamSession)
		})
	})

	r.Get("/collections/{name}", s.GetCollection)
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionResponse is the body returned by every session endpoint.
type SessionResponse struct {
	State   domain.AppState     `json:"state"`
	View    resolver.Descriptor `json:"view"`
	Changed *bool               `json:"changed,omitempty"`
}

type createRequest struct {
	SessionID string          `json:"session_id"`
	Language  domain.Language `json:"language"`
}

type eventRequest struct {
	Event   resolver.EventName `json:"event"`
	Payload map[string]any     `json:"payload"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.swagger != nil && s.swagger.Info != nil {
		apiVersion = s.swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "civicnav-http",
		"version":     strings.TrimSpace(civicnav.Version),
		"api_version": apiVersion,
	})
}

// GetScreens handles GET /screens, listing every edge of the screen table.
func (s *Server) GetScreens(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"screens": domain.Screens(),
		"routes":  resolver.Routes(),
	})
}

// CreateSession handles POST /sessions.
// The language comes from the body, else from Accept-Language.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	id := s.newID()
	if body.SessionID != "" {
		clean, err := runner.SanitizeIdentifier(body.SessionID)
		if err == nil && clean == "" {
			err = errors.New("empty after sanitizing")
		}
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid session_id: %w", err))
			return
		}
		id = clean
	}

	language := body.Language
	if !language.Valid() {
		language = s.matcher.Match(r.Header.Get("Accept-Language"))
	}

	state, err := s.Sessions.Create(r.Context(), id, language)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.logger.Info("session created", "session_id", id, "language", language)
	s.writeJSON(w, http.StatusCreated, respond(state, nil))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	state, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, respond(state, nil))
}

// DeleteSession handles DELETE /sessions/{id}. Open streams of the session are closed.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// DispatchEvent handles POST /sessions/{id}/events.
func (s *Server) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var body eventRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Event == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("event is required"))
		return
	}
	payload, err := decodePayload(body.Payload)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	change, err := s.Sessions.Dispatch(r.Context(), id, body.Event, payload)
	if err != nil {
		s.fail(w, "DispatchEvent", err)
		return
	}
	s.commit(w, id, change)
}

// transitionFunc applies one direct transition from a decoded body.
type transitionFunc func(ctx context.Context, nav *navigator.Navigator, p resolver.Payload)

func navigateTo(ctx context.Context, nav *navigator.Navigator, p resolver.Payload) {
	nav.NavigateTo(ctx, p.Screen, p.IssueID)
}

func goBack(ctx context.Context, nav *navigator.Navigator, _ resolver.Payload) {
	nav.GoBack(ctx)
}

func login(ctx context.Context, nav *navigator.Navigator, p resolver.Payload) {
	nav.Login(ctx, p.Role)
}

func setRole(ctx context.Context, nav *navigator.Navigator, p resolver.Payload) {
	nav.SetUserRole(ctx, p.Role)
}

func setLanguage(ctx context.Context, nav *navigator.Navigator, p resolver.Payload) {
	nav.SetLanguage(ctx, p.Language)
}

// transition handles the POST /sessions/{id}/<transition> endpoints.
// Invalid screens, roles and languages are absorbed by the transitions and reported as changed=false.
func (s *Server) transition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessionID(w, r)
		if !ok {
			return
		}

		var raw map[string]any
		if err := decodeBody(r, &raw); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		payload, err := decodePayload(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}

		change, err := s.Sessions.Apply(r.Context(), id, func(ctx context.Context, nav *navigator.Navigator) error {
			fn(ctx, nav, payload)
			return nil
		})
		if err != nil {
			s.fail(w, "Transition", err)
			return
		}
		s.commit(w, id, change)
	}
}

// commit broadcasts the diff of change and writes the response.
func (s *Server) commit(w http.ResponseWriter, id string, change session.Change) {
	if diff := change.Diff(); diff != nil {
		if data, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(data))
		} else {
			s.logger.Error("diff encode failed", "session_id", id, "err", err)
		}
	}
	changed := change.Changed()
	s.writeJSON(w, http.StatusOK, respond(change.Next, &changed))
}

// StreamSession handles GET /sessions/{id}/stream (SSE).
// Every change to the session is pushed as a StateDiff JSON object. The optional
// watch query (e.g. "screen,history") drops diffs touching none of the listed fields.
func (s *Server) StreamSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.fail(w, "StreamSession", err)
		return
	}

	var watch []string
	if q := r.URL.Query().Get("watch"); q != "" {
		for _, field := range strings.Split(q, ",") {
			if field = strings.TrimSpace(field); field != "" {
				watch = append(watch, field)
			}
		}
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	if s.metrics != nil {
		s.metrics.StreamOpened()
		defer s.metrics.StreamClosed()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	s.logger.Info("SSE: Subscribing to session updates", "session_id", id)
	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}
			if !watched(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func watched(msg string, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range fields {
		if diff.Has(field) {
			return true
		}
	}
	return false
}

// GetCollection handles GET /collections/{name}. Query parameters are equality filters.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	if s.backend == nil {
		s.writeError(w, http.StatusNotImplemented, errors.New("no backend configured"))
		return
	}

	filter := ports.Filter{}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		clean, err := runner.SanitizeIdentifier(values[0])
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("filter %s: %w", key, err))
			return
		}
		filter[key] = clean
	}

	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	records, err := s.backend.Fetch(r.Context(), name, filter)
	if err != nil {
		s.fail(w, "GetCollection", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// -- Helpers --

func respond(state domain.AppState, changed *bool) SessionResponse {
	return SessionResponse{
		State:   state,
		View:    resolver.Describe(resolver.InputFrom(state)).Descriptor(),
		Changed: changed,
	}
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw, err := pathParam(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	id, err := runner.SanitizeIdentifier(raw)
	if err != nil || id == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid session id"))
		return "", false
	}
	return id, true
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodePayload sanitizes the string values of raw and decodes them into a Payload.
func decodePayload(raw map[string]any) (resolver.Payload, error) {
	if err := runner.SanitizePayload(raw); err != nil {
		return resolver.Payload{}, err
	}
	return resolver.DecodePayload(raw)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrCollectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSessionID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, resolver.ErrUnknownEvent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "status", status, "err", err)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
