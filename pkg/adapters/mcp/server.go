package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nagarniyantran/civicnav"
	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/locale"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/nagarniyantran/civicnav/pkg/runner"
	"github.com/nagarniyantran/civicnav/pkg/session"
)

// ScreensURI is the resource exposing the screen table.
const ScreensURI = "civicnav://screens"

// ViewResponse aligns with the HTTP session response.
type ViewResponse struct {
	State   domain.AppState     `json:"state" jsonschema_description:"The stored navigation state of the session"`
	View    resolver.Descriptor `json:"view" jsonschema_description:"The active screen, its parameters and the events it accepts"`
	Changed bool                `json:"changed" jsonschema_description:"Whether the call modified the session"`
}

// Server exposes stored navigation sessions as an MCP server.
type Server struct {
	sessions  *session.Manager
	matcher   *locale.Matcher
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLocaleMatcher sets the language negotiation used by create_session.
func WithLocaleMatcher(m *locale.Matcher) Option {
	return func(s *Server) {
		s.matcher = m
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		matcher:   locale.NewMatcher(domain.LanguageEnglish),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("civicnav-mcp", strings.TrimSpace(civicnav.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: create_session
	createTool := mcp.NewTool("create_session",
		mcp.WithDescription("Start a navigation session at the splash screen."),
		mcp.WithString("session_id", mcp.Description("Session ID (optional, generated when omitted)")),
		mcp.WithString("language", mcp.Description("Language preference, a BCP 47 tag such as 'hi' (optional)")),
		mcp.WithOutputSchema[ViewResponse](),
	)
	s.mcpServer.AddTool(createTool, mcp.NewStructuredToolHandler(s.handleCreateSession))

	// TOOL: get_view
	viewTool := mcp.NewTool("get_view",
		mcp.WithDescription("Describe the active screen of a session and the events it accepts."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ViewResponse](),
	)
	s.mcpServer.AddTool(viewTool, mcp.NewStructuredToolHandler(s.handleGetView))

	// TOOL: dispatch_event
	dispatchTool := mcp.NewTool("dispatch_event",
		mcp.WithDescription("Raise an event declared by the active view of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("event", mcp.Required(), mcp.Description("Event name, e.g. 'complete', 'navigate', 'back'")),
		mcp.WithString("payload", mcp.Description("JSON object with screen, issue_id, role or language (optional)")),
		mcp.WithOutputSchema[ViewResponse](),
	)
	s.mcpServer.AddTool(dispatchTool, mcp.NewStructuredToolHandler(s.handleDispatchEvent))

	// TOOL: list_sessions
	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List the IDs of every stored session."),
	), s.handleListSessions)
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.sessions.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, err := json.Marshal(ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode sessions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	id, _ := args["session_id"].(string)
	id, err := runner.SanitizeIdentifier(id)
	if err != nil {
		return ViewResponse{}, fmt.Errorf("invalid session_id: %w", err)
	}
	if id == "" {
		id = uuid.NewString()
	}

	pref, _ := args["language"].(string)
	state, err := s.sessions.Create(ctx, id, s.matcher.Match(pref))
	if err != nil {
		return ViewResponse{}, err
	}
	s.logger.Info("MCP: session created", "session_id", id)
	return respond(state, true), nil
}

func (s *Server) handleGetView(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	id, err := sessionID(args)
	if err != nil {
		return ViewResponse{}, err
	}
	state, err := s.sessions.Load(ctx, id)
	if err != nil {
		return ViewResponse{}, err
	}
	return respond(state, false), nil
}

func (s *Server) handleDispatchEvent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	id, err := sessionID(args)
	if err != nil {
		return ViewResponse{}, err
	}

	rawEvent, _ := args["event"].(string)
	event, err := runner.SanitizeIdentifier(rawEvent)
	if err != nil || event == "" {
		return ViewResponse{}, fmt.Errorf("event is required")
	}

	raw := map[string]any{}
	if payloadStr, ok := args["payload"].(string); ok && strings.TrimSpace(payloadStr) != "" {
		clean, err := runner.SanitizeInput(payloadStr)
		if err != nil {
			s.logger.Warn("MCP Dispatch: payload rejected", "error", err, "size", len(payloadStr))
			return ViewResponse{}, fmt.Errorf("payload rejected: %w", err)
		}
		if err := json.Unmarshal([]byte(clean), &raw); err != nil {
			return ViewResponse{}, fmt.Errorf("payload must be a JSON object: %w", err)
		}
		if err := runner.SanitizePayload(raw); err != nil {
			return ViewResponse{}, fmt.Errorf("payload rejected: %w", err)
		}
	}
	payload, err := resolver.DecodePayload(raw)
	if err != nil {
		return ViewResponse{}, err
	}

	change, err := s.sessions.Dispatch(ctx, id, resolver.EventName(strings.ToLower(event)), payload)
	if err != nil {
		return ViewResponse{}, fmt.Errorf("dispatch failed: %w", err)
	}
	return respond(change.Next, change.Changed()), nil
}

func (s *Server) registerResources() {
	// EXPOSE: civicnav://screens
	s.mcpServer.AddResource(mcp.NewResource(ScreensURI, "Screen Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := screensJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ScreensURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func screensJSON() (string, error) {
	jsonBytes, err := json.Marshal(resolver.Routes())
	if err != nil {
		return "", fmt.Errorf("failed to encode screen table: %w", err)
	}
	return string(jsonBytes), nil
}

func sessionID(args map[string]interface{}) (string, error) {
	raw, _ := args["session_id"].(string)
	id, err := runner.SanitizeIdentifier(raw)
	if err != nil {
		return "", fmt.Errorf("invalid session_id: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return id, nil
}

func respond(state domain.AppState, changed bool) ViewResponse {
	return ViewResponse{
		State:   state,
		View:    resolver.Describe(resolver.InputFrom(state)).Descriptor(),
		Changed: changed,
	}
}
