package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashpad/turing"
	"github.com/hashpad/turing/internal/logging"
	"github.com/hashpad/turing/internal/presentation/graph"
	"github.com/hashpad/turing/pkg/presets"
	"github.com/hashpad/turing/pkg/schema"
	"github.com/hashpad/turing/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PresetsURI is the resource listing the built-in machine definitions.
const PresetsURI = "turing://presets"

// SessionResponse is the structured result of the session tools.
type SessionResponse struct {
	Session session.Info `json:"session" jsonschema_description:"The session and its current snapshot"`
	Tape    string       `json:"tape" jsonschema_description:"Tape contents without leading and trailing blanks"`
	Verdict string       `json:"verdict" jsonschema_description:"running, accepted or rejected"`
}

func newSessionResponse(info session.Info) SessionResponse {
	return SessionResponse{
		Session: info,
		Tape:    info.Snapshot.Trimmed(),
		Verdict: info.Snapshot.Verdict(),
	}
}

// Server wraps a session manager and exposes it as an MCP Server.
type Server struct {
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the names of the built-in machines."),
	), s.handleListPresets)

	createTool := mcp.NewTool("create_session",
		mcp.WithDescription("Create a machine session from a preset or a definition. The machine starts on the first cell of its tape."),
		mcp.WithString("preset", mcp.Description("Name of a built-in machine (see list_presets)")),
		mcp.WithObject("definition", mcp.Description("Machine definition: input, tape, states, start, accept, transitions")),
		mcp.WithString("definition_yaml", mcp.Description("Machine definition as YAML or JSON text")),
		mcp.WithString("tape", mcp.Description("Initial tape contents, overriding the definition's")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(createTool, mcp.NewStructuredToolHandler(s.handleCreateSession))

	stepTool := mcp.NewTool("step",
		mcp.WithDescription("Advance a session by count steps (default 1), stopping early if it halts."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("count", mcp.Description("Number of steps to run")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(stepTool, mcp.NewStructuredToolHandler(s.handleStep))

	inspectTool := mcp.NewTool("inspect_session",
		mcp.WithDescription("Return the current state, tape, head position and verdict of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewStructuredToolHandler(s.handleInspect))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state graph of a session's machine, as Mermaid (default) or JSON."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("format", mcp.Description("mermaid or json")),
	), s.handleGetGraph)

	s.mcpServer.AddTool(mcp.NewTool("get_trace",
		mcp.WithDescription("Get every recorded snapshot of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleGetTrace)

	s.mcpServer.AddTool(mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a session. Its trace is kept."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleDeleteSession)
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(presets.Names())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	def, err := definitionFromArgs(args)
	if err != nil {
		return SessionResponse{}, err
	}

	info, err := s.sessions.Create(ctx, def)
	if err != nil {
		s.logger.Warn("MCP create_session: rejected", "err", err)
		return SessionResponse{}, fmt.Errorf("create failed: %w", err)
	}
	return newSessionResponse(info), nil
}

func definitionFromArgs(args map[string]interface{}) (*schema.Definition, error) {
	preset, _ := args["preset"].(string)
	text, _ := args["definition_yaml"].(string)
	obj, _ := args["definition"].(map[string]interface{})

	given := 0
	for _, set := range []bool{preset != "", text != "", obj != nil} {
		if set {
			given++
		}
	}
	if given != 1 {
		return nil, errors.New("exactly one of preset, definition or definition_yaml is required")
	}

	var def *schema.Definition
	var err error
	switch {
	case preset != "":
		def, err = presets.Get(preset)
	case text != "":
		def, err = schema.Parse([]byte(text))
	default:
		def, err = schema.Decode(obj)
	}
	if err != nil {
		return nil, err
	}

	if tape, ok := args["tape"].(string); ok {
		def.Tape = tape
	}
	return def, nil
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	count := 1
	if n, ok := args["count"].(float64); ok {
		count = int(n)
	}

	info, err := s.sessions.Step(ctx, id, count)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("step failed: %w", err)
	}
	return newSessionResponse(info), nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	info, err := s.sessions.Get(ctx, id)
	if err != nil {
		return SessionResponse{}, err
	}
	return newSessionResponse(info), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, _ := args["session_id"].(string)
	format, _ := args["format"].(string)

	g, info, err := s.sessions.Graph(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}

	switch format {
	case "json":
		jsonBytes, _ := json.Marshal(g)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	case "", "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(g, graph.OverlayFromSnapshot(info.Snapshot))), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) handleGetTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["session_id"].(string)
	trace, err := s.sessions.Trace(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trace failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(trace)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["session_id"].(string)
	if err := s.sessions.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return mcp.NewToolResultText("deleted " + id), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PresetsURI, "Built-in machine definitions",
		mcp.WithMIMEType("application/json"),
	), s.readPresets)
}

func (s *Server) readPresets(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(presets.All())
	if err != nil {
		return nil, fmt.Errorf("failed to encode presets: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PresetsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
