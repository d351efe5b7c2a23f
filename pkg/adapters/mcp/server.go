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

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/session"
)

// SessionsURI is the resource listing stored sessions.
const SessionsURI = "colorchanger://sessions"

// Engine runs one turn against a stored session.
type Engine interface {
	Turn(ctx context.Context, sessionID string, req domain.Request) (*session.TurnResult, error)
}

// Sessions is the read side of session storage.
type Sessions interface {
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)
	List(ctx context.Context) ([]string, error)
}

// Server exposes the session engine as MCP tools, so an agent can play the host.
type Server struct {
	engine    Engine
	sessions  Sessions
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, sessions Sessions, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("colorchanger-mcp", colorchanger.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+hostURL(addr)))

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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func hostURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("launch_session",
		mcp.WithDescription("Launch a session. Starts the roll call that discovers two buttons."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to launch")),
		mcp.WithString("request_id", mcp.Description("Request id, used as the roll call token (generated if omitted)")),
	), s.handleLaunch)

	s.mcpServer.AddTool(mcp.NewTool("press_button",
		mcp.WithDescription("Deliver an input handler event, as if buttons were pressed."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session")),
		mcp.WithString("event", mcp.Required(),
			mcp.Description("Event name raised by the input handler"),
			mcp.Enum("first_button_checked_in", "second_button_checked_in", "button_down_event", "timeout"),
		),
		mcp.WithString("devices", mcp.Description("Comma separated device ids reported with the event")),
		mcp.WithString("token", mcp.Description("Originating token (defaults to the session's current one)")),
	), s.handlePressButton)

	s.mcpServer.AddTool(mcp.NewTool("say",
		mcp.WithDescription("Deliver a spoken intent."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session")),
		mcp.WithString("intent", mcp.Required(),
			mcp.Description("Resolved intent"),
			mcp.Enum("yes", "no", "help", "stop", "cancel", "color"),
		),
		mcp.WithString("color", mcp.Description("Color slot of the color intent")),
		mcp.WithString("request_id", mcp.Description("Request id (generated if omitted)")),
	), s.handleSay)

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("Tell the engine the host closed the session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session")),
		mcp.WithString("reason", mcp.Description("Why the host ended it")),
	), s.handleEndSession)

	s.mcpServer.AddTool(mcp.NewTool("inspect_session",
		mcp.WithDescription("Return the stored attributes of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to inspect")),
	), s.handleInspect)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SessionsURI, "Stored sessions",
		mcp.WithMIMEType("application/json"),
	), s.readSessions)
}

func (s *Server) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.turn(ctx, sessionID, domain.Request{
		Kind:      domain.RequestLaunch,
		RequestID: requestID(request),
	})
}

func (s *Server) handlePressButton(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawEvent, err := request.RequireString("event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := domain.ParseEventName(rawEvent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ev := domain.ButtonEvent{Name: name, InputEvents: []domain.InputEvent{}}
	for _, id := range strings.Split(request.GetString("devices", ""), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ev.InputEvents = append(ev.InputEvents, domain.InputEvent{DeviceID: id, Action: string(domain.ActionDown)})
		}
	}

	token := request.GetString("token", "")
	if token == "" {
		state, err := s.sessions.Load(ctx, sessionID)
		switch {
		case err == nil:
			token = state.CurrentInputHandlerID
		case errors.Is(err, domain.ErrSessionNotFound):
		default:
			return mcp.NewToolResultError(fmt.Sprintf("load session: %v", err)), nil
		}
	}

	return s.turn(ctx, sessionID, domain.Request{
		Kind:                 domain.RequestInputHandlerEvent,
		RequestID:            uuid.NewString(),
		OriginatingRequestID: token,
		Events:               []domain.ButtonEvent{ev},
	})
}

func (s *Server) handleSay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	intent, err := request.RequireString("intent")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.turn(ctx, sessionID, domain.Request{
		Kind:      domain.RequestIntent,
		RequestID: requestID(request),
		Intent:    domain.Intent(strings.ToLower(intent)),
		Color:     request.GetString("color", ""),
	})
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.turn(ctx, sessionID, domain.Request{
		Kind:   domain.RequestSessionEnded,
		Reason: request.GetString("reason", "USER_INITIATED"),
	})
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load session %s: %v", sessionID, err)), nil
	}
	return jsonResult(state)
}

func (s *Server) readSessions(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	payload, err := json.Marshal(map[string][]string{"sessions": ids})
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SessionsURI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

func (s *Server) turn(ctx context.Context, sessionID string, req domain.Request) (*mcp.CallToolResult, error) {
	res, err := s.engine.Turn(ctx, sessionID, req)
	if err != nil {
		s.logger.Error("MCP turn failed", "session_id", sessionID, "kind", req.Kind, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}
	s.logger.Debug("MCP turn", "session_id", sessionID, "kind", req.Kind, "phase", res.State.Phase)
	return jsonResult(res)
}

func requestID(request mcp.CallToolRequest) string {
	if id := request.GetString("request_id", ""); id != "" {
		return id
	}
	return uuid.NewString()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
