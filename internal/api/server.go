// Package api exposes the proxy over HTTP, mirroring the surface the
// dashboard client expects: a GET /chat endpoint plus a handful of demo and
// health routes.
package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
)

// ChatService is the inbound boundary consumed by the HTTP layer.
type ChatService interface {
	HandleChat(ctx context.Context, query, userID string) chat.Result
}

// Server is the HTTP front for the chat proxy.
type Server struct {
	httpServer *http.Server
	svc        ChatService
	log        *zap.Logger
	startedAt  time.Time
}

// NewServer creates a server bound to addr.
func NewServer(addr string, svc ChatService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		svc:       svc,
		log:       log,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/info/", s.handleInfo)
	mux.HandleFunc("/test/", s.handleTestSimple)
	mux.HandleFunc("/test", s.handleTestQuery)
	mux.HandleFunc("/api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving in the background.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.log.Info("api server listening", zap.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("api server", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /chat?q=...&user_id=... — the main endpoint the dashboard calls. The
// response is always 200 with the result envelope; failures are encoded in
// the status field, never as HTTP errors.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	userID := r.URL.Query().Get("user_id")
	reqID := uuid.NewString()

	s.log.Info("chat request",
		zap.String("request_id", reqID),
		zap.String("user_id", userID),
		zap.Int("query_len", len(query)),
	)

	result := s.svc.HandleChat(r.Context(), query, userID)

	s.log.Info("chat response",
		zap.String("request_id", reqID),
		zap.String("status", result.Status),
	)
	s.writeJSON(w, result)
}

// GET / — home page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, map[string]string{"msg": "welcome to the home page"})
}

// GET /info/ — static demo payload kept for dashboard wiring tests.
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"page":        1,
		"per_page":    6,
		"total":       12,
		"total_pages": 14,
		"data": []map[string]interface{}{
			{"id": 1, "name": "alice", "year": 2000},
			{"id": 2, "name": "bob", "year": 2001},
			{"id": 3, "name": "charlie", "year": 2002},
			{"id": 4, "name": "Doc", "year": 2003},
		},
	})
}

// GET /test/ — plain liveness message.
func (s *Server) handleTestSimple(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"message": "Hello from test endpoint"})
}

// GET /test — runs a canned sample query through the full pipeline.
func (s *Server) handleTestQuery(w http.ResponseWriter, r *http.Request) {
	result := s.svc.HandleChat(r.Context(), "Who is the top performer?", "test")
	s.writeJSON(w, result)
}

// GET /api/health — liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"ok":       true,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	})
}
