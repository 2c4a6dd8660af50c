// Package server exposes the assistant over HTTP: a log-analysis
// endpoint, a health check, and a WebSocket chat surface that streams
// tokens as they are generated.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Assistant is what the server needs from the conversational core.
type Assistant interface {
	// Answer runs one turn for userID, delivering token fragments to
	// onToken when non-nil, and returns the complete answer. A non-nil
	// error means the turn's memory could not be fully persisted.
	Answer(ctx context.Context, userID, query string, onToken func(string)) (string, error)
}

// Server wraps the assistant with an HTTP surface.
type Server struct {
	assistant Assistant
	logger    *log.Logger
	upgrader  websocket.Upgrader
	mux       *http.ServeMux
}

// New creates a Server.
func New(assistant Assistant, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		assistant: assistant,
		logger:    logger,
		upgrader:  websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /analyze-log", s.handleAnalyzeLog)
	s.mux.HandleFunc("GET /chat", s.handleChat)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s.mux)
}

type analyzeRequest struct {
	Error string `json:"error"`
}

type analyzeResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyzeLog(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(req.Error) < 3 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "provide an error string in 'error' field"})
		return
	}

	query := "Analyze this log error and suggest remediation steps:\n\n" + req.Error

	answer, err := s.assistant.Answer(r.Context(), "api", query, nil)
	if err != nil {
		s.logger.Error("analyze-log turn failed", "request", reqID, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("analyze-log served", "request", reqID, "answer_bytes", len(answer))
	writeJSON(w, http.StatusOK, analyzeResponse{Answer: answer})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type chatRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type chatFrame struct {
	Token  string `json:"token,omitempty"`
	Done   bool   `json:"done,omitempty"`
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleChat speaks a small frame protocol over a WebSocket: each client
// message is one turn, answered by a stream of token frames and a final
// done frame carrying the full answer.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return // client went away or sent garbage
		}
		if req.UserID == "" {
			req.UserID = "anonymous"
		}
		if req.Query == "" {
			conn.WriteJSON(chatFrame{Error: "query must not be empty"})
			continue
		}

		onToken := func(token string) {
			conn.WriteJSON(chatFrame{Token: token})
		}
		answer, err := s.assistant.Answer(r.Context(), req.UserID, req.Query, onToken)
		if err != nil {
			// The answer was generated; only its persistence failed.
			s.logger.Error("chat turn recorded incompletely", "user", req.UserID, "err", err)
		}
		if err := conn.WriteJSON(chatFrame{Done: true, Answer: answer}); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
