// Package server exposes the QA service over HTTP: POST /chat for questions
// and GET / for health checks.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"uploadai/internal/domain"
)

// Server wraps the QA service with routing, CORS and request logging.
type Server struct {
	service domain.QAService
	router  *mux.Router
	log     *zap.SugaredLogger
}

// New creates the HTTP server around a QA service.
func New(service domain.QAService, log *zap.SugaredLogger) *Server {
	s := &Server{service: service, router: mux.NewRouter(), log: log}
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(c.Handler)
	s.router.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	s.router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

type chatRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	answer, err := s.service.AnswerQuery(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Question is required"})
			return
		}
		s.log.Errorw("chat request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.log.Infow("chat request", "question_len", len(req.Question), "citations", len(answer.Citations), "elapsed", time.Since(start))
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "UploadAI backend running."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
