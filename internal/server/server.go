package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"sei-agent-engine/internal/agent"
	"sei-agent-engine/internal/config"
	"sei-agent-engine/internal/types"
)

// Responder is the conversation capability behind /agent/run.
type Responder interface {
	Respond(ctx context.Context, userInput, callerContext string) agent.Reply
}

type Server struct {
	router    *chi.Mux
	cfg       config.Config
	responder Responder
	log       zerolog.Logger
}

func NewServer(cfg config.Config, responder Responder, log zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "x-api-key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{router: r, cfg: cfg, responder: responder, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.With(s.requireAPIKey).Post("/agent/run", s.handleAgentRun)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// requireAPIKey rejects any request without the shared secret before model,
// search or gateway work happens.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-api-key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APISecretKey)) != 1 {
			s.log.Warn().Str("path", r.URL.Path).Msg("rejected request with bad api key")
			s.writeDetail(w, http.StatusForbidden, "Unauthorized Access")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAgentRun(w http.ResponseWriter, r *http.Request) {
	var req types.AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.UserInput) == "" {
		s.writeDetail(w, http.StatusBadRequest, "user_input is required")
		return
	}

	reply := s.responder.Respond(r.Context(), req.UserInput, req.ContextData)
	s.log.Info().Str("status", reply.Status).Msg("agent turn completed")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.AgentResponse{Output: reply.Output, Status: reply.Status})
}

func (s *Server) writeDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Detail: detail})
}
