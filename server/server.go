// Package server exposes the orchestrator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

// Config holds the HTTP listener settings.
type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" split_words:"true" default:"60s"`
}

// Orchestrator is the conversational surface the server fronts.
type Orchestrator interface {
	StartConversation(ctx context.Context) (string, error)
	SubmitUtterance(ctx context.Context, conversationID, text string) (contractx.AgentResponse, error)
	EndConversation(ctx context.Context, conversationID string) error
	Transcript(ctx context.Context, conversationID string) ([]contractx.Turn, error)
	QueryAgent(ctx context.Context, agentID contractx.AgentID, text string) (contractx.AgentResponse, error)
}

type Server struct {
	orch     Orchestrator
	validate *validator.Validate
	cfg      Config
}

func New(orch Orchestrator, cfg Config) (*Server, error) {
	if orch == nil {
		return nil, errors.New("orchestrator is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	return &Server{
		orch:     orch,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}, nil
}

// Router builds the chi mux with standard middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(recoverer)
	r.Use(requestLogger)

	r.Post("/api/conversations", s.handleStartConversation)
	r.Post("/api/conversations/{id}/messages", s.handleSubmitUtterance)
	r.Get("/api/conversations/{id}/transcript", s.handleTranscript)
	r.Delete("/api/conversations/{id}", s.handleEndConversation)
	r.Post("/api/agents/{agent}/query", s.handleQueryAgent)
	r.Get("/healthz", handleHealth)

	return r
}

// ListenAndServe blocks serving HTTP until the listener fails or the
// context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Warn().Err(err).Msg("healthz write failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(body)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Unmapped errors are
// internal and never leak their message to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, contractx.ErrConversationNotFound):
		status, message = http.StatusNotFound, "conversation not found"
	case errors.Is(err, contractx.ErrConversationEnded):
		status, message = http.StatusGone, "conversation has ended"
	case errors.Is(err, contractx.ErrEmptyUtterance):
		status, message = http.StatusBadRequest, "utterance must not be empty"
	case errors.Is(err, contractx.ErrUnknownAgent):
		status, message = http.StatusNotFound, "unknown agent"
	}

	log.Error().
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("request failed")

	writeJSON(w, status, errorBody{Error: message})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Any("panic", rec).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("panic recovered")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
