package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"danishdeck/internal/app"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type contextKey struct{}

// Server exposes the learning services over HTTP
type Server struct {
	services *app.App
	tokens   *TokenIssuer
	logger   *zap.Logger
	router   *mux.Router
}

// NewServer creates a new API server with all routes registered
func NewServer(services *app.App, tokens *TokenIssuer, logger *zap.Logger) *Server {
	s := &Server{
		services: services,
		tokens:   tokens,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/phrases", s.handleListPhrases).Methods(http.MethodGet)
	protected.HandleFunc("/phrases", s.handleAddPhrase).Methods(http.MethodPost)
	protected.HandleFunc("/phrases/import", s.handleImport).Methods(http.MethodPost)
	protected.HandleFunc("/phrases/{id}", s.handleUpdatePhrase).Methods(http.MethodPatch)
	protected.HandleFunc("/phrases/{id}", s.handleDeletePhrase).Methods(http.MethodDelete)
	protected.HandleFunc("/phrases/{id}/practice", s.handlePractice).Methods(http.MethodPost)
	protected.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	protected.HandleFunc("/sessions", s.handleAddSession).Methods(http.MethodPost)
	protected.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	protected.HandleFunc("/translate", s.handleTranslate).Methods(http.MethodPost)
	protected.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	protected.HandleFunc("/events", s.handleEvent).Methods(http.MethodPost)
	protected.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
}

// requireAuth rejects requests without a valid bearer token
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, r, ErrInvalidToken)
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the claims stored by requireAuth
func claimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(contextKey{}).(*Claims)
	return claims
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
