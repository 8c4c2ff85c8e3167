package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rdzcn/lights-raspberry/internal/config"
	"github.com/rdzcn/lights-raspberry/internal/state"
)

// Server is the HTTP front end of the matrix. It validates request bodies
// and delegates to the state controller; the hardware never sees
// unvalidated input.
type Server struct {
	addr            string
	allowedOrigins  []string
	shutdownTimeout time.Duration
	ctrl            *state.Controller
	available       bool
	httpServer      *http.Server
}

// New creates a server. available reports whether real hardware backs the
// controller; it is fixed at startup and only surfaced through /health.
func New(cfg *config.Config, ctrl *state.Controller, available bool) *Server {
	return &Server{
		addr:            cfg.Server.Addr(),
		allowedOrigins:  cfg.CORS.AllowedOrigins,
		shutdownTimeout: cfg.Server.ShutdownTimeout.Duration(),
		ctrl:            ctrl,
		available:       available,
	}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/grid", s.handleGrid)
	mux.HandleFunc("/pixel", s.handlePixel)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/brightness", s.handleBrightness)
	mux.HandleFunc("/history", s.handleHistory)
	return s.cors(mux)
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	log.Info().Str("addr", s.addr).Msg("Starting HTTP server")

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// cors adds response headers for configured browser origins and answers
// preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, ngrok-skip-browser-warning, User-Agent")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.allowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
