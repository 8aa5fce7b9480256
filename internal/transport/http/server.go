package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/joshdurbin/shortcode-service/internal/metrics"
	"github.com/joshdurbin/shortcode-service/internal/service"
)

// Server represents the HTTP server
type Server struct {
	handler *Handler
	server  *http.Server
	port    string
	logger  *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(shortener service.URLShortener, port string, logger *zap.Logger, m *metrics.Metrics, verbose bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}

	handler := NewHandler(shortener, logger)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handler, logger, m, verbose),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	return &Server{
		handler: handler,
		server:  server,
		port:    port,
		logger:  logger,
	}
}

// NewRouter registers the routes on a mux and wraps it with the middleware
// chain, outermost first: request ID, instrumentation, recovery, logging.
// Instrumentation sits outside recovery so recovered panics are counted as 500s.
func NewRouter(handler *Handler, logger *zap.Logger, m *metrics.Metrics, verbose bool) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("POST /shorten", handler.Shorten)
	mux.HandleFunc("GET /{shortcode}", handler.Redirect)
	mux.HandleFunc("GET /{shortcode}/stats", handler.Stats)

	var finalHandler http.Handler = mux
	finalHandler = NewLoggingMiddleware(logger, verbose).Middleware(finalHandler)
	finalHandler = Recovery(logger)(finalHandler)
	finalHandler = Instrument(m)(finalHandler)
	finalHandler = RequestID(finalHandler)

	return finalHandler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() string {
	return s.port
}

// Handler returns the full HTTP handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
