// Package httpserver exposes the registration API over HTTP using chi.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// Registrar registers a user and returns a signed token.
type Registrar interface {
	Register(ctx context.Context, req services.RegistrationRequest) (string, error)
}

// Pinger reports whether the user store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	users           Registrar
	store           Pinger
	metrics         http.Handler
	allowedOrigins  []string
	shutdownTimeout time.Duration
}

// NewHTTPServer builds the server. metricsHandler may be nil, in which case
// /metrics is not served.
func NewHTTPServer(a string, l logging.Logger, users Registrar, store Pinger,
	metricsHandler http.Handler, allowedOrigins []string, shutdownTimeout time.Duration) *HTTPServer {

	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           users,
		store:           store,
		metrics:         metricsHandler,
		allowedOrigins:  allowedOrigins,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router returns the chi router with all routes and middleware mounted.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Post("/api/users", s.registerUser)
	r.Get("/healthz", s.healthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
