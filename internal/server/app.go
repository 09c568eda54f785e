// Package server initializes and runs the registration server: it opens the
// configured user store, wires the registration service with its token
// issuer, event sinks and metrics, and runs the HTTP and gRPC endpoints until
// the context is cancelled or a signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/events"
	"github.com/dmitrijs2005/gophauth/internal/server/httpserver"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	metrics     *metrics.Registrations
	closers     []func(context.Context) error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	rm, err := repomanager.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	app := &App{config: c, logger: logger, repos: rm, metrics: metrics.NewRegistrations()}
	app.closers = append(app.closers, rm.Close)

	if err := rm.RunMigrations(ctx); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	publisher, err := app.initPublishers(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	issuer := auth.NewTokenIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	app.userService = services.NewUserService(rm.Users(), issuer, publisher, app.metrics, c, logger)

	return app, nil
}

func (app *App) initPublishers(ctx context.Context) (events.Publisher, error) {
	var sinks events.Multi

	if app.config.NATSURL != "" {
		p, err := events.NewNATSPublisher(app.config.NATSURL, app.config.NATSSubject)
		if err != nil {
			return nil, fmt.Errorf("nats init error: %w", err)
		}
		app.closers = append(app.closers, func(context.Context) error { return p.Close() })
		sinks = append(sinks, p)
	}

	if app.config.S3Bucket != "" {
		a, err := events.NewS3Archiver(ctx, events.S3Options{
			Region:       app.config.S3Region,
			AccessKey:    app.config.S3RootUser,
			SecretKey:    app.config.S3RootPassword,
			BaseEndpoint: app.config.S3BaseEndpoint,
			Bucket:       app.config.S3Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		sinks = append(sinks, a)
	}

	if len(sinks) == 0 {
		return events.Nop{}, nil
	}
	return sinks, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService,
		app.repos.Users(), app.metrics.Handler(), app.config.AllowedOrigins, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.repos.Users())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives, or one of
// the servers fails, then releases the store and event sinks.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i](ctx))
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
}
