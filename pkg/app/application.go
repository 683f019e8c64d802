package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tabletime/pkg/config"
	"tabletime/pkg/contracts"
	"tabletime/pkg/middleware"
	"tabletime/pkg/otelx"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
	healthHandler    http.Handler
	appHttpHandler   http.Handler
	handler          http.Handler
	closers          []closer
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// UseIdempotencyStore replaces the in-memory store. Call before SetApp.
func (a *Application) UseIdempotencyStore(store middleware.IdempotencyStore) {
	a.idempotencyStore = store
}

// OnShutdown registers fn to run after the server drains. Closers run in
// reverse registration order.
func (a *Application) OnShutdown(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *Application) SetApp(healthHandler contracts.Handler, appHandlers ...contracts.Handler) {
	a.setHealthHandler(healthHandler)
	a.setAppHandler(appHandlers)
	a.setAppServer()
}

func (a *Application) setHealthHandler(healthHandler contracts.Handler) {
	healthRouter := httprouter.New()
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.CORS(middleware.DefaultCORSPolicy(a.cfg.CORSOrigins))(healthHTTPHandler)
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging + CORS)")
}

func (a *Application) setAppHandler(appHandlers []contracts.Handler) {
	appRouter := httprouter.New()
	for _, h := range appHandlers {
		h.RegisterRoutes(appRouter)
	}

	if a.idempotencyStore == nil {
		a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	}
	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.ClientIP,
		a.cfg.Log,
	)

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, middleware.DefaultIdempotencyHeader, a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.RateLimit(a.rateLimiter)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = middleware.CORS(middleware.DefaultCORSPolicy(a.cfg.CORSOrigins))(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/api/health", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.handler = otelx.Handler(mux, a.cfg.ServiceName)
	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler is the fully wrapped mux. It is nil until SetApp runs.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", listener.Addr().String())
		serverErrors <- a.server.Serve(listener)
	}()

	select {
	case err := <-serverErrors:
		a.releaseResources(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)

	case <-ctx.Done():
		a.cfg.Log.Info("Shutdown signal received", "reason", context.Cause(ctx))
		return a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() error {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if closeErr := a.server.Close(); closeErr != nil {
			shutdownErr = fmt.Errorf("could not stop server gracefully: %w", closeErr)
		}
	}

	a.releaseResources(ctx)
	a.cfg.Log.Info("Server stopped gracefully")
	return shutdownErr
}

func (a *Application) releaseResources(ctx context.Context) {
	a.cfg.Log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			a.cfg.Log.Error("Failed to release resource", "resource", c.name, "error", err)
			continue
		}
		a.cfg.Log.Info("Released resource", "resource", c.name)
	}
	a.cfg.Log.Info("Background workers stopped")
}
