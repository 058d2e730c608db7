package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Temutjin2k/agro-insurance/config"
	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/handler"
	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/middleware"
	wshandler "github.com/Temutjin2k/agro-insurance/internal/adapter/http/ws"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.ServerConfig
	log  logger.Logger
}

// Services are the dependencies the HTTP layer is built from.
type Services struct {
	Clients  handler.ClientService
	Crops    handler.CropService
	Points   handler.PointService
	Policies handler.PolicyService
	Climate  handler.ClimateService

	DB      handler.Pinger
	Changes *wshandler.ChangeFeed
	// LLM is mounted on its pattern when set.
	LLM MountedHandler
}

// MountedHandler is a handler that knows the ServeMux pattern it serves.
type MountedHandler interface {
	Pattern() string
	Handler() http.Handler
}

type handlers struct {
	health  *handler.Health
	client  *handler.Client
	crop    *handler.Crop
	point   *handler.Point
	policy  *handler.Policy
	climate *handler.Climate
	changes *wshandler.ChangeFeed
	llm     MountedHandler
}

func New(serviceName string, cfg config.ServerConfig, services Services, logger logger.Logger) (*API, error) {
	if services.Clients == nil || services.Crops == nil || services.Points == nil ||
		services.Policies == nil || services.Climate == nil || services.DB == nil {
		return nil, errors.New("all services are required")
	}

	routes := &handlers{
		health:  handler.NewHealth(serviceName, services.DB, logger),
		client:  handler.NewClient(services.Clients, logger),
		crop:    handler.NewCrop(services.Crops, logger),
		point:   handler.NewPoint(services.Points, logger),
		policy:  handler.NewPolicy(services.Policies, logger),
		climate: handler.NewClimate(services.Climate, logger),
		changes: services.Changes,
		llm:     services.LLM,
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(logger),
		addr:   cfg.Addr(),
		cfg:    cfg,
		log:    logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
		// No write timeout, server-sent events and websockets are long-lived.
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// Handler returns the routed handler with middleware, for tests.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}
