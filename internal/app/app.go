package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/agro-insurance/config"
	"github.com/Temutjin2k/agro-insurance/internal/adapter/http/server"
	wshandler "github.com/Temutjin2k/agro-insurance/internal/adapter/http/ws"
	"github.com/Temutjin2k/agro-insurance/internal/adapter/mcpsrv"
	repo "github.com/Temutjin2k/agro-insurance/internal/adapter/postgres"
	rabbitadapter "github.com/Temutjin2k/agro-insurance/internal/adapter/rabbit"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/internal/service/client"
	"github.com/Temutjin2k/agro-insurance/internal/service/climate"
	"github.com/Temutjin2k/agro-insurance/internal/service/crop"
	"github.com/Temutjin2k/agro-insurance/internal/service/point"
	"github.com/Temutjin2k/agro-insurance/internal/service/policy"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/postgres"
	"github.com/Temutjin2k/agro-insurance/pkg/rabbit"
	"github.com/Temutjin2k/agro-insurance/pkg/trm"
	ws "github.com/Temutjin2k/agro-insurance/pkg/wsHub"
)

// Version is reported to MCP clients.
var Version = "dev"

type App struct {
	postgresDB *postgres.PostgreDB
	rabbit     *rabbit.RabbitMQ
	producer   *rabbitadapter.ChangeProducer
	hub        *ws.ConnectionHub
	points     *point.Service
	llm        *mcpsrv.Server
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

// NewApplication connects to the infrastructure and builds the services.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	ctx = wrap.WithAction(ctx, "app_init")
	app := &App{cfg: cfg, log: log}

	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to setup database", err)
		return nil, err
	}
	app.postgresDB = postgresDB

	app.hub = ws.NewConnHub(log)
	feed := wshandler.NewChangeFeed(app.hub, log)
	sinks := []changes.Sink{feed}

	if cfg.RabbitMQ.Enabled {
		app.rabbit, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			app.close(ctx)
			log.Error(ctx, "failed to connect to rabbitmq", err)
			return nil, err
		}

		app.producer, err = rabbitadapter.NewChangeProducer(app.rabbit, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.QueueSize, log)
		if err != nil {
			app.close(ctx)
			log.Error(ctx, "failed to setup change producer", err)
			return nil, err
		}
		sinks = append(sinks, app.producer)
	}
	notifier := changes.NewFanout(log, sinks...)

	txManager := trm.New(postgresDB.Pool)

	clientService := client.New(repo.NewClientRepo(postgresDB.Pool), notifier, log)
	cropService := crop.New(repo.NewCropRepo(postgresDB.Pool), notifier, log)
	policyService := policy.New(repo.NewPolicyRepo(postgresDB.Pool), notifier, log)
	app.points = point.New(repo.NewPointRepo(postgresDB.Pool), notifier, cfg.Cache.PointsTTL, log)
	climateService := climate.New(repo.NewClimateRepo(postgresDB.Pool), app.points, notifier, txManager, log)

	services := server.Services{
		Clients:  clientService,
		Crops:    cropService,
		Points:   app.points,
		Policies: policyService,
		Climate:  climateService,
		DB:       postgresDB.Pool,
		Changes:  feed,
	}

	if cfg.MCP.Enabled {
		app.llm = mcpsrv.New(cfg.ServiceName, Version, cfg.MCP.BaseURL, cfg.MCP.BasePath, app.points, climateService, log)
		services.LLM = app.llm
	}

	app.httpServer, err = server.New(cfg.ServiceName, cfg.Server, services, log)
	if err != nil {
		app.close(ctx)
		log.Error(ctx, "failed to setup http server", err)
		return nil, err
	}

	return app, nil
}

// Run serves until SIGINT/SIGTERM or a server failure, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, "app_run")
	errCh := make(chan error, 1)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	a.log.Info(ctx, "application started", "service", a.cfg.ServiceName)

	select {
	case errRun := <-errCh:
		return fmt.Errorf("http server: %w", errRun)
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx = wrap.WithAction(context.WithoutCancel(ctx), "app_close")

	if a.llm != nil {
		if err := a.llm.Shutdown(ctx); err != nil {
			a.log.Warn(ctx, "failed to close mcp sessions", "error", err.Error())
		}
	}

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}

	if a.hub != nil {
		a.hub.Close()
	}

	if a.points != nil {
		a.points.Close()
	}

	if a.producer != nil {
		drainCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
		if err := a.producer.Close(drainCtx); err != nil {
			a.log.Warn(ctx, "pending change events dropped", "error", err.Error())
		}
		cancel()
	}

	if a.rabbit != nil {
		if err := a.rabbit.Close(ctx); err != nil {
			a.log.Warn(ctx, "failed to close rabbitmq connection", "error", err.Error())
		}
	}

	if a.postgresDB != nil {
		a.postgresDB.Close()
	}
}
