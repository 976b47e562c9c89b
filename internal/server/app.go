// Package server wires configuration, storage, services and transports into
// a runnable JobTrack application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/server/config"
	gs "github.com/dmitrijs2005/jobtrack/internal/server/grpc"
	"github.com/dmitrijs2005/jobtrack/internal/server/httpapi"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	http        *httpapi.Server
	health      *gs.HealthServer
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.InMemory {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return repomanager.NewPostgresRepositoryManager(db)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(rm, c)
	as := services.NewActivityService(rm, nil)
	gls := services.NewGoalService(rm)
	ss := services.NewStatsService(rm, nil)
	es := services.NewExportService(rm, c)

	h := httpapi.NewServer(c.EndpointAddrHTTP, logger, httpapi.Services{
		Users:      us,
		Activities: as,
		Goals:      gls,
		Stats:      ss,
		Export:     es,
		Health:     rm,
	})

	hs := gs.NewHealthServer(c.EndpointAddrGRPC, logger, rm, c.HealthCheckInterval)

	return &App{config: c, logger: logger, repomanager: rm, http: h, health: hs}, nil
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

type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run starts the HTTP and gRPC servers and blocks until ctx is cancelled, a
// termination signal arrives or either server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "in_memory", app.config.InMemory)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.http)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.health)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
