// Package server initializes and runs the scan service. It selects the
// storage backend, wires the processing pipeline and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dkrasnov/pdfscan/internal/config"
	"github.com/dkrasnov/pdfscan/internal/extract"
	"github.com/dkrasnov/pdfscan/internal/logging"
	"github.com/dkrasnov/pdfscan/internal/processing"
	"github.com/dkrasnov/pdfscan/internal/repositories/repomanager"
	"github.com/dkrasnov/pdfscan/internal/scanner"
	"github.com/dkrasnov/pdfscan/internal/server/httpapi"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	repos, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sc := scanner.NewRegexScanner()
	ex := extract.NewPDFExtractor(logger)
	processor := processing.NewProcessor(repos, sc, ex, logger, c.TempDir)

	handler := httpapi.NewHandler(repos, processor, logger, c.MaxUploadSize)
	srv := httpapi.NewServer(c.EndpointAddr, handler, logger)

	return &App{config: c, logger: logger, repos: repos, server: srv}, nil
}

func newRepositoryManager(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Backend {
	case config.BackendMemory:
		return repomanager.NewMemoryRepositoryManager(), nil
	case config.BackendClickHouse:
		return repomanager.NewClickHouseRepositoryManager(ctx, repomanager.Options{
			Addr:      c.ClickHouseAddr,
			Database:  c.ClickHouseDatabase,
			Username:  c.ClickHouseUser,
			Password:  c.ClickHousePassword,
			OpTimeout: c.StorageOpTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", c.Backend)
	}
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
}
