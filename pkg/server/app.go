package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"FXBrief/internal/usecase"
	"FXBrief/pkg/cache"
	pkgch "FXBrief/pkg/clickhouse"
	"FXBrief/pkg/config"
	xhttp "FXBrief/pkg/http"
	applogger "FXBrief/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	reports    *usecase.ReportUseCase
	chClient   *pkgch.Client
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. chClient is nil when
// the service runs against the in-memory bar store.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	reports *usecase.ReportUseCase,
	chClient *pkgch.Client,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		reports:  reports,
		chClient: chClient,
		cache:    cacheSvc,
	}
}

// Run starts the HTTP service and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithServerLogger(a.log),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("service started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("clickhouse", a.chClient != nil),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(context.Background())
}

// RunOnce generates a single report, writes it to stdout as indented JSON,
// and releases infrastructure. reportType is "morning" or "eod".
func (a *App) RunOnce(ctx context.Context, reportType string) error {
	defer func() {
		if err := a.closeInfra(); err != nil {
			a.log.Warn("close error", applogger.Error(err))
		}
	}()

	rep, err := a.reports.Generate(ctx, reportType)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.closeInfra(); err != nil {
		a.log.Warn("close error", applogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return nil
}

func (a *App) closeInfra() error {
	var firstErr error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("cache close: %w", err)
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("clickhouse close: %w", err)
		}
	}
	return firstErr
}
