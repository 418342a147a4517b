package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/report"
	"github.com/frahmantamala/payroll-report/internal/transport"
	"github.com/frahmantamala/payroll-report/internal/transport/rest"
	"github.com/frahmantamala/payroll-report/internal/transport/swagger"
	"github.com/frahmantamala/payroll-report/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server exposing the salary report, unit views and exports`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config        *internal.Config
	Loader        payroll.Loader
	Service       *payroll.Service
	Router        *chi.Mux
	ReportHandler *report.Handler
	Logger        *slog.Logger
	closeLoader   func()
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.closeLoader()

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "source", deps.Config.Source.Kind)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.closeLoader()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.Loader, deps.ReportHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.LoggerWrapper()

	// a broken embedded document is a build defect; refuse to serve it
	if _, err := swagger.LoadSpec(context.Background()); err != nil {
		return nil, err
	}

	loader, closeLoader, err := newLoader(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record source: %w", err)
	}

	cache := payroll.NewReportCache(config.Cache.Size, config.Cache.TTL)
	svc := payroll.NewService(loader, cache, config.Payroll.NegativeValues, log)
	reportHandler := report.NewHandler(transport.NewBaseHandler(log), svc)

	return &Dependencies{
		Config:        config,
		Loader:        loader,
		Service:       svc,
		Router:        chi.NewRouter(),
		ReportHandler: reportHandler,
		Logger:        log,
		closeLoader:   closeLoader,
	}, nil
}
