package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"kakeibo/internal/cli"
	"kakeibo/internal/config"
	apphttp "kakeibo/internal/http"
	applog "kakeibo/internal/log"
	"kakeibo/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ledger := services.NewLedgerService(repo)

	srv := newServer(cfg, ledger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting kakeibo server", "port", cfg.Port, "db_path", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		srv.StopBackground()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func newServer(cfg *config.Config, ledger *services.LedgerService) *apphttp.Server {
	httpLogger := applog.New(applog.Config{Component: applog.ComponentHTTP})
	return apphttp.NewServer(":"+cfg.Port, ledger, httpLogger, apphttp.CacheConfig{
		Size: cfg.ReportCacheSize,
		TTL:  cfg.ReportCacheTTL,
	})
}
