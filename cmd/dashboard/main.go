// Package main provides the entry point for the equity screener dashboard.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/loader"
	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/metrics"
	"github.com/yourusername/equity-screener/internal/rating"
	"github.com/yourusername/equity-screener/internal/scheduler"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/search"
	"github.com/yourusername/equity-screener/internal/server"
	"github.com/yourusername/equity-screener/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"source":      cfg.Watchlist.Source,
	}).Info("Equity screener dashboard starting")

	metrics.InitRegistry()

	// Build the watchlist pipeline
	httpClientCfg := loader.DefaultHTTPClientConfig()
	httpClientCfg.Timeout = cfg.FetchTimeout()
	httpClientCfg.MaxRetries = cfg.Watchlist.FetchMaxRetries
	httpClientCfg.RateLimit = cfg.Watchlist.FetchRateLimit
	fetcher := loader.NewHTTPClient(httpClientCfg, appLog)

	watchlist := store.NewWatchlist(cfg.Watchlist.Source, fetcher, appLog)
	cache := store.NewScreenCache(cfg.CacheTTL())
	svc := screener.NewService(watchlist, rating.NewEngine(), cache, appLog)
	searchEngine := search.NewEngine(appLog)
	defer func() {
		if err := searchEngine.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close search index")
		}
	}()

	audit := logger.NewAuditLogger(appLog)
	refresher := scheduler.NewRefresher(watchlist, svc, searchEngine, audit, cfg.FetchTimeout())

	// Initial load. The dashboard starts even when the source is unavailable;
	// /readyz stays 503 until a reload succeeds.
	if err := refresher.Refresh(context.Background(), "startup"); err != nil {
		appLog.WithError(err).Warn("Initial watchlist load failed, starting without data")
	}

	// Periodic refresh
	var reloadScheduler *scheduler.Scheduler
	if cfg.Watchlist.ReloadCron != "" {
		reloadScheduler = scheduler.NewScheduler(refresher, appLog)
		if err := reloadScheduler.ScheduleReload(cfg.Watchlist.ReloadCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule watchlist refresh")
		}
		if err := reloadScheduler.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		appLog.WithField("next_run", reloadScheduler.NextRun()).Info("Watchlist refresh scheduled")
	}

	// HTTP server
	srv := server.New(cfg, svc, searchEngine, refresher, audit, appLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start HTTP server")
	}

	appLog.WithFields(logrus.Fields{
		"addr":   cfg.ListenAddr(),
		"stocks": watchlist.Len(),
	}).Info("Dashboard is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()

	if reloadScheduler != nil {
		if err := reloadScheduler.Stop(); err != nil {
			appLog.WithError(err).Error("Error during scheduler shutdown")
		}
	}
	if err := srv.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error during HTTP server shutdown")
	}

	// Give in-flight requests time to drain
	time.Sleep(time.Second)

	appLog.Info("Equity screener dashboard shut down successfully")
}
