// Package server wires the gin HTTP surface of the dashboard: HTML pages,
// the JSON API, health probes and the metrics endpoint.
package server

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/config"
	"github.com/yourusername/equity-screener/internal/logger"
	"github.com/yourusername/equity-screener/internal/metrics"
	"github.com/yourusername/equity-screener/internal/models"
	"github.com/yourusername/equity-screener/internal/scheduler"
	"github.com/yourusername/equity-screener/internal/screener"
	"github.com/yourusername/equity-screener/internal/search"
)

// Server hosts the dashboard HTTP surface.
type Server struct {
	cfg    *config.Config
	logger *logrus.Logger
	engine *gin.Engine
	server *http.Server
}

// New builds the router with all routes and middleware registered.
func New(cfg *config.Config, svc *screener.Service, searchEngine *search.Engine, refresher *scheduler.Refresher, audit *logger.AuditLogger, log *logrus.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(Instrument())
	engine.Use(RateLimit(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst))

	engine.SetFuncMap(template.FuncMap{
		"crore": models.FormatCrore,
		"num":   models.FormatNumber,
		"price": models.FormatPrice,
		"pct":   func(v *float64) string { return models.FormatNumber(v, "%") },
	})
	engine.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	api := &APIHandler{
		Service:   svc,
		Search:    searchEngine,
		Refresher: refresher,
		Audit:     audit,
		Logger:    log,
		Defaults:  cfg.Screener,
	}
	api.Register(engine)

	pages := &PageHandler{
		Service:  svc,
		Defaults: cfg.Screener,
		Logger:   log,
	}
	pages.Register(engine)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		watchlist := svc.Watchlist()
		if !watchlist.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"reason": "watchlist not loaded",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"stocks":    watchlist.Len(),
			"loaded_at": watchlist.LoadedAt().UTC().Format(time.RFC3339),
		})
	})

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	return &Server{
		cfg:    cfg,
		logger: log,
		engine: engine,
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start runs the HTTP server in the background and shuts it down when the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.ListenAddr(),
		Handler:      s.engine,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("HTTP server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("HTTP server error")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("HTTP server shutdown error")
		}
	}()

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("HTTP server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
