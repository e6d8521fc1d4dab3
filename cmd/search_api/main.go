// Package main Search Engine API
// @title Search Engine API
// @version 1.0
// @description A federating search API that fans queries out to upstream engines and merges the results into one ranked list
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/0xhtml/search-engine/internal/dispatch"
	"github.com/0xhtml/search-engine/internal/engine"
	"github.com/0xhtml/search-engine/internal/httpx"
	"github.com/0xhtml/search-engine/internal/lang"
	"github.com/0xhtml/search-engine/internal/metrics"
	"github.com/0xhtml/search-engine/internal/query"
	"github.com/0xhtml/search-engine/internal/router"
	"github.com/0xhtml/search-engine/internal/search"
	"github.com/0xhtml/search-engine/internal/server"
	"github.com/0xhtml/search-engine/internal/spam"
	pkgserver "github.com/0xhtml/search-engine/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	heathChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, heathChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Search Engine API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	var overrides *engine.Overrides
	if cfg.EnginesConfig != "" {
		f, err := os.Open(cfg.EnginesConfig)
		if err != nil {
			slog.Error("Failed to open engines config", "path", cfg.EnginesConfig, "error", err)
			os.Exit(1)
			return
		}
		overrides, err = engine.LoadOverrides(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to load engine overrides", "error", err)
			os.Exit(1)
			return
		}
	}
	engines := engine.Registry(overrides)
	if len(engines) == 0 {
		slog.Error("No engines configured")
		os.Exit(1)
		return
	}

	var sink metrics.Sink = metrics.NopSink{}
	if cfg.MetricsDB != "" {
		sqliteSink, err := metrics.NewSQLiteSink(cfg.MetricsDB, slog.Default())
		if err != nil {
			slog.Error("Failed to open metrics database", "error", err)
			os.Exit(1)
			return
		}
		sink = sqliteSink
		slog.Info("Engine metrics enabled", "path", cfg.MetricsDB)
	}

	deny := spam.Load(s.Context(), http.DefaultClient, cfg.SpamSources)

	detector := lang.NewLinguaDetector()
	client := httpx.NewClient(httpx.Config{Timeout: cfg.UpstreamTimeout})
	dispatcher := dispatch.New(client, sink, slog.Default())

	service := search.NewService(
		query.NewParser(detector),
		engines,
		dispatcher,
		detector,
		deny,
		slog.Default(),
	)

	searchrouter := router.NewSearchRouter(s.Echo, service)
	searchrouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
		if err := sink.Close(); err != nil {
			slog.Warn("Failed to close metrics sink", "error", err)
		}
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
