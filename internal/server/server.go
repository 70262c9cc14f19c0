// Package server exposes the reasoning pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/futureproof-labs/insight/config"
	"github.com/futureproof-labs/insight/internal/catalog"
	"github.com/futureproof-labs/insight/internal/executor"
	"github.com/futureproof-labs/insight/internal/llm"
	"github.com/futureproof-labs/insight/internal/pipeline"
	"github.com/futureproof-labs/insight/internal/store"
	"github.com/futureproof-labs/insight/internal/telemetry"
)

// Run wires the full service and blocks serving HTTP on cfg.Server.Address.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: msg})
		}
	}
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie", "Authorization"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	dsn, err := cfg.Database.DSN()
	if err != nil {
		return err
	}
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		baseLogger.Printf("migrations not applied: %v", err)
	}

	// Shared dependencies (top-level DI)
	ctx := context.Background()
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Pipeline.CatalogFile)
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	exec := executor.NewPostgres(st.DB)
	tele := telemetry.NewTelemetry(cfg.Telemetry)
	orch := pipeline.NewOrchestrator(cfg, cat, provider, exec, tele)

	secret := cfg.Server.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (server.jwt_secret or INSIGHT_JWT_SECRET)")
	}

	api := e.Group("/api")
	auth := &AuthHandler{Store: st, Secret: []byte(secret)}
	auth.Register(api.Group("/auth"))

	askLogger := log.New(log.Writer(), "[ASK] ", log.LstdFlags)
	ask := &AskHandler{Pipeline: orch, Store: st, Logger: askLogger}
	ask.Register(api.Group("/ask"), []byte(secret))

	insights := &InsightsHandler{Executor: exec}
	insights.Register(api.Group("/insights"), []byte(secret))

	return e.Start(cfg.Server.Address)
}
