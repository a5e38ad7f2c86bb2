package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"issuewiz.app/advisor/common/id"
	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/common/otel"
	"issuewiz.app/advisor/core/config"
	"issuewiz.app/advisor/internal/http/middleware"
	httprouter "issuewiz.app/advisor/internal/http/router"
	"issuewiz.app/advisor/internal/service"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "advisor starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	if !cfg.LLM.Enabled() {
		slog.WarnContext(ctx, "OPENAI_API_KEY not set, pipeline routes will return 500")
	}

	evidenceFetcher, closeFetcher, err := service.NewEvidenceFetcher(ctx, cfg.Fetch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up evidence fetcher", "error", err)
		os.Exit(1)
	}
	defer closeFetcher()

	services := service.NewServices(cfg, service.NewModelClient(cfg.LLM), evidenceFetcher)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Analysis requests wait on file fetches and a model call.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → RequestID tags the context → Logger logs with it
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, httprouter.Services{
		Analyzer:    services.Analyzer(),
		Suggester:   services.Suggester(),
		Mentor:      services.Mentor(),
		Credentials: services.Credentials(),
	})

	return router
}

const banner = `
 ___ ____ ____ _   _ _____ __        _____ _____
|_ _/ ___/ ___| | | | ____|\ \      / /_ _|__  /
 | |\___ \___ \ | | |  _|   \ \ /\ / / | |  / /
 | | ___) |__) | |_| | |___   \ V  V /  | | / /_
|___|____/____/ \___/|_____|   \_/\_/  |___/____|
`
