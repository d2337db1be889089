package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/tools"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/auditor"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/config"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/gatekeeper"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/logging"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
	store "github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/repository"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/service"
	v1 "github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/transport/http/v1"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/policy"
)

func main() {
	cfg, err := config.Load(os.Getenv("AQLHR_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting query pipeline server",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("database", cfg.DatabaseDSN),
		zap.String("ai_service", cfg.AIServiceURL),
	)

	db, err := store.NewSQLiteStore(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}
	defer db.Close()

	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AIAPIKey, cfg.AITimeout, logger)

	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		logger.Fatal("failed to initialize policy engine", zap.Error(err))
	}

	registry := tools.NewBuiltinRegistry(logger)
	registry.Register("ai_analysis", tools.AIAnalysisHandler(aiClient))
	invoker := tools.WithPolicy(policyEngine, registry, logger)

	svc := service.New(
		gatekeeper.New(logger),
		planner.New(logger),
		planner.NewExecutor(invoker, cfg.ExecutorWorkers, cfg.ToolTimeout, logger),
		auditor.New(logger),
		aiClient,
		db,
		cfg.MaxReplanIterations,
		logger,
	)

	h := v1.NewHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.Int("port", cfg.HTTPPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("failed to shutdown server gracefully", zap.Error(err))
	}

	logger.Info("server stopped")
}
