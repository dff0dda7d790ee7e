package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pcbuild/internal/build"
	"pcbuild/internal/config"
	"pcbuild/internal/llm"
	"pcbuild/internal/logging"
	"pcbuild/internal/render"
	"pcbuild/internal/router"
	"pcbuild/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.RequireBackend(); err != nil {
		logger.Fatal("backend not configured", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── BACKEND ─────────────────────────
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("llm client init failed", zap.Error(err))
	}

	// ───────────────────────── RENDERING ─────────────────────────
	renderer := render.NewChromeRenderer(cfg.Chrome, logger.Named("render"))
	defer func() {
		if err := renderer.Close(); err != nil {
			logger.Warn("chrome shutdown", zap.Error(err))
		}
	}()

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	handlerCfg := build.HandlerConfig{
		Production: cfg.IsProduction(),
		Backend:    cfg.Status(),
	}
	if cfg.R2.Enabled() {
		store, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			logger.Fatal("r2 init failed", zap.Error(err))
		}
		handlerCfg.Store = store
		logger.Info("report export enabled", zap.String("bucket", cfg.R2.Bucket))
	}

	// ───────────────────────── HTTP ─────────────────────────
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := build.NewService(client, renderer, logger.Named("build"))
	handler := build.NewHandler(svc, logger.Named("http"), handlerCfg)

	r := router.NewRouter(handler, router.Options{
		Logger:      logger.Named("http"),
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", client.Provider()),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
