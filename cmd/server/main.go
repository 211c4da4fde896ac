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
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/platform/config"
	apirouter "github.com/cmtegi-hash/square-foot-calculator-clean/internal/platform/http"
	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/platform/logger"
	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "sqft-server")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.GinMode)

	sessions := repository.NewSessionRepository(cfg.Floors, cfg.SessionTTL, zlog)
	router := apirouter.NewRouter(sessions, cfg.Floors, cfg.AllowedOrigins, zlog)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("server listening", zap.String("addr", server.Addr), zap.Strings("floors", cfg.Floors))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.RunJanitor(gctx, cfg.SessionSweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Warn("server shutdown error", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zlog.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	zlog.Info("server exited")
}
