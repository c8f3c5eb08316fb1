package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doculaw-ai/doculaw/internal/app"
	"github.com/doculaw-ai/doculaw/internal/config"
	"github.com/doculaw-ai/doculaw/internal/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	application, err := app.NewApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("startup failed", "err", err)
	}
	defer application.Close()

	go func() {
		if err := application.Server.Start(); err != nil {
			zlog.Fatal("server error", "err", err)
		}
	}()

	zlog.Info("DocuLaw API is running")
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown error", "err", err)
	}
}
