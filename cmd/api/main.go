package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sndot/internal/platform/config"
	"sndot/internal/platform/logger"
	"sndot/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	r := router.NewRouter(router.Options{Config: cfg, Log: log})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("servidor iniciado", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("servidor caiu", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown com erro", zap.Error(err))
		os.Exit(1)
	}
	log.Info("servidor encerrado")
}
