package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-chatbot/config"
	"customer-chatbot/internal/api"
	"customer-chatbot/internal/app"
	"customer-chatbot/internal/services"
	"customer-chatbot/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title customer-chatbot API
// @version 1.0
// @description Customer service chatbot with keyword intents, product lookup and voice input.

// @host localhost:8080
// @BasePath /api/v1

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("server: %v", err)
	}
}

// run serves until ctx is done. Resources opened by Setup are released on
// every return path.
func run(ctx context.Context, cfg *config.Config) error {
	cleanup, err := app.Setup(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer cleanup()

	limiter, err := app.NewLimiter(cfg)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(cfg, limiter),
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.VoiceInboxDir != "" {
		inbox, err := services.NewVoiceInbox(cfg.VoiceInboxDir, services.VoiceMgr)
		if err != nil {
			return fmt.Errorf("failed to watch voice inbox: %w", err)
		}
		logger.Log.Info("Watching voice inbox", zap.String("dir", cfg.VoiceInboxDir))
		g.Go(func() error { return inbox.Run(gctx) })
	}

	g.Go(func() error {
		logger.Log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
