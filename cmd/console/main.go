package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"customer-chatbot/config"
	"customer-chatbot/internal/app"
	"customer-chatbot/internal/console"
	"customer-chatbot/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the transcript; logs go to the file only.
	cleanup, err := app.Setup(cfg, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.New(os.Stdin, os.Stdout, services.VoiceMgr).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
	}
}
