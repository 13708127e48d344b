package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"maillet-agent/internal/di"
	"maillet-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	ethRate, err := strconv.ParseFloat(envService.MustGet("ETH_RATE"), 64)
	if err != nil {
		log.Fatalf("ETH_RATE is not a number: %v", err)
	}

	container, err := di.NewContainer(di.Config{
		WalletAPIURL:   envService.MustGet("WALLET_API_URL"),
		SendGridAPIKey: envService.MustGet("SENDGRID_API_KEY"),
		EthRate:        ethRate,
		GeminiAPIKey:   envService.MustGet("GEMINI_API_KEY"),
		GeminiModel:    envService.GetDefault("GEMINI_MODEL_NAME", "gemini-2.0-flash"),
		LLMBaseURL:     envService.Get("LLM_BASE_URL"),
		Development:    envService.GetBool("DEV_LOGGING", false),
	})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	port := envService.GetInt("PORT", 5000)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: container.Server.Handler(),
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		container.Logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			container.Logger.Error("Shutdown failed", "error", err)
		}
	}()

	container.Logger.Info("Server started", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		container.Logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
