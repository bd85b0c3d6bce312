package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shareit/backend/internal/gateway"
	"github.com/shareit/backend/internal/infrastructure/observability"
	"github.com/shareit/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger("shareit-gateway", cfg.Server.Env)
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := gateway.NewClient(cfg.Gateway.ServerURL, cfg.Gateway.Timeout)
	engine, err := gateway.NewRouter(gateway.NewHandler(client), cfg.Gateway.AllowedOrigins)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build gateway router")
	}

	server := &http.Server{
		Addr:         cfg.Gateway.Addr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gateway.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("server_url", cfg.Gateway.ServerURL).Msg("Gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Gateway failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Gateway shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during gateway shutdown")
	}

	log.Info().Msg("Gateway stopped")
}
