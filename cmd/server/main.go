package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"krishi-sakhi-backend/internal/config"
	"krishi-sakhi-backend/internal/content"
	"krishi-sakhi-backend/internal/database"
	"krishi-sakhi-backend/internal/handlers"
	"krishi-sakhi-backend/internal/middleware"
	"krishi-sakhi-backend/internal/resolver"
	"krishi-sakhi-backend/internal/router"
	"krishi-sakhi-backend/internal/session"
	"krishi-sakhi-backend/internal/weather"
	"krishi-sakhi-backend/internal/websocket"
	logx "krishi-sakhi-backend/pkg/logger"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Configuration failed: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})
	logx.Info().Str("env", cfg.Environment().String()).Msg("🚀 Starting Krishi Sakhi Backend...")
	logx.Info().Msg("✓ Environment variables loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Load Content ────
	store := content.NewStore()
	answers := resolver.New(store)
	logx.Info().Int("languages", len(content.Languages)).Msg("✓ Content store loaded")

	// ──── Step 3: Initialize Redis Clients (optional) ────
	var publishClient, subscribeClient *redis.Client
	if cfg.RedisURL != "" {
		redisClients, err := database.NewRedisClients(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("✗ Redis connection failed")
		}
		defer redisClients.Close()
		publishClient, subscribeClient = redisClients.Publish, redisClients.PubSub
		logx.Info().Msg("✓ Redis connected")
	} else {
		logx.Info().Msg("✓ Redis not configured, broadcasting in-process")
	}

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub(publishClient, subscribeClient, cfg.FrontendURL)
	defer wsHub.Close()
	logx.Info().Msg("✓ WebSocket hub started")

	// ──── Step 5: Start Session Manager ────
	sessions := session.NewManager(store, answers,
		session.WithSessionResponseDelay(cfg.ResponseDelay),
		session.WithIdleTimeout(cfg.SessionIdleTimeout),
		session.WithPublisher(wsHub),
	)
	wsHub.SetSessions(sessions)
	sessions.Start(ctx)
	logx.Info().Dur("idle_timeout", cfg.SessionIdleTimeout).Msg("✓ Session manager started")

	// ──── Step 6: Start Weather Poller ────
	weatherClient := weather.NewClient(cfg.Weather.APIURL, cfg.Weather.APIKey, cfg.Weather.City, nil)
	poller := weather.NewPoller(weatherClient,
		weather.WithInterval(cfg.Weather.PollInterval),
		weather.WithListener(wsHub.PublishWeather),
	)
	if cfg.Weather.APIURL == "" || cfg.Weather.APIKey == "" {
		logx.Warn().Msg("weather source not configured, snapshot will report an error")
	}
	poller.Start(ctx)
	logx.Info().Str("city", cfg.Weather.City).Msg("✓ Weather poller started")

	// ──── Step 7: Start HTTP Server ────
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRateLimit, time.Minute)
	defer submitLimiter.Stop()

	r := router.New(
		handlers.NewSessionHandler(sessions, cfg.Language()),
		handlers.NewContentHandler(store, cfg.Language()),
		handlers.NewWeatherHandler(poller),
		submitLimiter,
		wsHub.HandleWebSocket,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		logx.Info().Msg("Shutting down...")
		poller.Stop()
		sessions.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logx.Info().Msgf("✓ Krishi Sakhi Backend ready on http://localhost:%s", cfg.Port)
	logx.Info().Msgf("  API: http://localhost:%s/api/v1", cfg.Port)
	logx.Info().Msgf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logx.Fatal().Err(err).Msg("Server error")
	}
	<-shutdownDone
	logx.Info().Msg("✓ Shutdown complete")
}
