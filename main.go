package main

import (
	"os"
	"os/signal"
	"syscall"

	"studentreg/internal/config"
	"studentreg/internal/logging"
	"studentreg/internal/services"
	"studentreg/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New(), os.Getenv("CONFIG_PATH"))
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).With().Str("env", cfg.AppEnv).Logger()

	// --- Initialize RabbitMQ Client ---
	var publisher services.StudentEventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitExchange})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing RabbitMQ client")
			}
		}()
		publisher = mqClient
		log.Info().Str("exchange", cfg.RabbitExchange).Msg("publishing student events")
	}

	app, err := NewApp(cfg, log, publisher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create app")
	}

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Fiber.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
