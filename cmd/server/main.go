package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"weather-wrapper/weather-service/config"
	"weather-wrapper/weather-service/internal/api/v1/handlers"
	"weather-wrapper/weather-service/internal/providers"
	"weather-wrapper/weather-service/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownDuration = 30 * time.Second

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("env", conf.Env).
		Timestamp().
		Logger()
	log.Logger = logger

	forecastProvider := providers.NewForecastProvider(conf.ForecastBaseURL, conf.UpstreamTimeoutDuration())
	geocodeProvider := providers.NewGeocodeProvider(conf.GeocodeBaseURL, conf.GeocodeUserAgent, conf.UpstreamTimeoutDuration())

	weatherService := service.NewWeatherService(forecastProvider, geocodeProvider)

	handler := handlers.NewWeatherHandler(
		weatherService,
		conf.HTTPTimeoutDuration(),
		handlers.WithLogger(logger),
		handlers.WithCompression(conf.CompressResponses),
	)

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, httpServer); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("server stopped")
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, httpServer *http.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msgf("started server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDuration)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	})

	return g.Wait()
}
