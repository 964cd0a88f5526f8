package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string `validate:"required"`
	ServerAddress string `validate:"required"`

	Env         string
	LogLevel    string
	HTTPTimeout int32 `validate:"gt=0"`

	UpstreamTimeout  int32  `validate:"gt=0"`
	ForecastBaseURL  string `validate:"required,url"`
	GeocodeBaseURL   string `validate:"required,url"`
	GeocodeUserAgent string `validate:"required"`

	CompressResponses bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-wrapper")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", 30)
	v.SetDefault("UPSTREAM_TIMEOUT", 15)
	v.SetDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("GEOCODE_USER_AGENT", "weather-wrapper/1.0")
	v.SetDefault("COMPRESS_RESPONSES", true)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		ServerAddress:     v.GetString("SERVER_ADDRESS"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		UpstreamTimeout:   v.GetInt32("UPSTREAM_TIMEOUT"),
		ForecastBaseURL:   v.GetString("FORECAST_BASE_URL"),
		GeocodeBaseURL:    v.GetString("GEOCODE_BASE_URL"),
		GeocodeUserAgent:  v.GetString("GEOCODE_USER_AGENT"),
		CompressResponses: v.GetBool("COMPRESS_RESPONSES"),
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// UpstreamTimeoutDuration is the outbound client timeout. Like HTTP_TIMEOUT it is configured in seconds.
func (c *Config) UpstreamTimeoutDuration() time.Duration {
	return time.Duration(c.UpstreamTimeout) * time.Second
}
