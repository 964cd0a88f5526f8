package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"weather-wrapper/weather-service/internal/providers"
)

var ErrEmptyCity = errors.New("city cannot be empty")

type WeatherQuery struct {
	Latitude  float64
	Longitude float64
}

type GeocodeQuery struct {
	City string
}

type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type WeatherService interface {
	GetWeather(ctx context.Context, query WeatherQuery) (json.RawMessage, error)
	Geocode(ctx context.Context, query GeocodeQuery) (GeocodeResult, error)
}

type weatherService struct {
	forecast providers.ForecastProvider
	geocode  providers.GeocodeProvider
}

func NewWeatherService(forecast providers.ForecastProvider, geocode providers.GeocodeProvider) WeatherService {
	return &weatherService{
		forecast: forecast,
		geocode:  geocode,
	}
}

func (s *weatherService) GetWeather(ctx context.Context, query WeatherQuery) (json.RawMessage, error) {
	return s.forecast.GetHourlyTemperature(ctx, query.Latitude, query.Longitude)
}

func (s *weatherService) Geocode(ctx context.Context, query GeocodeQuery) (GeocodeResult, error) {
	if strings.TrimSpace(query.City) == "" {
		return GeocodeResult{}, ErrEmptyCity
	}

	coords, err := s.geocode.Search(ctx, query.City)
	if err != nil {
		return GeocodeResult{}, err
	}

	return GeocodeResult{
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}, nil
}
