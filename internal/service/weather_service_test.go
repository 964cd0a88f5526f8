package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"weather-wrapper/weather-service/internal/mocks"
	"weather-wrapper/weather-service/internal/providers"
	"weather-wrapper/weather-service/internal/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WeatherServiceTestSuite struct {
	suite.Suite
	mockForecast *mocks.MockForecastProvider
	mockGeocode  *mocks.MockGeocodeProvider
	service      service.WeatherService
	ctx          context.Context
}

func (s *WeatherServiceTestSuite) SetupTest() {
	s.mockForecast = mocks.NewMockForecastProvider(s.T())
	s.mockGeocode = mocks.NewMockGeocodeProvider(s.T())
	s.service = service.NewWeatherService(s.mockForecast, s.mockGeocode)
	s.ctx = context.Background()
}

func (s *WeatherServiceTestSuite) TestGetWeatherReturnsProviderPayload() {
	payload := json.RawMessage(`{"hourly":{"time":[1714568400],"temperature_180m":[11.2]}}`)

	s.mockForecast.On("GetHourlyTemperature", mock.Anything, 42.66, 21.16).
		Return(payload, nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherQuery{Latitude: 42.66, Longitude: 21.16})

	s.NoError(err)
	s.Equal(payload, result)
}

func (s *WeatherServiceTestSuite) TestGetWeatherPropagatesUpstreamError() {
	upstreamErr := &providers.UpstreamError{
		Provider:   "forecast provider",
		StatusCode: http.StatusInternalServerError,
		Body:       "internal error",
	}

	s.mockForecast.On("GetHourlyTemperature", mock.Anything, 42.66, 21.16).
		Return(json.RawMessage(nil), upstreamErr).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherQuery{Latitude: 42.66, Longitude: 21.16})

	s.Nil(result)
	s.Equal(upstreamErr, err)
}

func (s *WeatherServiceTestSuite) TestGetWeatherAtOrigin() {
	s.mockForecast.On("GetHourlyTemperature", mock.Anything, 0.0, 0.0).
		Return(json.RawMessage(`{}`), nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherQuery{})

	s.NoError(err)
	s.JSONEq(`{}`, string(result))
}

func (s *WeatherServiceTestSuite) TestGeocodeWithValidCity() {
	s.mockGeocode.On("Search", mock.Anything, "Prishtina").
		Return(providers.Coordinates{Latitude: 42.6629, Longitude: 21.1655}, nil).Once()

	result, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "Prishtina"})

	s.NoError(err)
	s.Equal(service.GeocodeResult{Latitude: 42.6629, Longitude: 21.1655}, result)
}

func (s *WeatherServiceTestSuite) TestGeocodeRepeatedRequestsCallProviderEachTime() {
	s.mockGeocode.On("Search", mock.Anything, "Prishtina").
		Return(providers.Coordinates{Latitude: 42.6629, Longitude: 21.1655}, nil).Twice()

	first, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "Prishtina"})
	s.NoError(err)
	second, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "Prishtina"})
	s.NoError(err)

	s.Equal(first, second)
}

func (s *WeatherServiceTestSuite) TestGeocodeWithEmptyCity() {
	result, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "   "})

	s.ErrorIs(err, service.ErrEmptyCity)
	s.Equal(service.GeocodeResult{}, result)

	s.mockGeocode.AssertNotCalled(s.T(), "Search")
}

func (s *WeatherServiceTestSuite) TestGeocodeLocationNotFound() {
	s.mockGeocode.On("Search", mock.Anything, "Atlantis").
		Return(providers.Coordinates{}, providers.ErrLocationNotFound).Once()

	result, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "Atlantis"})

	s.ErrorIs(err, providers.ErrLocationNotFound)
	s.Equal(service.GeocodeResult{}, result)
}

func (s *WeatherServiceTestSuite) TestGeocodeProviderError() {
	expectedError := errors.New("geocoding provider request failed")

	s.mockGeocode.On("Search", mock.Anything, "Paris").
		Return(providers.Coordinates{}, expectedError).Once()

	_, err := s.service.Geocode(s.ctx, service.GeocodeQuery{City: "Paris"})

	s.Equal(expectedError, err)
}

func TestWeatherServiceSuite(t *testing.T) {
	suite.Run(t, new(WeatherServiceTestSuite))
}
