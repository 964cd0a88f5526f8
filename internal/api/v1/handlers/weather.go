package handlers

import (
	"context"
	"net/http"
	"time"
	"weather-wrapper/weather-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
	validate       *validator.Validate
	logger         zerolog.Logger
	compress       bool
	handler        http.Handler
}

type Option func(*WeatherHandler)

func WithLogger(logger zerolog.Logger) Option {
	return func(h *WeatherHandler) {
		h.logger = logger
	}
}

// WithCompression gzips responses for clients that accept it.
func WithCompression(enabled bool) Option {
	return func(h *WeatherHandler) {
		h.compress = enabled
	}
}

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration, opts ...Option) *WeatherHandler {
	h := &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
		validate:       newQueryValidator(),
		logger:         log.Logger,
	}

	for _, opt := range opts {
		opt(h)
	}

	h.handler = h.routes()
	if h.compress {
		h.handler = gzhttp.GzipHandler(h.handler)
	}

	return h
}

func (h *WeatherHandler) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(accessLogMiddleware(h.logger)...)
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware)
	r.Use(middleware.RedirectSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/weather", h.GetWeather)
	r.Get("/geocode", h.Geocode)
	r.Get("/healthz", h.Health)

	return r
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := weatherParams{
		Latitude:  query.Get("latitude"),
		Longitude: query.Get("longitude"),
	}
	if err := h.validate.Struct(params); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	latitude, err := parseCoordinate(params.Latitude)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "query parameter 'latitude' must be a valid number")
		return
	}
	longitude, err := parseCoordinate(params.Longitude)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "query parameter 'longitude' must be a valid number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, err := h.weatherService.GetWeather(ctx, service.WeatherQuery{
		Latitude:  latitude,
		Longitude: longitude,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithRawJSON(w, http.StatusOK, body)
}

func (h *WeatherHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	params := geocodeParams{
		City: r.URL.Query().Get("city"),
	}
	if err := h.validate.Struct(params); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.weatherService.Geocode(ctx, service.GeocodeQuery{City: params.City})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, GeocodeResponse{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	})
}

func (h *WeatherHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
