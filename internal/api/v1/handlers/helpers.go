package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"weather-wrapper/weather-service/internal/providers"
	"weather-wrapper/weather-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const locationNotFoundDetail = "Location not found"

func newQueryValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("query")
	})
	return v
}

func validationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err.Error()
	}

	fieldErr := validationErrs[0]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("query parameter '%s' is required", fieldErr.Field())
	default:
		return fmt.Sprintf("query parameter '%s' is invalid", fieldErr.Field())
	}
}

// parseCoordinate reads a decimal query value. Hex floats are rejected even though strconv accepts them.
func parseCoordinate(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	digits := strings.TrimLeft(value, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, fmt.Errorf("hexadecimal value %q is not allowed", raw)
	}
	return strconv.ParseFloat(value, 64)
}

// respondWithServiceError maps provider and service errors onto the inbound response.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := hlog.FromRequest(r)

	var upstreamErr *providers.UpstreamError
	var malformedErr *providers.MalformedUpstreamDataError
	var netErr net.Error

	switch {
	case errors.As(err, &upstreamErr):
		logger.Warn().
			Str("provider", upstreamErr.Provider).
			Int("upstream_status", upstreamErr.StatusCode).
			Msg("upstream returned non-200 status")
		respondWithError(w, passthroughStatus(upstreamErr.StatusCode), upstreamErr.Body)
	case errors.Is(err, providers.ErrLocationNotFound):
		respondWithError(w, http.StatusNotFound, locationNotFoundDetail)
	case errors.Is(err, service.ErrEmptyCity):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &malformedErr):
		logger.Error().Err(err).Msg("upstream returned malformed data")
		respondWithError(w, http.StatusBadGateway, "upstream returned malformed data")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		logger.Error().Err(err).Msg("upstream request timed out")
		respondWithError(w, http.StatusGatewayTimeout, "upstream request timed out")
	default:
		logger.Error().Err(err).Msg("upstream request failed")
		respondWithError(w, http.StatusBadGateway, "upstream request failed")
	}
}

// passthroughStatus keeps the upstream code unless it cannot describe a failure.
func passthroughStatus(code int) int {
	if code < http.StatusBadRequest || code > 599 {
		return http.StatusBadGateway
	}
	return code
}

func respondWithError(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, ErrorResponse{Detail: detail})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
