package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const geocodeProviderName = "geocoding provider"

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type GeocodeProvider interface {
	Search(ctx context.Context, city string) (Coordinates, error)
}

type geocodeProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewGeocodeProvider(baseURL, userAgent string, timeout time.Duration) GeocodeProvider {
	return &geocodeProvider{
		baseURL:   baseURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Only lat and lon are read from each place; the rest of the payload is ignored.
type geocodePlace struct {
	Lat json.RawMessage `json:"lat"`
	Lon json.RawMessage `json:"lon"`
}

func (p *geocodeProvider) Search(ctx context.Context, city string) (Coordinates, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse geocode base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	// the provider's usage policy rejects requests without an identifying agent
	headers := http.Header{}
	headers.Set("User-Agent", p.userAgent)

	body, err := doGet(ctx, p.client, geocodeProviderName, u, headers)
	if err != nil {
		return Coordinates{}, err
	}

	var places []geocodePlace
	if err := json.Unmarshal(body, &places); err != nil {
		return Coordinates{}, &MalformedUpstreamDataError{Provider: geocodeProviderName, Err: err}
	}

	if len(places) == 0 {
		return Coordinates{}, ErrLocationNotFound
	}

	lat, err := parseCoordinate(places[0].Lat)
	if err != nil {
		return Coordinates{}, &MalformedUpstreamDataError{Provider: geocodeProviderName, Field: "lat", Err: err}
	}
	lon, err := parseCoordinate(places[0].Lon)
	if err != nil {
		return Coordinates{}, &MalformedUpstreamDataError{Provider: geocodeProviderName, Field: "lon", Err: err}
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// parseCoordinate accepts a JSON string ("42.6629") or a JSON number.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.New("value is missing")
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
	}

	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}
