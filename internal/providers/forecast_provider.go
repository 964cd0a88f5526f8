package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	forecastProviderName = "forecast provider"

	hourlyTemperatureMetric = "temperature_180m"
	forecastWindowHours     = 12
	pastWindowHours         = 12

	hourLayout = "2006-01-02T15:04:05"
)

type ForecastProvider interface {
	GetHourlyTemperature(ctx context.Context, latitude, longitude float64) (json.RawMessage, error)
}

type ForecastOption func(*forecastProvider)

// WithClock overrides the time source used to compute the requested hour.
func WithClock(now func() time.Time) ForecastOption {
	return func(p *forecastProvider) {
		p.now = now
	}
}

type forecastProvider struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewForecastProvider(baseURL string, timeout time.Duration, opts ...ForecastOption) ForecastProvider {
	p := &forecastProvider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// CurrentHour returns t in UTC truncated to the hour, without a zone suffix.
func CurrentHour(t time.Time) string {
	return t.UTC().Truncate(time.Hour).Format(hourLayout)
}

func (p *forecastProvider) GetHourlyTemperature(ctx context.Context, latitude, longitude float64) (json.RawMessage, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse forecast base URL: %w", err)
	}

	hour := CurrentHour(p.now())

	q := u.Query()
	q.Set("latitude", formatCoordinate(latitude))
	q.Set("longitude", formatCoordinate(longitude))
	q.Set("hourly", hourlyTemperatureMetric)
	q.Set("start", hour)
	q.Set("end", hour)
	q.Set("timezone", "auto")
	q.Set("timeformat", "unixtime")
	q.Set("forecast_hours", strconv.Itoa(forecastWindowHours))
	q.Set("past_hours", strconv.Itoa(pastWindowHours))
	q.Set("temporal_resolution", "native")
	u.RawQuery = q.Encode()

	body, err := doGet(ctx, p.client, forecastProviderName, u, nil)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, &MalformedUpstreamDataError{
			Provider: forecastProviderName,
			Err:      errors.New("response body is not valid JSON"),
		}
	}

	return json.RawMessage(body), nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
