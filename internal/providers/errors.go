package providers

import (
	"errors"
	"fmt"
)

var ErrLocationNotFound = errors.New("location not found")

// UpstreamError is returned when a provider answers with anything other than 200.
// Body holds the raw upstream response text.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status code: %d", e.Provider, e.StatusCode)
}

// MalformedUpstreamDataError is returned when a 200 payload cannot be interpreted.
type MalformedUpstreamDataError struct {
	Provider string
	Field    string
	Err      error
}

func (e *MalformedUpstreamDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s returned malformed data: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s returned malformed %s: %v", e.Provider, e.Field, e.Err)
}

func (e *MalformedUpstreamDataError) Unwrap() error {
	return e.Err
}
