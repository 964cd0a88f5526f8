package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// doGet issues a single GET and returns the body of a 200 response.
// Any other status comes back as *UpstreamError carrying the raw body.
func doGet(ctx context.Context, client *http.Client, provider string, u *url.URL, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s request could not be built: %w", provider, err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s response could not be read: %w", provider, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
