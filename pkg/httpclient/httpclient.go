// Package httpclient provides small generic helpers for JSON HTTP APIs.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
)

// StatusError reports a response whose status code was not in the accepted
// set. The body is retained so callers can branch on specific codes and
// surface the server's message.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// GetResource issues a GET and decodes the JSON response into T.
// A status code outside okStatuses yields a *StatusError.
func GetResource[T any](ctx context.Context, client *http.Client, baseURL, endpoint string, okStatuses []int) (T, error) {
	var resource T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		return resource, fmt.Errorf("couldn't create request for %s: %w", endpoint, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return resource, fmt.Errorf("couldn't get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resource, fmt.Errorf("couldn't read response from %s: %w", endpoint, err)
	}

	if !slices.Contains(okStatuses, resp.StatusCode) {
		return resource, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, &resource); err != nil {
		return resource, fmt.Errorf("couldn't parse response from %s: %w", endpoint, err)
	}

	return resource, nil
}

// PostJSON issues a POST with a JSON-encoded payload and returns the raw
// status code and body. Only transport-level failures produce an error;
// status interpretation is left to the caller.
func PostJSON(ctx context.Context, client *http.Client, url string, payload any) (int, []byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("couldn't encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, fmt.Errorf("couldn't create request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("couldn't post to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("couldn't read response from %s: %w", url, err)
	}

	return resp.StatusCode, body, nil
}
