package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// requestURL assembles scheme://host:port{path}?{query}. A nil query uses
// the cluster default (pretty=1).
func (c *Cluster) requestURL(path string, query url.Values) string {
	if query == nil {
		query = c.query
	}
	rawURL := fmt.Sprintf("%s:%d%s", c.baseURL, c.port, path)
	if encoded := query.Encode(); encoded != "" {
		rawURL += "?" + encoded
	}
	return rawURL
}

// do issues exactly one HTTP exchange and returns the status code and body.
// Transport-level failures are wrapped and propagated; non-2xx statuses are
// normalized into *APIError. Nothing is retried.
func (c *Cluster) do(ctx context.Context, verb, rawURL string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, verb, rawURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", verb, rawURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", verb, rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s %s: reading response: %w", verb, rawURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, data, newAPIError(verb, rawURL, resp.StatusCode, data)
	}
	return resp.StatusCode, data, nil
}
