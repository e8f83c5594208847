// Buffered HTTP helpers shared by the upstream service clients.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UpstreamResponse represents a fully buffered upstream response.
//
// Bodies are accumulated in memory before parsing; memory use is bounded by
// the upstream response size.
type UpstreamResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the response carries a 2xx status.
func (r *UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// doBuffered executes the request, drains the body, and attempts a JSON parse.
func doBuffered(client *http.Client, req *http.Request) (*UpstreamResponse, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	upstream := &UpstreamResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		upstream.IsJSON = true
		upstream.JSONData = jsonData
	}

	return upstream, nil
}

// getBuffered performs a GET request and returns the buffered response.
func getBuffered(ctx context.Context, client *http.Client, fullURL string) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return doBuffered(client, req)
}

// postJSON performs a POST request with a JSON body and the given headers.
func postJSON(ctx context.Context, client *http.Client, fullURL string, payload any, headers map[string]string) (*UpstreamResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return doBuffered(client, req)
}
