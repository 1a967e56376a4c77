package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPClient talks to a remote analysis service over its JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a client for the given service base URL. The client
// carries no request timeout: a submission waits until the transport
// resolves, and cancellation only happens through the caller's context.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{},
	}
}

func (c *HTTPClient) Analyze(ctx context.Context, description string) (Result, error) {
	payload, err := json.Marshal(Request{Description: description})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		// A malformed error body still yields a StatusError; the reason
		// just stays empty and the caller substitutes its generic message.
		_ = json.Unmarshal(body, &failure)
		return Result{}, &StatusError{Code: res.StatusCode, Reason: strings.TrimSpace(failure.Error)}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

func (c *HTTPClient) Status(ctx context.Context) (Health, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/status", nil)
	if err != nil {
		return Health{}, fmt.Errorf("create request: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return Health{}, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return Health{}, fmt.Errorf("status endpoint status %d: %s", res.StatusCode, string(body))
	}

	var payload struct {
		MLEnhancement Health `json:"ml_enhancement"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Health{}, fmt.Errorf("decode response: %w", err)
	}
	return payload.MLEnhancement, nil
}
