package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider implements Resolver for JSON-over-HTTP data sources.
type HTTPProvider struct {
	*BaseProvider
	endpoint   string
	httpClient *http.Client
}

// NewHTTPProvider creates a new HTTP-based data provider.
func NewHTTPProvider(name, endpoint string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		BaseProvider: NewBaseProvider(name),
		endpoint:     endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Resolve executes a single query against the provider endpoint.
func (p *HTTPProvider) Resolve(ctx context.Context, q Query) (any, error) {
	start := time.Now()

	reqBody := map[string]any{
		"kind":   q.Kind,
		"params": q.Params,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		p.RecordFailure()
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		p.RecordFailure()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.RecordFailure()
		return nil, fmt.Errorf("provider call: %w", err)
	}
	defer resp.Body.Close()

	latency := time.Since(start)

	// Rate limit detection
	if resp.StatusCode == 429 {
		p.RecordFailure()
		return nil, fmt.Errorf("rate limited (429), retry after: %s", resp.Header.Get("Retry-After"))
	}

	// Access denied detection
	if resp.StatusCode == 403 {
		p.RecordFailure()
		return nil, fmt.Errorf("permission denied (403)")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.RecordFailure()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		p.RecordFailure()
		return nil, fmt.Errorf("service unavailable (503): %s", string(body))
	}

	if resp.StatusCode != http.StatusOK {
		p.RecordFailure()
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Result any    `json:"result"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		p.RecordFailure()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Error != "" {
		p.RecordFailure()
		return nil, fmt.Errorf("provider error: %s", payload.Error)
	}

	p.RecordSuccess(latency)
	return payload.Result, nil
}

// Close cleans up resources.
func (p *HTTPProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
