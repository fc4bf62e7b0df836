package net

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPChecker posts the drawing as JSON.
type HTTPChecker struct {
	url    string
	client *http.Client
}

func NewHTTPChecker(url string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{url: url, client: &http.Client{Timeout: timeout}}
}

func (c *HTTPChecker) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode check request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build check request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Info("[CHECK] submitting", slog.String("url", c.url), slog.Int("bytes", len(body)))
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("check request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read check response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Detail != "" {
			return nil, fmt.Errorf("grader returned %d: %s", resp.StatusCode, detail.Detail)
		}
		return nil, fmt.Errorf("grader returned %d", resp.StatusCode)
	}

	var res CheckResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode check response: %w", err)
	}
	return verdict(&res)
}

func (c *HTTPChecker) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
