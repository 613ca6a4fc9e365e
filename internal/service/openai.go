package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/openai-cake/backend/internal/metrics"
)

// errorResponse is the error envelope returned by OpenAI-compatible APIs
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// postJSON sends payload to url with bearer auth and decodes a 2xx reply into
// out. The raw body is returned for debug logging.
func postJSON(ctx context.Context, client *http.Client, call, url, apiKey string, payload, out any) (body []byte, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(call, start, err) }()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, apiError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return body, fmt.Errorf("failed to decode response: %w", err)
	}
	return body, nil
}

func apiError(status int, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return fmt.Errorf("API request failed with status %d: %s", status, e.Error.Message)
	}
	return fmt.Errorf("API request failed with status %d: %s", status, strings.TrimSpace(string(body)))
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
