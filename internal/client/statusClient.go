package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gift-registry-service/internal/dto"
)

// StatusClient queries the service's own status endpoint. It is the read path
// the poller uses; it never mutates anything.
type StatusClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewStatusClient(baseURL string) *StatusClient {
	return &StatusClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *StatusClient) CheckStatus(ctx context.Context, preferenceID string) (string, error) {
	url := fmt.Sprintf("%s/api/payments/status/%s", c.baseURL, preferenceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status endpoint error %d: %s", resp.StatusCode, string(b))
	}

	var result dto.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}
	if result.Payment == nil {
		return "", fmt.Errorf("status response missing payment")
	}

	return result.Payment.Status, nil
}
