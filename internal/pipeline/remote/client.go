// Package remote implements the HTTP client for the pipeline sync service,
// the authoritative source of board state when PIPELINE_BACKEND=remote.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	leaddomain "agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/platform/apperr"
)

// Client talks to the pipeline sync service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListBoard fetches the full authoritative lead list.
func (c *Client) ListBoard(ctx context.Context) ([]leaddomain.SavedLead, error) {
	const op = "remote.ListBoard"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/leads", nil)
	if err != nil {
		return nil, apperr.Internal("failed to build board request", err).WithOp(op)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Unavailable("pipeline sync service unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperr.Unavailable(
			fmt.Sprintf("pipeline sync service returned %d: %s", resp.StatusCode, body), nil,
		).WithOp(op)
	}

	var leads []leaddomain.SavedLead
	if err := json.NewDecoder(resp.Body).Decode(&leads); err != nil {
		return nil, apperr.Unavailable("malformed board payload", err).WithOp(op)
	}
	return leads, nil
}

// UpdateStatus confirms a stage change with the sync service.
func (c *Client) UpdateStatus(ctx context.Context, id, status string) error {
	const op = "remote.UpdateStatus"

	payload, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return apperr.Internal("failed to encode status payload", err).WithOp(op)
	}

	endpoint := fmt.Sprintf("%s/leads/%s/status", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperr.Internal("failed to build status request", err).WithOp(op)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Unavailable("pipeline sync service unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Unavailable(
			fmt.Sprintf("pipeline sync service returned %d: %s", resp.StatusCode, body), nil,
		).WithOp(op)
	}
	return nil
}
