// Package feed adapts the upstream business-search provider into lead
// candidates and flags the ones already saved in the store.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/config"

	"golang.org/x/time/rate"
)

// providerResult is the raw search hit as the provider returns it.
type providerResult struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	Opportunity string `json:"opportunity"`
}

// Client calls the search provider. Requests are rate limited client-side so
// bursts of dashboard searches stay inside the provider's quota.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg config.DiscoveryConfig) *Client {
	return &Client{
		baseURL: cfg.GetDiscoveryBaseURL(),
		apiKey:  cfg.GetDiscoveryAPIKey(),
		http:    &http.Client{Timeout: cfg.GetDiscoveryTimeout()},
		limiter: rate.NewLimiter(rate.Limit(cfg.GetDiscoveryRatePerSecond()), cfg.GetDiscoveryBurst()),
	}
}

// Search queries the provider for businesses matching keyword and city.
func (c *Client) Search(ctx context.Context, keyword, city string) ([]providerResult, error) {
	const op = "discovery.Search"

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Unavailable("search rate limit wait aborted", err).WithOp(op)
	}

	query := url.Values{}
	query.Set("keyword", keyword)
	if city != "" {
		query.Set("city", city)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, apperr.Internal("failed to build search request", err).WithOp(op)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Unavailable("search provider unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperr.Unavailable(
			fmt.Sprintf("search provider returned %d: %s", resp.StatusCode, body), nil,
		).WithOp(op)
	}

	var results []providerResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, apperr.Unavailable("malformed search payload", err).WithOp(op)
	}
	return results, nil
}
