// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (ratelimit.go) fetches rate limit information from the REST
// rate_limit endpoint and pushes it into the global state so that fetch
// primitives can throttle themselves before exceeding API quotas.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LukeHagar/stats-action/internal/state"
)

// RateLimitResponse represents the GitHub API rate limit response.
// This struct matches the GitHub API rate limit endpoint response format.
type RateLimitResponse struct {
	Resources struct {
		Core struct {
			Limit     int64 `json:"limit"`     // Total API calls allowed per hour
			Remaining int64 `json:"remaining"` // API calls remaining in current hour
			Reset     int64 `json:"reset"`     // Unix timestamp when rate limit resets
		} `json:"core"`
		GraphQL struct {
			Limit     int64 `json:"limit"`     // Total GraphQL points allowed per hour
			Used      int64 `json:"used"`      // GraphQL points used in current hour
			Remaining int64 `json:"remaining"` // GraphQL points remaining in current hour
			Reset     int64 `json:"reset"`     // Unix timestamp when rate limit resets
		} `json:"graphql"`
	} `json:"resources"`
}

// GetRateLimit fetches the current GitHub API rate limit information.
// The rate_limit endpoint itself does not count against the quota, so this
// bypasses the rate limit check.
func (c *Client) GetRateLimit(ctx context.Context) (*RateLimitResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return nil, fmt.Errorf("building rate limit request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate limit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from rate limit endpoint", resp.StatusCode)
	}

	var response RateLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse rate limit response: %w", err)
	}

	return &response, nil
}

// UpdateRateLimitInfo fetches and updates the current rate limit information.
func (c *Client) UpdateRateLimitInfo(ctx context.Context) {
	rateLimit, err := c.GetRateLimit(ctx)
	if err != nil {
		// Don't fail the entire operation if we can't get rate limit info
		return
	}

	resetTime := time.Unix(rateLimit.Resources.Core.Reset, 0)
	state.Get().UpdateRateLimit(
		rateLimit.Resources.Core.Limit,
		rateLimit.Resources.Core.Remaining,
		resetTime,
	)

	graphqlResetTime := time.Unix(rateLimit.Resources.GraphQL.Reset, 0)
	state.Get().UpdateGraphQLRateLimit(
		rateLimit.Resources.GraphQL.Limit,
		rateLimit.Resources.GraphQL.Used,
		rateLimit.Resources.GraphQL.Remaining,
		graphqlResetTime,
	)
}
