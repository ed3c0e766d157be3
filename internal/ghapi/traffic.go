// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (traffic.go) fetches repository traffic. The views endpoint
// requires push access, so it only works for repositories the user owns.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RepoViews is the 14-day view summary for one repository.
type RepoViews struct {
	Count   int64 `json:"count"`
	Uniques int64 `json:"uniques"`
}

// FetchRepoViews fetches the rolling 14-day view count for owner/repo.
// A 403 means the token lacks push access; callers treat any error here as
// best-effort and count the repository as zero views.
func (c *Client) FetchRepoViews(ctx context.Context, owner, repo string) (*RepoViews, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/traffic/views", owner, repo)
	resp, err := c.GetREST(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("traffic fetch failed for %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from traffic endpoint for %s/%s",
			resp.StatusCode, owner, repo)
	}

	var views RepoViews
	if err := json.Unmarshal(resp.Body, &views); err != nil {
		return nil, fmt.Errorf("failed to parse traffic response for %s/%s: %w", owner, repo, err)
	}
	return &views, nil
}
