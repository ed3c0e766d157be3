// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (contributor_stats.go) fetches per-repository contributor
// statistics. The endpoint is best-effort by contract: every failure mode,
// including exhausting the 202 polling budget, resolves to "no data" with a
// logged warning and never aborts sibling fetches.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LukeHagar/stats-action/internal/logger"
)

// ContributorWeek is one week of a contributor's activity in a repository.
type ContributorWeek struct {
	WeekStart int64 `json:"w"` // Unix timestamp of the week's start
	Additions int64 `json:"a"`
	Deletions int64 `json:"d"`
	Commits   int64 `json:"c"`
}

// ContributorStats is one contributor's lifetime activity in a repository,
// as returned by the stats/contributors endpoint.
type ContributorStats struct {
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	Total int64             `json:"total"`
	Weeks []ContributorWeek `json:"weeks"`
}

// FetchContributorStats fetches contributor statistics for owner/repo.
//
// GitHub computes these lazily; HTTP 202 means the computation is in
// progress, so the fetch polls with a fixed delay up to a hard attempt cap.
// Returns nil when no data could be obtained for any reason.
func (c *Client) FetchContributorStats(ctx context.Context, owner, repo string) []ContributorStats {
	endpoint := fmt.Sprintf("/repos/%s/%s/stats/contributors", owner, repo)
	log := logger.Named("ghapi")

	for attempt := 1; attempt <= statsMaxAttempts; attempt++ {
		resp, err := c.GetREST(ctx, endpoint)
		if err != nil {
			log.Warn().Err(err).
				Str("repo", owner+"/"+repo).
				Msg("contributor stats unavailable")
			return nil
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var stats []ContributorStats
			if err := json.Unmarshal(resp.Body, &stats); err != nil {
				log.Warn().Err(err).
					Str("repo", owner+"/"+repo).
					Msg("contributor stats response unparseable")
				return nil
			}
			return stats

		case http.StatusAccepted:
			if attempt == statsMaxAttempts {
				log.Warn().
					Str("repo", owner+"/"+repo).
					Int("attempts", attempt).
					Msg("contributor stats still computing, giving up")
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.statsDelay):
			}

		case http.StatusNoContent:
			// Empty repository
			return nil

		default:
			log.Warn().
				Str("repo", owner+"/"+repo).
				Int("status", resp.StatusCode).
				Msg("contributor stats unavailable")
			return nil
		}
	}

	return nil
}
