// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (contributions.go) fetches contribution calendars. The GraphQL
// contributionsCollection field only accepts ranges of about one year, so
// callers fetch one range per calendar year and merge the results.
package ghapi

import (
	"context"
	"fmt"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/LukeHagar/stats-action/internal/output"
)

// ContributionWindows returns one [from, to) range per calendar year from the
// account creation instant through now. The first window starts at the exact
// creation time and the last ends at now; interior windows cover whole years.
func ContributionWindows(createdAt, now time.Time) [][2]time.Time {
	if now.Before(createdAt) {
		return nil
	}

	var windows [][2]time.Time
	for year := createdAt.Year(); year <= now.Year(); year++ {
		from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)

		if year == createdAt.Year() {
			from = createdAt
		}
		if year == now.Year() {
			to = now
		}
		windows = append(windows, [2]time.Time{from, to})
	}
	return windows
}

// FetchContributionRange fetches the contribution collection for one
// [from, to) window. The window must not exceed one year.
func (c *Client) FetchContributionRange(ctx context.Context, login string, from, to time.Time) (*output.ContributionCollection, error) {
	var q contributionRangeQuery
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	if err := c.queryGraphQL(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("contribution query failed for %s (%s to %s): %w",
			login, from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}

	cc := q.User.ContributionsCollection
	coll := &output.ContributionCollection{
		TotalCommitContributions:            int(cc.TotalCommitContributions),
		TotalIssueContributions:             int(cc.TotalIssueContributions),
		TotalPullRequestContributions:       int(cc.TotalPullRequestContributions),
		TotalPullRequestReviewContributions: int(cc.TotalPullRequestReviewContributions),
		TotalRepositoryContributions:        int(cc.TotalRepositoryContributions),
		RestrictedContributionsCount:        int(cc.RestrictedContributionsCount),
		ContributionCalendar: output.ContributionCalendar{
			TotalContributions: int(cc.ContributionCalendar.TotalContributions),
		},
	}

	for _, week := range cc.ContributionCalendar.Weeks {
		var days []output.ContributionDay
		for _, day := range week.ContributionDays {
			days = append(days, output.ContributionDay{
				Date:              string(day.Date),
				ContributionCount: int(day.ContributionCount),
			})
		}
		coll.ContributionCalendar.Weeks = append(coll.ContributionCalendar.Weeks, output.ContributionWeek{
			ContributionDays: days,
		})
	}

	return coll, nil
}
