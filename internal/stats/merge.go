// Package stats implements the aggregation core.
//
// This file (merge.go) combines per-calendar-year contribution collections
// into one multi-year collection. GitHub's contributionsCollection query
// windows results to at most a year, so a full history is fetched as one
// collection per year and merged here.
package stats

import (
	"errors"

	"github.com/LukeHagar/stats-action/internal/logger"
	"github.com/LukeHagar/stats-action/internal/output"
)

// ErrNoContributionData means every per-year contribution fetch failed.
// A run cannot produce meaningful streak or calendar analytics without at
// least one year of data, so callers treat this as fatal.
var ErrNoContributionData = errors.New("no contribution data for any year")

// MergeContributions merges per-year collections, given in ascending year
// order, into one collection. Scalar counters are summed field-wise and the
// week sequences are concatenated in input order, which keeps the flattened
// day sequence chronological for the streak analysis downstream.
//
// A nil entry marks a year whose fetch failed; it is skipped with a logged
// warning rather than treated as zero. If every entry is nil,
// ErrNoContributionData is returned.
func MergeContributions(collections []*output.ContributionCollection) (*output.ContributionCollection, error) {
	var merged *output.ContributionCollection

	for i, coll := range collections {
		if coll == nil {
			logger.Named("stats").Warn().
				Int("yearIndex", i).
				Msg("contribution year missing, excluded from merge")
			continue
		}

		if merged == nil {
			// First successful year becomes the accumulator. The weeks
			// slice is cloned so later appends never alias the input.
			c := *coll
			c.ContributionCalendar.Weeks = append([]output.ContributionWeek(nil),
				coll.ContributionCalendar.Weeks...)
			merged = &c
			continue
		}

		merged.TotalCommitContributions += coll.TotalCommitContributions
		merged.TotalIssueContributions += coll.TotalIssueContributions
		merged.TotalPullRequestContributions += coll.TotalPullRequestContributions
		merged.TotalPullRequestReviewContributions += coll.TotalPullRequestReviewContributions
		merged.TotalRepositoryContributions += coll.TotalRepositoryContributions
		merged.RestrictedContributionsCount += coll.RestrictedContributionsCount

		merged.ContributionCalendar.TotalContributions += coll.ContributionCalendar.TotalContributions
		merged.ContributionCalendar.Weeks = append(merged.ContributionCalendar.Weeks,
			coll.ContributionCalendar.Weeks...)
	}

	if merged == nil {
		return nil, ErrNoContributionData
	}
	return merged, nil
}
