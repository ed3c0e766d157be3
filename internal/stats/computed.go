// Package stats implements the aggregation core.
//
// This file (computed.go) derives the cross-cutting metrics: repository
// count partitions, star averages, this-year language usage, topic tables,
// and year-over-year contribution growth. CalculateComputedStats is a pure
// function of its inputs and performs no I/O.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/LukeHagar/stats-action/internal/output"
)

// CalculateComputedStats derives computed metrics from the repository list,
// the overall language distribution, and the contribution stats. The now
// parameter fixes the current-year boundary.
//
// Repository counts cover only repositories the user owns; the this-year
// language aggregation spans every repository in the input, matching the
// overall distribution it is compared against.
func CalculateComputedStats(repos []output.RepoInfo, languages []output.LanguageAggregate, contrib output.ContributionStats, now time.Time) output.ComputedStats {
	computed := output.ComputedStats{}
	currentYear := now.Year()

	var totalStars int64
	for _, repo := range repos {
		if !repo.IsOwner {
			continue
		}
		computed.TotalRepos++
		totalStars += repo.Stars

		if repo.IsPrivate {
			computed.PrivateRepos++
		} else {
			computed.PublicRepos++
		}
		if repo.IsArchived {
			computed.ArchivedRepos++
		}
		if repo.IsFork {
			computed.ForkedRepos++
		}
		if repo.UpdatedAt.Year() == currentYear {
			computed.ActiveReposThisYear++
		}
		if repo.Stars > 0 {
			computed.ReposWithStars++
		}
		if repo.CreatedAt.Year() == currentYear {
			computed.ReposCreatedThisYear++
		}
	}
	computed.OriginalRepos = computed.TotalRepos - computed.ForkedRepos

	if computed.TotalRepos > 0 {
		computed.AverageStarsPerRepo = math.Round(float64(totalStars)/float64(computed.TotalRepos)*100) / 100
	}

	computed.LanguagesUsed = len(languages)
	if len(languages) > 0 {
		name := languages[0].LanguageName
		computed.PrimaryLanguage = &name
	}

	var activeThisYear []output.RepoInfo
	for _, repo := range repos {
		if repo.UpdatedAt.Year() == currentYear {
			activeThisYear = append(activeThisYear, repo)
		}
	}
	if thisYearLangs, _ := AggregateLanguages(activeThisYear); len(thisYearLangs) > 0 {
		name := thisYearLangs[0].LanguageName
		computed.PrimaryLanguageThisYear = &name
	}

	computed.TopTopics, computed.AllTopics = AggregateTopics(repos, DefaultTopTopics)
	computed.ContributionGrowth = contributionGrowth(contrib.MonthlyBreakdown, currentYear)

	return computed
}

// contributionGrowth compares this calendar year's contribution total
// against the prior year's, using the monthly breakdown. Growth percentage
// is nil when the prior year has no contributions. The most productive month
// is the breakdown entry with the maximum count; the earliest such month
// wins ties.
func contributionGrowth(breakdown []output.MonthlyContribution, currentYear int) output.ContributionGrowth {
	growth := output.ContributionGrowth{}

	thisYearPrefix := fmt.Sprintf("%04d-", currentYear)
	lastYearPrefix := fmt.Sprintf("%04d-", currentYear-1)

	bestCount := -1
	for _, month := range breakdown {
		if len(month.Month) >= 5 {
			switch month.Month[:5] {
			case thisYearPrefix:
				growth.ThisYearTotal += month.Contributions
			case lastYearPrefix:
				growth.LastYearTotal += month.Contributions
			}
		}
		if month.Contributions > bestCount {
			growth.MostProductiveMonth = month.Month
			bestCount = month.Contributions
		}
	}

	if growth.LastYearTotal > 0 {
		pct := math.Round(float64(growth.ThisYearTotal-growth.LastYearTotal)/float64(growth.LastYearTotal)*10000) / 100
		growth.GrowthPercentage = &pct
	}

	return growth
}
