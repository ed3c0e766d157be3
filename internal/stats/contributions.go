// Package stats implements the aggregation core.
//
// This file (contributions.go) derives streaks, weekday activity, monthly
// breakdowns, and averages from a merged contribution calendar. All of it
// operates on the flattened day sequence, which the merge step guarantees is
// chronological.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/LukeHagar/stats-action/internal/output"
)

const isoDate = "2006-01-02"

// AnalyzeContributions computes contribution statistics from the merged
// collection. The today parameter supplies the wall-clock date used by the
// current-streak rule; passing it in keeps the function deterministic for a
// frozen input set.
//
// An empty calendar yields all-zero stats and an empty monthly breakdown.
func AnalyzeContributions(coll *output.ContributionCollection, today time.Time) output.ContributionStats {
	stats := output.ContributionStats{
		TotalContributions: coll.ContributionCalendar.TotalContributions,
		MonthlyBreakdown:   []output.MonthlyContribution{},
	}

	var days []output.ContributionDay
	for _, week := range coll.ContributionCalendar.Weeks {
		days = append(days, week.ContributionDays...)
	}
	if len(days) == 0 {
		return stats
	}

	stats.MonthlyBreakdown = monthlyBreakdown(days)
	stats.MostActiveDay = mostActiveWeekday(days)
	stats.LongestStreak = longestStreak(days)
	stats.CurrentStreak = currentStreak(days, today)

	perDay := float64(stats.TotalContributions) / float64(len(days))
	stats.AveragePerDay = round2(perDay)
	stats.AveragePerWeek = round2(perDay * 7)
	stats.AveragePerMonth = round2(perDay * 30)

	return stats
}

// monthlyBreakdown groups day counts by "YYYY-MM" and returns them in
// ascending month order. Lexicographic order of the key matches
// chronological order.
func monthlyBreakdown(days []output.ContributionDay) []output.MonthlyContribution {
	totals := make(map[string]int)
	for _, day := range days {
		if len(day.Date) < 7 {
			continue
		}
		totals[day.Date[:7]] += day.ContributionCount
	}

	months := make([]string, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Strings(months)

	breakdown := make([]output.MonthlyContribution, 0, len(months))
	for _, month := range months {
		breakdown = append(breakdown, output.MonthlyContribution{
			Month:         month,
			Contributions: totals[month],
		})
	}
	return breakdown
}

// mostActiveWeekday returns the weekday name with the highest summed count.
// Ties resolve to the weekday encountered first in the day sequence.
func mostActiveWeekday(days []output.ContributionDay) string {
	totals := make(map[string]int)
	var order []string

	for _, day := range days {
		date, err := time.Parse(isoDate, day.Date)
		if err != nil {
			continue
		}
		weekday := date.Weekday().String()
		if _, seen := totals[weekday]; !seen {
			order = append(order, weekday)
		}
		totals[weekday] += day.ContributionCount
	}

	best := ""
	bestCount := -1
	for _, weekday := range order {
		if totals[weekday] > bestCount {
			best = weekday
			bestCount = totals[weekday]
		}
	}
	return best
}

// longestStreak returns the length of the longest run of consecutive days
// with at least one contribution.
func longestStreak(days []output.ContributionDay) int {
	longest, current := 0, 0
	for _, day := range days {
		if day.ContributionCount > 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// currentStreak counts consecutive contribution days backward from the most
// recent day. A zero-count most-recent day that is today does not break the
// streak, since today's data may still be incomplete; counting continues
// from the day before it.
func currentStreak(days []output.ContributionDay, today time.Time) int {
	i := len(days) - 1
	if i >= 0 && days[i].ContributionCount == 0 && days[i].Date == today.Format(isoDate) {
		i--
	}

	streak := 0
	for ; i >= 0; i-- {
		if days[i].ContributionCount == 0 {
			break
		}
		streak++
	}
	return streak
}

// round2 rounds to 2 decimal places, half away from zero on the scaled
// integer.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
