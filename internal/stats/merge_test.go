package stats

import (
	"errors"
	"testing"

	"github.com/LukeHagar/stats-action/internal/output"
)

func yearCollection(commits, total int, dates ...string) *output.ContributionCollection {
	var days []output.ContributionDay
	for _, date := range dates {
		days = append(days, output.ContributionDay{Date: date, ContributionCount: 1})
	}
	return &output.ContributionCollection{
		TotalCommitContributions:            commits,
		TotalIssueContributions:             1,
		TotalPullRequestContributions:       2,
		TotalPullRequestReviewContributions: 3,
		TotalRepositoryContributions:        4,
		RestrictedContributionsCount:        5,
		ContributionCalendar: output.ContributionCalendar{
			TotalContributions: total,
			Weeks:              []output.ContributionWeek{{ContributionDays: days}},
		},
	}
}

func TestMergeContributions(t *testing.T) {
	t.Parallel()

	merged, err := MergeContributions([]*output.ContributionCollection{
		yearCollection(10, 100, "2023-06-01"),
		yearCollection(20, 200, "2024-06-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.TotalCommitContributions != 30 {
		t.Errorf("commits = %d, want 30", merged.TotalCommitContributions)
	}
	if merged.TotalIssueContributions != 2 || merged.RestrictedContributionsCount != 10 {
		t.Errorf("scalar counters not summed field-wise: %+v", merged)
	}
	if merged.ContributionCalendar.TotalContributions != 300 {
		t.Errorf("calendar total = %d, want 300", merged.ContributionCalendar.TotalContributions)
	}

	// Weeks must be concatenated in input (ascending year) order
	if len(merged.ContributionCalendar.Weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(merged.ContributionCalendar.Weeks))
	}
	first := merged.ContributionCalendar.Weeks[0].ContributionDays[0].Date
	second := merged.ContributionCalendar.Weeks[1].ContributionDays[0].Date
	if first != "2023-06-01" || second != "2024-06-01" {
		t.Errorf("week order broken: %s then %s", first, second)
	}
}

func TestMergeContributionsSkipsFailedYear(t *testing.T) {
	t.Parallel()

	merged, err := MergeContributions([]*output.ContributionCollection{
		yearCollection(10, 100, "2022-06-01"),
		nil, // failed fetch, excluded rather than zeroed
		yearCollection(20, 200, "2024-06-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.TotalCommitContributions != 30 {
		t.Errorf("commits = %d, want 30", merged.TotalCommitContributions)
	}
	if len(merged.ContributionCalendar.Weeks) != 2 {
		t.Errorf("weeks = %d, want 2", len(merged.ContributionCalendar.Weeks))
	}
}

func TestMergeContributionsAllFailed(t *testing.T) {
	t.Parallel()

	_, err := MergeContributions([]*output.ContributionCollection{nil, nil, nil})
	if !errors.Is(err, ErrNoContributionData) {
		t.Fatalf("err = %v, want ErrNoContributionData", err)
	}

	_, err = MergeContributions(nil)
	if !errors.Is(err, ErrNoContributionData) {
		t.Fatalf("empty input: err = %v, want ErrNoContributionData", err)
	}
}

func TestMergeContributionsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	first := yearCollection(10, 100, "2023-06-01")
	merged, err := MergeContributions([]*output.ContributionCollection{
		first,
		yearCollection(20, 200, "2024-06-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.ContributionCalendar.Weeks) != 1 {
		t.Errorf("input collection mutated: %d weeks", len(first.ContributionCalendar.Weeks))
	}
	if first.TotalCommitContributions != 10 {
		t.Errorf("input counters mutated: %d", first.TotalCommitContributions)
	}
	if merged == first {
		t.Error("merge must not alias its first input")
	}
}
