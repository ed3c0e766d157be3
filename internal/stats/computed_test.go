package stats

import (
	"testing"
	"time"

	"github.com/LukeHagar/stats-action/internal/output"
)

// fixedNow pins the current-year boundary for deterministic assertions.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func syntheticRepos() []output.RepoInfo {
	lastYear := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	thisYear := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	return []output.RepoInfo{
		{Owner: "octocat", Name: "a", IsOwner: true, Stars: 10, CreatedAt: lastYear, UpdatedAt: thisYear,
			Languages: []output.LanguageEdge{{Name: "Go", Size: 9000}}},
		{Owner: "octocat", Name: "b", IsOwner: true, Stars: 5, IsPrivate: true, CreatedAt: thisYear, UpdatedAt: thisYear,
			Languages: []output.LanguageEdge{{Name: "Python", Size: 1000}}},
		{Owner: "octocat", Name: "c", IsOwner: true, IsArchived: true, CreatedAt: lastYear, UpdatedAt: lastYear},
		{Owner: "octocat", Name: "d", IsOwner: true, IsFork: true, CreatedAt: lastYear, UpdatedAt: lastYear},
		{Owner: "octocat", Name: "e", IsOwner: true, Stars: 1, IsFork: true, CreatedAt: thisYear, UpdatedAt: thisYear},
		{Owner: "octocat", Name: "f", IsOwner: true, CreatedAt: lastYear, UpdatedAt: lastYear},
	}
}

func TestCalculateComputedStatsCounts(t *testing.T) {
	t.Parallel()

	repos := syntheticRepos()
	languages, _ := AggregateLanguages(repos)
	computed := CalculateComputedStats(repos, languages, output.ContributionStats{}, fixedNow)

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"totalRepos", computed.TotalRepos, 6},
		{"publicRepos", computed.PublicRepos, 5},
		{"privateRepos", computed.PrivateRepos, 1},
		{"archivedRepos", computed.ArchivedRepos, 1},
		{"forkedRepos", computed.ForkedRepos, 2},
		{"originalRepos", computed.OriginalRepos, 4},
		{"activeReposThisYear", computed.ActiveReposThisYear, 3},
		{"reposWithStars", computed.ReposWithStars, 3},
		{"reposCreatedThisYear", computed.ReposCreatedThisYear, 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	// 16 stars over 6 repos
	if computed.AverageStarsPerRepo != 2.67 {
		t.Errorf("averageStarsPerRepo = %v, want 2.67", computed.AverageStarsPerRepo)
	}
}

func TestCalculateComputedStatsLanguages(t *testing.T) {
	t.Parallel()

	repos := syntheticRepos()
	languages, _ := AggregateLanguages(repos)
	computed := CalculateComputedStats(repos, languages, output.ContributionStats{}, fixedNow)

	if computed.LanguagesUsed != 2 {
		t.Errorf("languagesUsed = %d, want 2", computed.LanguagesUsed)
	}
	if computed.PrimaryLanguage == nil || *computed.PrimaryLanguage != "Go" {
		t.Errorf("primaryLanguage = %v, want Go", computed.PrimaryLanguage)
	}
	// Repos active in 2024 carry both Go and Python; Go still dominates
	if computed.PrimaryLanguageThisYear == nil || *computed.PrimaryLanguageThisYear != "Go" {
		t.Errorf("primaryLanguageThisYear = %v, want Go", computed.PrimaryLanguageThisYear)
	}
}

func TestCalculateComputedStatsNoRepos(t *testing.T) {
	t.Parallel()

	computed := CalculateComputedStats(nil, nil, output.ContributionStats{}, fixedNow)
	if computed.TotalRepos != 0 {
		t.Errorf("totalRepos = %d, want 0", computed.TotalRepos)
	}
	if computed.AverageStarsPerRepo != 0 {
		t.Errorf("averageStarsPerRepo = %v, want 0 without division", computed.AverageStarsPerRepo)
	}
	if computed.PrimaryLanguage != nil {
		t.Errorf("primaryLanguage = %v, want nil", computed.PrimaryLanguage)
	}
}

func TestContributionGrowth(t *testing.T) {
	t.Parallel()

	contrib := output.ContributionStats{
		MonthlyBreakdown: []output.MonthlyContribution{
			{Month: "2023-11", Contributions: 60},
			{Month: "2023-12", Contributions: 40},
			{Month: "2024-01", Contributions: 150},
		},
	}

	computed := CalculateComputedStats(nil, nil, contrib, fixedNow)
	growth := computed.ContributionGrowth

	if growth.ThisYearTotal != 150 || growth.LastYearTotal != 100 {
		t.Fatalf("totals = %d/%d, want 150/100", growth.ThisYearTotal, growth.LastYearTotal)
	}
	if growth.GrowthPercentage == nil || *growth.GrowthPercentage != 50 {
		t.Errorf("growthPercentage = %v, want 50", growth.GrowthPercentage)
	}
	if growth.MostProductiveMonth != "2024-01" {
		t.Errorf("mostProductiveMonth = %q, want 2024-01", growth.MostProductiveMonth)
	}
}

func TestContributionGrowthNotApplicable(t *testing.T) {
	t.Parallel()

	contrib := output.ContributionStats{
		MonthlyBreakdown: []output.MonthlyContribution{
			{Month: "2024-01", Contributions: 150},
		},
	}

	computed := CalculateComputedStats(nil, nil, contrib, fixedNow)
	if computed.ContributionGrowth.GrowthPercentage != nil {
		t.Fatalf("growthPercentage = %v, want nil when last year is zero",
			*computed.ContributionGrowth.GrowthPercentage)
	}
}

func TestMostProductiveMonthTieBreak(t *testing.T) {
	t.Parallel()

	contrib := output.ContributionStats{
		MonthlyBreakdown: []output.MonthlyContribution{
			{Month: "2024-01", Contributions: 99},
			{Month: "2024-02", Contributions: 99},
		},
	}

	computed := CalculateComputedStats(nil, nil, contrib, fixedNow)
	if got := computed.ContributionGrowth.MostProductiveMonth; got != "2024-01" {
		t.Fatalf("mostProductiveMonth = %q, want the earliest of the tie", got)
	}
}
