// Package output defines the statistics snapshot model, the atomic JSON
// writer, and the console summary rendering.
package output

import (
	"time"
)

// Snapshot is the single JSON document produced by a run.
//
// Nullability contract: optional profile strings are pointers that marshal to
// JSON null when the API returned nothing. Name and Username are plain
// strings and default to "" instead.
type Snapshot struct {
	// Profile
	Name            string  `json:"name"`
	Username        string  `json:"username"`
	AvatarURL       *string `json:"avatarUrl"`
	Bio             *string `json:"bio"`
	Company         *string `json:"company"`
	Location        *string `json:"location"`
	Email           *string `json:"email"`
	TwitterUsername *string `json:"twitterUsername"`
	WebsiteURL      *string `json:"websiteUrl"`
	CreatedAt       string  `json:"createdAt"`

	// Aggregate counters
	RepoViews               int64 `json:"repoViews"`          // 14-day view total across owned repos
	LinesOfCodeChanged      int64 `json:"linesOfCodeChanged"` // additions + deletions
	LinesAdded              int64 `json:"linesAdded"`
	LinesDeleted            int64 `json:"linesDeleted"`
	CommitCount             int64 `json:"commitCount"` // from contributor stats, owned repos
	TotalCommits            int64 `json:"totalCommits"`
	TotalPullRequests       int64 `json:"totalPullRequests"`
	TotalPullRequestReviews int64 `json:"totalPullRequestReviews"`
	Followers               int64 `json:"followers"`
	Following               int64 `json:"following"`
	StarsGiven              int64 `json:"starsGiven"`
	StarsReceived           int64 `json:"starsReceived"`
	ForkCount               int64 `json:"forkCount"`

	// Derived aggregates
	TopLanguages      []LanguageAggregate `json:"topLanguages"`
	CodeByteTotal     int64               `json:"codeByteTotal"`
	ContributionStats ContributionStats   `json:"contributionStats"`
	ComputedStats     ComputedStats       `json:"computedStats"`
	TopRepos          []TopRepo           `json:"topRepos"`

	// Raw merged contribution data
	ContributionsCollection ContributionCollection `json:"contributionsCollection"`

	// FetchedAt is milliseconds since the Unix epoch.
	FetchedAt int64 `json:"fetchedAt"`
}

// LanguageAggregate is one entry of the overall language distribution.
type LanguageAggregate struct {
	LanguageName string  `json:"languageName"`
	Color        *string `json:"color"`
	TotalBytes   int64   `json:"totalBytes"`
	Percentage   float64 `json:"percentage"`
}

// ContributionDay is a single calendar day from the contribution calendar.
type ContributionDay struct {
	Date              string `json:"date"` // ISO calendar date, "2006-01-02"
	ContributionCount int    `json:"contributionCount"`
}

// ContributionWeek is one week of contribution days, in calendar order.
type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar holds the day grid plus its total.
type ContributionCalendar struct {
	TotalContributions int                `json:"totalContributions"`
	Weeks              []ContributionWeek `json:"weeks"`
}

// ContributionCollection mirrors the GraphQL contributionsCollection shape.
// After merging multiple calendar-year windows, the scalar counters are
// field-wise sums and Weeks spans all years in chronological order.
type ContributionCollection struct {
	TotalCommitContributions            int                  `json:"totalCommitContributions"`
	TotalIssueContributions             int                  `json:"totalIssueContributions"`
	TotalPullRequestContributions       int                  `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions int                  `json:"totalPullRequestReviewContributions"`
	TotalRepositoryContributions        int                  `json:"totalRepositoryContributions"`
	RestrictedContributionsCount        int                  `json:"restrictedContributionsCount"`
	ContributionCalendar                ContributionCalendar `json:"contributionCalendar"`
}

// MonthlyContribution is one month's contribution total, keyed "YYYY-MM".
type MonthlyContribution struct {
	Month         string `json:"month"`
	Contributions int    `json:"contributions"`
}

// ContributionStats holds streaks, weekday activity, and averages derived
// from the merged contribution calendar.
type ContributionStats struct {
	TotalContributions int                   `json:"totalContributions"`
	LongestStreak      int                   `json:"longestStreak"`
	CurrentStreak      int                   `json:"currentStreak"`
	MostActiveDay      string                `json:"mostActiveDay"` // weekday name, "" when no data
	AveragePerDay      float64               `json:"averagePerDay"`
	AveragePerWeek     float64               `json:"averagePerWeek"`
	AveragePerMonth    float64               `json:"averagePerMonth"`
	MonthlyBreakdown   []MonthlyContribution `json:"monthlyBreakdown"`
}

// TopicCount is one entry of the topic frequency table.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// ContributionGrowth compares the current calendar year against the prior
// one. GrowthPercentage is null when the prior year has no contributions,
// since a percentage change from zero is undefined.
type ContributionGrowth struct {
	ThisYearTotal       int      `json:"thisYearTotal"`
	LastYearTotal       int      `json:"lastYearTotal"`
	GrowthPercentage    *float64 `json:"growthPercentage"`
	MostProductiveMonth string   `json:"mostProductiveMonth"` // "YYYY-MM", "" when no data
}

// ComputedStats holds cross-cutting metrics derived from the repository
// list, language aggregate, and contribution stats.
type ComputedStats struct {
	// Repository counts
	TotalRepos           int `json:"totalRepos"`
	PublicRepos          int `json:"publicRepos"`
	PrivateRepos         int `json:"privateRepos"`
	ArchivedRepos        int `json:"archivedRepos"`
	ForkedRepos          int `json:"forkedRepos"`
	OriginalRepos        int `json:"originalRepos"`
	ActiveReposThisYear  int `json:"activeReposThisYear"`
	ReposWithStars       int `json:"reposWithStars"`
	ReposCreatedThisYear int `json:"reposCreatedThisYear"`

	AverageStarsPerRepo float64 `json:"averageStarsPerRepo"`

	// Languages
	LanguagesUsed           int     `json:"languagesUsed"`
	PrimaryLanguage         *string `json:"primaryLanguage"`
	PrimaryLanguageThisYear *string `json:"primaryLanguageThisYear"`

	// Topics
	TopTopics []TopicCount `json:"topTopics"` // descending by count, capped
	AllTopics []string     `json:"allTopics"` // every distinct topic, alphabetical

	ContributionGrowth ContributionGrowth `json:"contributionGrowth"`
}

// TopRepo is one entry of the top-10-by-stars list (owned, non-archived).
type TopRepo struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Stars           int64    `json:"stars"`
	Forks           int64    `json:"forks"`
	IsFork          bool     `json:"isFork"`
	IsPrivate       bool     `json:"isPrivate"`
	PrimaryLanguage *string  `json:"primaryLanguage"`
	Topics          []string `json:"topics"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// LanguageEdge is one (language, byte size, color) edge of a repository's
// language connection.
type LanguageEdge struct {
	Name  string
	Size  int64
	Color *string
}

// RepoInfo is the per-repository working record built from the raw API
// nodes. It exists only for the duration of a run; aggregation reads it and
// the snapshot keeps only derived values.
type RepoInfo struct {
	Owner           string
	Name            string
	IsOwner         bool
	Stars           int64
	Forks           int64
	Description     *string
	IsArchived      bool
	IsFork          bool
	IsPrivate       bool
	PrimaryLanguage *string
	Topics          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Languages       []LanguageEdge
}

// FullName returns the "owner/name" slug used in API paths and logs.
func (r RepoInfo) FullName() string {
	return r.Owner + "/" + r.Name
}
