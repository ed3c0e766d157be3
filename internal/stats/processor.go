// Package stats implements the aggregation core.
//
// This file (processor.go) contains the main orchestration logic. It
// coordinates the run from validation through final output: resolving the
// login, fetching the top-level data concurrently, fanning per-repository
// calls out through the batch dispatcher, merging and analyzing the
// contribution calendar, aggregating languages and topics, and writing the
// snapshot.
//
// Error policy: failures that leave the snapshot meaningless (bad config,
// unresolvable login, profile or repository list fetch, every contribution
// year failing) abort the run before anything is written. Everything
// per-repository or per-year is best-effort: logged, counted as a warning,
// and contributing zero to the aggregates.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/LukeHagar/stats-action/internal/ghapi"
	"github.com/LukeHagar/stats-action/internal/logger"
	"github.com/LukeHagar/stats-action/internal/output"
	"github.com/LukeHagar/stats-action/internal/state"
)

// Config holds all configuration options for a collection run.
//
// Zero value behavior:
//   - Username: empty means "the token's account", resolved via /user
//   - MaxWorkers: zero defaults to the dispatcher's default
//   - TopLanguages: zero means no truncation of the language list
//   - Fetch* flags: false skips that per-repository data (fewer API calls)
type Config struct {
	Username   string
	Token      string
	OutputFile string
	Version    string

	MaxWorkers   int
	TopLanguages int

	Verbose bool
	DryRun  bool

	FetchTraffic          bool
	FetchContributorStats bool
}

// topRepoCount caps the topRepos list in the snapshot.
const topRepoCount = 10

// printBanner displays the startup banner with version information.
func printBanner(version string) {
	if version == "" {
		version = "dev"
	}

	banner := fmt.Sprintf(`
   ███████╗████████╗ █████╗ ████████╗███████╗
   ██╔════╝╚══██╔══╝██╔══██╗╚══██╔══╝██╔════╝
   ███████╗   ██║   ███████║   ██║   ███████╗
   ╚════██║   ██║   ██╔══██║   ██║   ╚════██║
   ███████║   ██║   ██║  ██║   ██║   ███████║
   ╚══════╝   ╚═╝   ╚═╝  ╚═╝   ╚═╝   ╚══════╝
   📊 GitHub Profile Stats • %s
`, version)

	pterm.DefaultBox.WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		WithHorizontalString("═").
		WithVerticalString("║").
		Println(banner)
	fmt.Println()
}

// RunWithContext orchestrates one full collection run.
//
// Returns nil on success. Fatal-class failures (invalid config, missing
// token, unresolvable login, no contribution data for any year, write
// failure) return an error and leave no output file behind; per-repository
// and per-year failures degrade the data and are reported as warnings.
func RunWithContext(ctx context.Context, config Config) error {
	printBanner(config.Version)

	if err := validateConfig(&config); err != nil {
		return err
	}

	if config.DryRun {
		return runDryRun(config)
	}

	if config.Verbose {
		logger.Named("stats").Debug().
			Str("output", config.OutputFile).
			Int("workers", config.MaxWorkers).
			Bool("traffic", config.FetchTraffic).
			Bool("contributorStats", config.FetchContributorStats).
			Msg("starting collection")
	}

	startTime := time.Now()
	client := ghapi.NewClient(ctx, config.Token)

	client.UpdateRateLimitInfo(ctx)
	state.Get().PrintRateLimit()

	login := config.Username
	if login == "" {
		var err error
		login, err = client.FetchViewerLogin(ctx)
		if err != nil {
			return fmt.Errorf("resolving authenticated user: %w", err)
		}
	}
	output.PrintUserHeader(login)

	run := &runState{client: client, config: config, login: login}

	if err := run.fetchTopLevel(ctx); err != nil {
		return err
	}
	if err := run.fetchContributions(ctx); err != nil {
		return err
	}
	run.fetchPerRepo(ctx)

	snap := run.assemble(time.Now())

	if err := output.WriteSnapshot(config.OutputFile, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	output.PrintSummaryTable(snap)

	client.UpdateRateLimitInfo(ctx)
	rest := state.Get().GetRateLimit()
	gql := state.Get().GetGraphQLRateLimit()
	tasksDone, tasksTotal := state.Get().TaskProgress()
	output.PrintCompletionSummary(output.CompletionSummary{
		RepoCount:        len(run.repos),
		TasksDone:        tasksDone,
		TasksTotal:       tasksTotal,
		OutputFile:       config.OutputFile,
		Duration:         time.Since(startTime),
		APICalls:         state.Get().GetAPICalls(),
		RESTLimit:        rest.Limit,
		RESTRemaining:    rest.Remaining,
		RESTReset:        rest.Reset,
		GraphQLLimit:     gql.Limit,
		GraphQLUsed:      gql.Used,
		GraphQLRemaining: gql.Remaining,
		GraphQLReset:     gql.Reset,
		Warnings:         run.warnings,
	})

	return nil
}

// runState carries intermediate results between the run's phases.
type runState struct {
	client *ghapi.Client
	config Config
	login  string

	profile      *ghapi.UserProfile
	repos        []output.RepoInfo
	totalCommits int64
	starsGiven   int64

	merged       *output.ContributionCollection
	contribStats output.ContributionStats

	repoViews    int64
	linesAdded   int64
	linesDeleted int64
	commitCount  int64

	warnings int
}

// fetchTopLevel fetches the independent top-level data categories
// concurrently. Profile and repository list failures are fatal; commit and
// star counts degrade to zero.
func (r *runState) fetchTopLevel(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start("Fetching profile and repositories...")

	var (
		wg                   sync.WaitGroup
		profileErr, reposErr error
		commitsErr, starsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		r.profile, profileErr = r.client.FetchUserProfile(ctx, r.login)
	}()
	go func() {
		defer wg.Done()
		r.repos, reposErr = r.client.FetchRepositories(ctx, r.login)
	}()
	go func() {
		defer wg.Done()
		r.totalCommits, commitsErr = r.client.FetchTotalCommits(ctx, r.login)
	}()
	go func() {
		defer wg.Done()
		r.starsGiven, starsErr = r.client.FetchStarsGivenCount(ctx, r.login)
	}()
	wg.Wait()

	if profileErr != nil {
		spinner.Fail("Profile fetch failed")
		return profileErr
	}
	if reposErr != nil {
		spinner.Fail("Repository fetch failed")
		return reposErr
	}
	if commitsErr != nil {
		logger.Named("stats").Warn().Err(commitsErr).Msg("total commit count unavailable")
		r.warnings++
	}
	if starsErr != nil {
		logger.Named("stats").Warn().Err(starsErr).Msg("stars-given count unavailable")
		r.warnings++
	}

	spinner.Success("Profile and repositories fetched")

	owned, contributed := 0, 0
	for _, repo := range r.repos {
		if repo.IsOwner {
			owned++
		} else {
			contributed++
		}
	}
	output.PrintRepoDiscovery(output.RepoDiscovery{
		Owned:           owned,
		ContributedTo:   contributed,
		SkippedTraffic:  !r.config.FetchTraffic,
		SkippedConstats: !r.config.FetchContributorStats,
	})

	return nil
}

// fetchContributions fetches one contribution window per calendar year
// through the batch dispatcher and merges the successful years. Failing
// every year is fatal.
func (r *runState) fetchContributions(ctx context.Context) error {
	windows := ghapi.ContributionWindows(r.profile.CreatedAt, time.Now().UTC())
	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching contributions across %d year(s)...", len(windows)))

	state.Get().AddTasks(len(windows))
	results := RunBatch(ctx, len(windows), r.config.MaxWorkers,
		func(ctx context.Context, i int) (*output.ContributionCollection, error) {
			defer state.Get().MarkTaskDone()
			return r.client.FetchContributionRange(ctx, r.login, windows[i][0], windows[i][1])
		})

	collections := make([]*output.ContributionCollection, len(results))
	for i, res := range results {
		if res.Err != nil {
			logger.Named("stats").Warn().Err(res.Err).
				Int("year", windows[i][0].Year()).
				Msg("contribution year fetch failed")
			r.warnings++
			continue
		}
		collections[i] = res.Value
	}

	merged, err := MergeContributions(collections)
	if err != nil {
		if errors.Is(err, ErrNoContributionData) {
			spinner.Fail("No contribution data could be fetched")
		}
		return err
	}
	r.merged = merged
	r.contribStats = AnalyzeContributions(merged, time.Now().UTC())

	spinner.Success(fmt.Sprintf("Contributions fetched (%d total)", r.contribStats.TotalContributions))
	return nil
}

// fetchPerRepo fans out contributor stats and traffic views across the
// owned repositories. Everything here is best-effort.
func (r *runState) fetchPerRepo(ctx context.Context) {
	var owned []output.RepoInfo
	for _, repo := range r.repos {
		if repo.IsOwner {
			owned = append(owned, repo)
		}
	}
	if len(owned) == 0 {
		return
	}

	if r.config.FetchContributorStats {
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching contributor stats for %d repositories...", len(owned)))

		state.Get().AddTasks(len(owned))
		results := RunBatch(ctx, len(owned), r.config.MaxWorkers,
			func(ctx context.Context, i int) ([]ghapi.ContributorStats, error) {
				defer state.Get().MarkTaskDone()
				return r.client.FetchContributorStats(ctx, owned[i].Owner, owned[i].Name), nil
			})

		for _, res := range results {
			for _, contributor := range res.Value {
				if contributor.Author.Login != r.login {
					continue
				}
				r.commitCount += contributor.Total
				for _, week := range contributor.Weeks {
					r.linesAdded += week.Additions
					r.linesDeleted += week.Deletions
				}
			}
		}
		spinner.Success("Contributor stats fetched")
	}

	if r.config.FetchTraffic {
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Fetching traffic views for %d repositories...", len(owned)))

		state.Get().AddTasks(len(owned))
		results := RunBatch(ctx, len(owned), r.config.MaxWorkers,
			func(ctx context.Context, i int) (*ghapi.RepoViews, error) {
				defer state.Get().MarkTaskDone()
				return r.client.FetchRepoViews(ctx, owned[i].Owner, owned[i].Name)
			})

		for i, res := range results {
			if res.Err != nil {
				logger.Named("stats").Warn().Err(res.Err).
					Str("repo", owned[i].FullName()).
					Msg("traffic views unavailable")
				r.warnings++
				continue
			}
			r.repoViews += res.Value.Count
		}
		spinner.Success("Traffic views fetched")
	}
}

// assemble builds the snapshot from the run's accumulated data. The now
// parameter fixes both the fetchedAt stamp and the current-year boundaries.
func (r *runState) assemble(now time.Time) *output.Snapshot {
	languages, byteTotal := AggregateLanguages(r.repos)
	computed := CalculateComputedStats(r.repos, languages, r.contribStats, now)

	var starsReceived, forkCount int64
	for _, repo := range r.repos {
		if repo.IsOwner {
			starsReceived += repo.Stars
			forkCount += repo.Forks
		}
	}

	topLanguages := languages
	if r.config.TopLanguages > 0 && len(topLanguages) > r.config.TopLanguages {
		topLanguages = topLanguages[:r.config.TopLanguages]
	}

	return &output.Snapshot{
		Name:            r.profile.Name,
		Username:        r.profile.Login,
		AvatarURL:       r.profile.AvatarURL,
		Bio:             r.profile.Bio,
		Company:         r.profile.Company,
		Location:        r.profile.Location,
		Email:           r.profile.Email,
		TwitterUsername: r.profile.TwitterUsername,
		WebsiteURL:      r.profile.WebsiteURL,
		CreatedAt:       r.profile.CreatedAt.Format(time.RFC3339),

		RepoViews:               r.repoViews,
		LinesOfCodeChanged:      r.linesAdded + r.linesDeleted,
		LinesAdded:              r.linesAdded,
		LinesDeleted:            r.linesDeleted,
		CommitCount:             r.commitCount,
		TotalCommits:            r.totalCommits,
		TotalPullRequests:       int64(r.merged.TotalPullRequestContributions),
		TotalPullRequestReviews: int64(r.merged.TotalPullRequestReviewContributions),
		Followers:               r.profile.Followers,
		Following:               r.profile.Following,
		StarsGiven:              r.starsGiven,
		StarsReceived:           starsReceived,
		ForkCount:               forkCount,

		TopLanguages:      topLanguages,
		CodeByteTotal:     byteTotal,
		ContributionStats: r.contribStats,
		ComputedStats:     computed,
		TopRepos:          topRepos(r.repos),

		ContributionsCollection: *r.merged,
		FetchedAt:               now.UnixMilli(),
	}
}

// topRepos returns the top-10-by-stars owned, non-archived repositories.
// Ties keep the input order, so identical snapshots of API data produce
// identical lists.
func topRepos(repos []output.RepoInfo) []output.TopRepo {
	var candidates []output.RepoInfo
	for _, repo := range repos {
		if repo.IsOwner && !repo.IsArchived {
			candidates = append(candidates, repo)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Stars > candidates[j].Stars
	})
	if len(candidates) > topRepoCount {
		candidates = candidates[:topRepoCount]
	}

	top := make([]output.TopRepo, 0, len(candidates))
	for _, repo := range candidates {
		top = append(top, output.TopRepo{
			Name:            repo.Name,
			Description:     repo.Description,
			Stars:           repo.Stars,
			Forks:           repo.Forks,
			IsFork:          repo.IsFork,
			IsPrivate:       repo.IsPrivate,
			PrimaryLanguage: repo.PrimaryLanguage,
			Topics:          repo.Topics,
			CreatedAt:       repo.CreatedAt.Format(time.RFC3339),
			UpdatedAt:       repo.UpdatedAt.Format(time.RFC3339),
		})
	}
	return top
}

// runDryRun previews the run without making API calls.
func runDryRun(config Config) error {
	pterm.Info.Println("🔍 DRY RUN MODE - No API calls will be made")
	pterm.Println()

	target := config.Username
	if target == "" {
		target = "(the token's account)"
	}
	pterm.Info.Printf("📋 Would collect statistics for: %s\n", target)
	pterm.Println()

	pterm.Info.Println("⚙️  Configuration:")
	pterm.Info.Printf("  Output file: %s\n", config.OutputFile)
	pterm.Info.Printf("  Max workers: %d\n", config.MaxWorkers)
	pterm.Println()

	pterm.Info.Println("📊 Data to be collected:")
	pterm.Info.Println("    ✓ Profile (name, bio, followers, social links)")
	pterm.Info.Println("    ✓ Repositories (owned and contributed-to, with languages and topics)")
	pterm.Info.Println("    ✓ Contribution calendar (one query per account year)")
	pterm.Info.Println("    ✓ Total commits and stars given")
	printFeatureStatus("Contributor stats (lines of code)", config.FetchContributorStats)
	printFeatureStatus("Traffic views", config.FetchTraffic)
	pterm.Println()

	perRepo := 0
	if config.FetchContributorStats {
		perRepo++
	}
	if config.FetchTraffic {
		perRepo++
	}
	pterm.Warning.Println("⚠️  Estimated API usage:")
	pterm.Warning.Printf("  ~%d call(s) per owned repository\n", perRepo)
	pterm.Warning.Println("  Plus: 1 GraphQL query per account year and per 100 repositories")
	pterm.Warning.Println("  Note: contributor stats may retry while GitHub computes them")
	pterm.Println()

	pterm.Success.Println("✓ Dry run complete. Remove --dry-run flag to start actual collection.")
	return nil
}

// printFeatureStatus prints a single feature status line with appropriate styling.
func printFeatureStatus(name string, enabled bool) {
	if enabled {
		pterm.Info.Printf("    ✓ %s\n", name)
	} else {
		grayText := pterm.NewStyle(pterm.FgLightWhite).Sprintf("✗ %s (disabled)", name)
		pterm.Info.Printf("    %s\n", grayText)
	}
}
