// Package output defines the statistics snapshot model, the atomic JSON
// writer, and the console summary rendering.
//
// This file (summary.go) renders progress and the final human-readable
// summary with pterm. The summary table doubles as the tabular data for CI
// summaries: SummaryRows returns plain metric/value pairs and the Print
// helpers only add styling on top.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// PrintSectionHeader prints a prominent section header with separator.
func PrintSectionHeader(title string) {
	pterm.Println()
	pterm.DefaultSection.Println(title)
}

// PrintUserHeader prints the header for the user being collected.
func PrintUserHeader(username string) {
	pterm.Println()
	separator := strings.Repeat("━", 54)
	pterm.Info.Println(separator)
	pterm.Info.Printf("👤 User: %s\n", username)
	pterm.Info.Println(separator)
	pterm.Println()
}

// RepoDiscovery holds repository discovery information for display.
type RepoDiscovery struct {
	Owned           int
	ContributedTo   int
	SkippedTraffic  bool
	SkippedConstats bool
}

// PrintRepoDiscovery prints repository discovery information.
func PrintRepoDiscovery(info RepoDiscovery) {
	pterm.Info.Println("🔭 Repository Discovery")
	pterm.Info.Printf("   ├─ Owned: %d repositories\n", info.Owned)
	pterm.Info.Printf("   ├─ Contributed to: %d repositories\n", info.ContributedTo)

	skipped := []string{}
	if info.SkippedTraffic {
		skipped = append(skipped, "traffic")
	}
	if info.SkippedConstats {
		skipped = append(skipped, "contributor stats")
	}

	if len(skipped) > 0 {
		pterm.Info.Printf("   └─ Skipped: %s (flags set)\n", strings.Join(skipped, ", "))
	} else {
		pterm.Info.Println("   └─ Fetching all optional data")
	}

	pterm.Println()
	pterm.Success.Println("✅ Repository discovery complete")
}

// SummaryRows flattens the snapshot into metric/value pairs for tabular
// rendering. The same rows back the console table and CI summaries.
func SummaryRows(snap *Snapshot) [][]string {
	rows := [][]string{
		{"Username", snap.Username},
		{"Total repositories", fmt.Sprintf("%d", snap.ComputedStats.TotalRepos)},
		{"Stars received", FormatNumber(snap.StarsReceived)},
		{"Stars given", FormatNumber(snap.StarsGiven)},
		{"Forks", FormatNumber(snap.ForkCount)},
		{"Followers", FormatNumber(snap.Followers)},
		{"Total commits", FormatNumber(snap.TotalCommits)},
		{"Total contributions", FormatNumber(int64(snap.ContributionStats.TotalContributions))},
		{"Longest streak", fmt.Sprintf("%d days", snap.ContributionStats.LongestStreak)},
		{"Current streak", fmt.Sprintf("%d days", snap.ContributionStats.CurrentStreak)},
		{"Lines of code changed", FormatNumber(snap.LinesOfCodeChanged)},
		{"Repo views (14d)", FormatNumber(snap.RepoViews)},
	}

	if snap.ContributionStats.MostActiveDay != "" {
		rows = append(rows, []string{"Most active day", snap.ContributionStats.MostActiveDay})
	}
	if len(snap.TopLanguages) > 0 {
		rows = append(rows, []string{"Top language", snap.TopLanguages[0].LanguageName})
	}
	if g := snap.ComputedStats.ContributionGrowth.GrowthPercentage; g != nil {
		rows = append(rows, []string{"YoY contribution growth", fmt.Sprintf("%.2f%%", *g)})
	}

	return rows
}

// PrintSummaryTable renders the metric/value summary table.
func PrintSummaryTable(snap *Snapshot) {
	data := pterm.TableData{{"Metric", "Value"}}
	for _, row := range SummaryRows(snap) {
		data = append(data, row)
	}

	pterm.Println()
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// CompletionSummary holds the final summary information.
type CompletionSummary struct {
	RepoCount        int
	TasksDone        int64
	TasksTotal       int64
	OutputFile       string
	Duration         time.Duration
	APICalls         int64
	RESTLimit        int64
	RESTRemaining    int64
	RESTReset        time.Time
	GraphQLLimit     int64
	GraphQLUsed      int64
	GraphQLRemaining int64
	GraphQLReset     time.Time
	Warnings         int
}

// PrintCompletionSummary prints the final completion summary.
func PrintCompletionSummary(summary CompletionSummary) {
	pterm.Println()
	separator := strings.Repeat("━", 54)
	pterm.Success.Println(separator)
	pterm.Success.Println("✨ Collection Complete!")
	pterm.Success.Println(separator)
	pterm.Println()

	pterm.Info.Println("📈 Summary")
	pterm.Info.Printf("   ├─ Repositories: %d collected\n", summary.RepoCount)
	if summary.TasksTotal > 0 {
		pterm.Info.Printf("   ├─ Fetch tasks: %d/%d completed\n", summary.TasksDone, summary.TasksTotal)
	}
	pterm.Info.Printf("   ├─ Output file: %s\n", summary.OutputFile)
	pterm.Info.Printf("   └─ Duration: %s\n", FormatDuration(summary.Duration))
	pterm.Println()

	pterm.Info.Println("🌐 API Usage")
	pterm.Info.Printf("   ├─ Calls made: %d\n", summary.APICalls)
	pterm.Info.Printf("   ├─ REST: %s/%s remaining (resets %s, in %s)\n",
		FormatNumber(summary.RESTRemaining),
		FormatNumber(summary.RESTLimit),
		summary.RESTReset.Format("15:04:05"),
		FormatTimeUntil(summary.RESTReset))
	pterm.Info.Printf("   └─ GraphQL: %s/%s points remaining (resets %s, in %s)\n",
		FormatNumber(summary.GraphQLRemaining),
		FormatNumber(summary.GraphQLLimit),
		summary.GraphQLReset.Format("15:04:05"),
		FormatTimeUntil(summary.GraphQLReset))
	pterm.Println()

	if summary.Warnings > 0 {
		pterm.Warning.Printf("⚠️  Warnings: %d (check logs for details)\n", summary.Warnings)
		pterm.Println()
	}
}

// FormatDuration formats a duration in a human-readable way (e.g., "5m30s", "2h15m").
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}

// FormatNumber formats a number with thousand separators (e.g., "1,234,567").
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(digit))
	}
	return string(result)
}

// FormatTimeUntil formats the time until a future time in a human-readable way (e.g., "5m", "2h15m").
func FormatTimeUntil(t time.Time) string {
	d := time.Until(t)
	if d < 0 {
		return "now"
	}

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
