package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LukeHagar/stats-action/internal/logger"
	"github.com/LukeHagar/stats-action/internal/stats"
)

var (
	userName   string
	outputFile string
	maxWorkers int
	topLangs   int
	verbose    bool
	dryRun     bool
	noTraffic  bool
	noStats    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run profile statistics collection",
	Long: `Run statistics collection for the authenticated GitHub account.

Examples:
  stats run                          # Collect stats for the token's account
  stats run --user octocat           # Collect stats for a specific user
  stats run -O custom.json -w 5 -v   # Custom output file, 5 workers, verbose
  stats run --no-traffic             # Skip per-repo traffic views (faster)

The GITHUB_TOKEN environment variable must contain a token with the
read:user and repo scopes. A .env file in the working directory is
loaded automatically if present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		logOpts := logger.FromEnv()
		if verbose && logOpts.Level == "" {
			logOpts.Level = "debug"
		}
		logger.Init(logOpts)

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return fmt.Errorf("GITHUB_TOKEN environment variable is not set")
		}

		if outputFile == "" {
			outputFile = "github-user-stats.json"
		}

		config := stats.Config{
			Username:              userName,
			Token:                 token,
			OutputFile:            outputFile,
			Version:               Version,
			MaxWorkers:            maxWorkers,
			TopLanguages:          topLangs,
			Verbose:               verbose,
			DryRun:                dryRun,
			FetchTraffic:          !noTraffic,
			FetchContributorStats: !noStats,
		}

		// 2-hour timeout prevents indefinite hangs if GitHub API becomes unresponsive
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()

		// Handle interrupt signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			sig := <-sigChan

			if sig == syscall.SIGTERM {
				fmt.Fprintln(os.Stderr, "\nReceived termination signal (SIGTERM), shutting down gracefully...")
			} else {
				fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully... (press Ctrl-C again to force quit)")
			}
			cancel()

			if sig == syscall.SIGTERM {
				return
			}

			// For SIGINT (Ctrl-C), wait for second signal to force quit
			<-sigChan
			fmt.Fprintln(os.Stderr, "\nForce quitting...")
			os.Exit(130) // Standard exit code for SIGINT
		}()

		return stats.RunWithContext(ctx, config)
	},
}

// init registers the run command and its flags.
func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&userName, "user", "u", "", "GitHub username to analyze (default: the token's account)")
	runCmd.Flags().StringVarP(&outputFile, "output", "O", "", "Output file path (default: github-user-stats.json)")
	runCmd.Flags().IntVarP(&maxWorkers, "max-workers", "w", 10, "Maximum number of concurrent per-repository API calls")
	runCmd.Flags().IntVar(&topLangs, "top-langs", 0, "Limit topLanguages to the top N entries (0 = all)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be collected without making API calls (preview mode)")
	runCmd.Flags().BoolVar(&noTraffic, "no-traffic", false, "Skip fetching per-repository traffic views (saves ~1 API call/repo)")
	runCmd.Flags().BoolVar(&noStats, "no-contributor-stats", false, "Skip fetching per-repository contributor stats (saves ~1+ API call/repo)")
}
