// stats collects GitHub profile statistics for an authenticated account.
// It gathers repository, contribution, and activity data through GitHub's
// REST and GraphQL APIs, aggregates it into derived metrics (language
// distribution, contribution streaks, lines-of-code churn, topic frequency),
// and writes a single structured snapshot to a JSON file.
//
// Usage:
//
//	stats run
//	stats run --user octocat --output my-stats.json
//
// For full documentation, see: https://github.com/LukeHagar/stats-action
package main

import (
	"github.com/LukeHagar/stats-action/cmd"
)

// Version is the current version of stats.
// It can be overridden at build time using:
//
//	go build -ldflags="-X main.Version=v1.0.0"
//
// During releases, this is automatically set from the git tag.
var Version = "dev"

func main() {
	// Set version in cmd package so it can be accessed by subcommands
	cmd.Version = Version
	cmd.Execute()
}
