// Package state provides run-wide state tracking for statistics collection.
//
// This package manages progress tracking, rate limit information, and API
// call counting for a single collection run. All state operations are
// thread-safe and suitable for concurrent use across multiple goroutines.
//
// Key features:
//   - Thread-safe progress tracking for per-repository fetch tasks
//   - REST and GraphQL API rate limit monitoring
//   - Automatic rate limit enforcement with a configurable safety buffer
//   - API call count tracking for usage reporting
package state

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// ErrRateLimitRefreshNeeded indicates rate limit data should be refreshed before retrying
var ErrRateLimitRefreshNeeded = errors.New("rate limit refresh needed")

// Rate limit configuration constants.
const (
	rateLimitSafetyBuffer int64 = 50              // Buffer to avoid hitting 429 errors with concurrent workers
	maxSleepUntilReset          = 1 * time.Hour   // Maximum time to wait for rate limit reset
	resetBufferTime             = 5 * time.Second // Buffer after reset to ensure limit has actually reset
)

// RateLimitInfo holds GitHub REST API rate limit information.
//
// Zero value: a zero Limit indicates uninitialized or unavailable rate limit data.
type RateLimitInfo struct {
	Limit     int64     // Maximum requests allowed per hour
	Remaining int64     // Requests remaining in current window
	Reset     time.Time // When the rate limit window resets
}

// GraphQLRateLimitInfo holds GitHub GraphQL API rate limit information.
type GraphQLRateLimitInfo struct {
	Limit     int64     // Maximum points allowed per hour
	Used      int64     // Points consumed in current window
	Remaining int64     // Points remaining in current window
	Reset     time.Time // When the rate limit window resets
}

// Status tracks the progress and API call counts for the current run.
//
// Simple counters use atomic operations for lock-free access; rate limit
// info uses an RWMutex because it needs consistent multi-field reads.
type Status struct {
	taskTotal int64
	taskDone  int64
	apiCalls  int64

	rateLimitMu      sync.RWMutex
	rateLimit        RateLimitInfo
	graphqlRateLimit GraphQLRateLimitInfo
}

var global = &Status{}

// Get returns the global Status instance for tracking progress and API calls.
func Get() *Status {
	return global
}

// AddTasks increments the total fetch-task count (thread-safe).
func (s *Status) AddTasks(n int) {
	atomic.AddInt64(&s.taskTotal, int64(n))
}

// MarkTaskDone increments the completed fetch-task count (thread-safe).
func (s *Status) MarkTaskDone() {
	atomic.AddInt64(&s.taskDone, 1)
}

// TaskProgress returns (done, total) fetch-task counts (thread-safe).
func (s *Status) TaskProgress() (int64, int64) {
	return atomic.LoadInt64(&s.taskDone), atomic.LoadInt64(&s.taskTotal)
}

// IncrementAPICalls increments the API call count (thread-safe).
func (s *Status) IncrementAPICalls() {
	atomic.AddInt64(&s.apiCalls, 1)
}

// GetAPICalls returns the current API call count (thread-safe).
func (s *Status) GetAPICalls() int64 {
	return atomic.LoadInt64(&s.apiCalls)
}

// UpdateRateLimit updates the REST rate limit information (thread-safe).
func (s *Status) UpdateRateLimit(limit, remaining int64, reset time.Time) {
	s.rateLimitMu.Lock()
	defer s.rateLimitMu.Unlock()
	s.rateLimit = RateLimitInfo{
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}
}

// UpdateGraphQLRateLimit updates the GraphQL rate limit information (thread-safe).
func (s *Status) UpdateGraphQLRateLimit(limit, used, remaining int64, reset time.Time) {
	s.rateLimitMu.Lock()
	defer s.rateLimitMu.Unlock()
	s.graphqlRateLimit = GraphQLRateLimitInfo{
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		Reset:     reset,
	}
}

// GetRateLimit returns the current REST rate limit information (thread-safe).
func (s *Status) GetRateLimit() RateLimitInfo {
	s.rateLimitMu.RLock()
	defer s.rateLimitMu.RUnlock()
	return s.rateLimit
}

// GetGraphQLRateLimit returns the current GraphQL rate limit information (thread-safe).
func (s *Status) GetGraphQLRateLimit() GraphQLRateLimitInfo {
	s.rateLimitMu.RLock()
	defer s.rateLimitMu.RUnlock()
	return s.graphqlRateLimit
}

// PrintRateLimit prints the current rate limit status.
func (s *Status) PrintRateLimit() {
	rateLimit := s.GetRateLimit()
	graphqlLimit := s.GetGraphQLRateLimit()

	if rateLimit.Limit == 0 {
		return
	}

	restUsed := rateLimit.Limit - rateLimit.Remaining

	restReset := "unknown"
	if !rateLimit.Reset.IsZero() {
		restReset = rateLimit.Reset.Format("15:04:05")
	}

	if graphqlLimit.Limit > 0 {
		graphqlReset := "unknown"
		if !graphqlLimit.Reset.IsZero() {
			graphqlReset = graphqlLimit.Reset.Format("15:04:05")
		}

		pterm.Info.Printf("REST: %d/%d used (%d remaining, resets at %s) | GraphQL: %d/%d used (%d remaining, resets at %s)\n",
			restUsed, rateLimit.Limit, rateLimit.Remaining, restReset,
			graphqlLimit.Used, graphqlLimit.Limit, graphqlLimit.Remaining, graphqlReset)
	} else {
		pterm.Info.Printf("%d/%d calls used | %d remaining | resets at: %s\n",
			restUsed, rateLimit.Limit, rateLimit.Remaining, restReset)
	}
}

// CheckRateLimit checks if we're approaching rate limits and sleeps if necessary.
// Returns an error if we can't proceed (rate limit hit and reset time is too far away).
// Uses a safety buffer to avoid hitting 429 errors.
//
// Both REST and GraphQL limits are checked and the most restrictive one wins.
func (s *Status) CheckRateLimit(minRequired int64) error {
	rateLimit := s.GetRateLimit()
	graphqlLimit := s.GetGraphQLRateLimit()

	// No rate limit info yet, skip check
	if rateLimit.Limit == 0 {
		return nil
	}

	restAvailable := rateLimit.Remaining - rateLimitSafetyBuffer

	limitType := "REST"
	available := restAvailable
	resetTime := rateLimit.Reset
	remaining := rateLimit.Remaining

	if graphqlLimit.Limit > 0 {
		graphqlAvailable := graphqlLimit.Remaining - rateLimitSafetyBuffer
		if graphqlAvailable < restAvailable {
			limitType = "GraphQL"
			available = graphqlAvailable
			resetTime = graphqlLimit.Reset
			remaining = graphqlLimit.Remaining
		}
	}

	if available < minRequired {
		timeUntilReset := time.Until(resetTime)

		// If reset is within a reasonable time, sleep until then
		if timeUntilReset > 0 && timeUntilReset < maxSleepUntilReset {
			pterm.Warning.Printf("⚠ %s rate limit low (%d remaining, %d required + %d buffer). Sleeping until reset at %s (%v)\n",
				limitType, remaining, minRequired, rateLimitSafetyBuffer,
				resetTime.Format("15:04:05"), timeUntilReset.Round(time.Second))

			time.Sleep(timeUntilReset + resetBufferTime)

			pterm.Info.Printf("✓ %s rate limit should be reset, resuming...\n", limitType)

			// Tell the caller to refresh rate limit data before retrying
			return ErrRateLimitRefreshNeeded
		}

		if timeUntilReset <= 0 {
			// Reset time already passed (clock skew or stale data); refresh and retry
			return ErrRateLimitRefreshNeeded
		}

		return fmt.Errorf("%s rate limit exhausted (%d remaining) and reset is too far away (%v)",
			limitType, remaining, timeUntilReset.Round(time.Minute))
	}

	return nil
}
