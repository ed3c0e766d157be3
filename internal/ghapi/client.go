// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (client.go) implements the core API client. REST calls return the
// raw status code, body, and headers so callers can react to endpoint-specific
// statuses (most notably 202 from the contributor-stats endpoint). Transient
// server errors (HTTP 5xx) and network failures are retried with exponential
// backoff; all other statuses are returned to the caller as-is.
package ghapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/LukeHagar/stats-action/internal/logger"
	"github.com/LukeHagar/stats-action/internal/state"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "stats-action"
)

// API request and retry configuration constants.
const (
	// maxRetries is the maximum number of attempts for transient server errors (HTTP 5xx).
	// Server errors like 504 Gateway Timeout, 502 Bad Gateway, 503 Service Unavailable
	// are typically temporary and use exponential backoff (1s, 2s, 4s...).
	maxRetries = 3

	// maxBackoffDuration caps exponential backoff to prevent excessive wait times
	maxBackoffDuration = 30 * time.Second

	retryBackoffBaseDuration = 1 * time.Second // Doubles each attempt: 1s, 2s, 4s...

	requestTimeout = 30 * time.Second

	// Contributor stats are computed lazily by GitHub; a 202 response means
	// the computation is still running. Poll with a fixed delay up to a cap
	// and treat exhaustion as "no data" rather than a failure.
	statsRetryDelay  = 2 * time.Second
	statsMaxAttempts = 8
)

// Client wraps the authenticated REST and GraphQL transports.
// It is safe for concurrent use; the underlying http.Client handles
// connection pooling and the token source is immutable.
type Client struct {
	rest    *http.Client
	graphql *githubv4.Client
	baseURL string

	// statsDelay is the fixed wait between contributor-stats polls.
	// Overridable so tests do not sleep for real.
	statsDelay time.Duration
}

// NewClient builds a Client authenticated with the given bearer token.
// The same oauth2 transport backs both the REST and GraphQL clients.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = requestTimeout

	return &Client{
		rest:       httpClient,
		graphql:    githubv4.NewClient(httpClient),
		baseURL:    defaultBaseURL,
		statsDelay: statsRetryDelay,
	}
}

// RESTResponse is the result of a single REST API call.
type RESTResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// GetREST executes a GET request against a REST endpoint (e.g. "/user") with
// retry logic for transient errors. Non-2xx statuses below 500 are NOT treated
// as errors here; the caller inspects StatusCode and decides.
func (c *Client) GetREST(ctx context.Context, endpoint string) (*RESTResponse, error) {
	c.checkRateLimit(ctx, 1)

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		// Check for cancellation before retry (except first attempt)
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", endpoint, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.rest.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("REST API call failed for %s: %w", endpoint, err)
			if attempt < maxRetries-1 {
				c.backoff(ctx, endpoint, attempt)
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("reading response from %s: %w", endpoint, readErr)
			if attempt < maxRetries-1 {
				c.backoff(ctx, endpoint, attempt)
				continue
			}
			return nil, lastErr
		}

		state.Get().IncrementAPICalls()

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d from %s", resp.StatusCode, endpoint)
			if attempt < maxRetries-1 {
				c.backoff(ctx, endpoint, attempt)
				continue
			}
			return nil, lastErr
		}

		return &RESTResponse{
			StatusCode: resp.StatusCode,
			Body:       body,
			Headers:    resp.Header,
		}, nil
	}

	return nil, lastErr
}

// queryGraphQL executes one GraphQL query, tracking rate limits and API calls.
func (c *Client) queryGraphQL(ctx context.Context, q interface{}, variables map[string]interface{}) error {
	c.checkRateLimit(ctx, 1)

	if err := c.graphql.Query(ctx, q, variables); err != nil {
		return err
	}
	state.Get().IncrementAPICalls()
	return nil
}

// checkRateLimit enforces the rate limit budget before a call, refreshing
// stale rate limit data when the state layer asks for it. Exhaustion that
// cannot be waited out is logged but not fatal here; the actual API call
// will surface the hard failure.
func (c *Client) checkRateLimit(ctx context.Context, minRequired int64) {
	err := state.Get().CheckRateLimit(minRequired)
	if err == nil {
		return
	}
	if errors.Is(err, state.ErrRateLimitRefreshNeeded) {
		c.UpdateRateLimitInfo(ctx)
		return
	}
	logger.Named("ghapi").Warn().Err(err).Msg("rate limit check failed, proceeding anyway")
}

// backoff sleeps with exponential backoff, respecting context cancellation.
func (c *Client) backoff(ctx context.Context, endpoint string, attempt int) {
	d := retryBackoffBaseDuration * time.Duration(1<<uint(attempt)) // 1s, 2s, 4s...
	if d > maxBackoffDuration {
		d = maxBackoffDuration
	}

	logger.Named("ghapi").Warn().
		Str("endpoint", endpoint).
		Int("attempt", attempt+1).
		Dur("backoff", d).
		Msg("transient error, retrying")

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// parseLinkHeader extracts the page number from a GitHub Link header for the specified rel type.
//
// GitHub uses Link headers for pagination in REST API responses. This function parses
// headers like: <https://api.github.com/user/starred?per_page=1&page=966>; rel="last"
//
// Returns the page number and true if the specified rel was found,
// or 0 and false if not found or parsing failed.
func parseLinkHeader(linkHeader string, rel string) (int, bool) {
	links := strings.Split(linkHeader, ",")

	relPattern := fmt.Sprintf(`rel="%s"`, rel)
	for _, link := range links {
		if !strings.Contains(link, relPattern) {
			continue
		}

		// Extract the URL part between < and >
		start := strings.Index(link, "<")
		end := strings.Index(link, ">")
		if start == -1 || end == -1 {
			continue
		}
		url := link[start+1 : end]

		parts := strings.Split(url, "?")
		if len(parts) < 2 {
			continue
		}

		for _, param := range strings.Split(parts[1], "&") {
			keyValue := strings.Split(param, "=")
			if len(keyValue) == 2 && keyValue[0] == "page" {
				var pageNum int
				if _, err := fmt.Sscanf(keyValue[1], "%d", &pageNum); err == nil {
					return pageNum, true
				}
			}
		}
	}

	return 0, false
}
