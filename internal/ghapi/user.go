// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (user.go) fetches user-level data: the authenticated login, the
// full profile, the all-time commit count from commit search, and the number
// of repositories the user has starred.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
)

// UserProfile holds the profile fields collected for the snapshot.
// Optional fields are nil when the account has not set them.
type UserProfile struct {
	Login           string
	Name            string
	AvatarURL       *string
	Bio             *string
	Company         *string
	Location        *string
	Email           *string
	TwitterUsername *string
	WebsiteURL      *string
	CreatedAt       time.Time
	Followers       int64
	Following       int64
}

// FetchViewerLogin resolves the login of the authenticated user via the REST
// /user endpoint. Used when no username flag is given.
func (c *Client) FetchViewerLogin(ctx context.Context) (string, error) {
	resp, err := c.GetREST(ctx, "/user")
	if err != nil {
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from /user", resp.StatusCode)
	}

	var body struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("failed to parse /user response: %w", err)
	}
	if body.Login == "" {
		return "", fmt.Errorf("authenticated user has no login")
	}
	return body.Login, nil
}

// FetchUserProfile fetches the profile of the given login via GraphQL.
func (c *Client) FetchUserProfile(ctx context.Context, login string) (*UserProfile, error) {
	var q userProfileQuery
	variables := map[string]interface{}{
		"login": githubv4.String(login),
	}

	if err := c.queryGraphQL(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("profile query failed for %s: %w", login, err)
	}

	u := q.User
	profile := &UserProfile{
		Login:           string(u.Login),
		AvatarURL:       nilIfEmpty(string(u.AvatarURL)),
		Bio:             gqlStringPtr(u.Bio),
		Company:         gqlStringPtr(u.Company),
		Location:        gqlStringPtr(u.Location),
		Email:           nilIfEmpty(string(u.Email)),
		TwitterUsername: gqlStringPtr(u.TwitterUsername),
		WebsiteURL:      gqlStringPtr(u.WebsiteURL),
		CreatedAt:       u.CreatedAt.Time,
		Followers:       int64(u.Followers.TotalCount),
		Following:       int64(u.Following.TotalCount),
	}
	if u.Name != nil {
		profile.Name = string(*u.Name)
	}
	return profile, nil
}

// FetchTotalCommits returns the all-time commit count for the login using
// the commit search API's total_count.
func (c *Client) FetchTotalCommits(ctx context.Context, login string) (int64, error) {
	endpoint := fmt.Sprintf("/search/commits?q=author:%s&per_page=1", login)
	resp, err := c.GetREST(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("commit search failed for %s: %w", login, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d from commit search", resp.StatusCode)
	}

	var body struct {
		TotalCount int64 `json:"total_count"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return 0, fmt.Errorf("failed to parse commit search response: %w", err)
	}
	return body.TotalCount, nil
}

// FetchStarsGivenCount returns how many repositories the login has starred.
// Rather than paging through every starred repo, it requests a single item
// and reads the last page number from the Link header, which equals the
// total count at per_page=1.
func (c *Client) FetchStarsGivenCount(ctx context.Context, login string) (int64, error) {
	endpoint := fmt.Sprintf("/users/%s/starred?per_page=1", login)
	resp, err := c.GetREST(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("starred lookup failed for %s: %w", login, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d from starred lookup", resp.StatusCode)
	}

	if lastPage, ok := parseLinkHeader(resp.Headers.Get("Link"), "last"); ok {
		return int64(lastPage), nil
	}

	// No Link header: zero or one starred repo, count the body directly
	var body []json.RawMessage
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return 0, fmt.Errorf("failed to parse starred response: %w", err)
	}
	return int64(len(body)), nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func gqlStringPtr(s *githubv4.String) *string {
	if s == nil {
		return nil
	}
	return nilIfEmpty(string(*s))
}
