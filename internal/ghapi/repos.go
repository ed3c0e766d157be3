// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (repos.go) fetches the repository list. Owned repositories and
// repositories the user contributed to come from two GraphQL connections;
// both are paginated with a cursor loop and mapped into the shared RepoInfo
// working record.
package ghapi

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/LukeHagar/stats-action/internal/logger"
	"github.com/LukeHagar/stats-action/internal/output"
)

// FetchRepositories returns all repositories visible for the login: owned
// repositories first, then repositories contributed to (not owned). The
// returned order is stable across runs with identical API responses, which
// the language aggregation's insertion-order semantics rely on.
func (c *Client) FetchRepositories(ctx context.Context, login string) ([]output.RepoInfo, error) {
	owned, err := c.fetchOwnedRepositories(ctx, login)
	if err != nil {
		return nil, err
	}

	contributed, err := c.fetchContributedRepositories(ctx, login)
	if err != nil {
		// Contributed-to repos only feed language aggregation; owned repos
		// carry every other metric, so this degrades rather than fails.
		logger.Named("ghapi").Warn().Err(err).
			Str("login", login).
			Msg("skipping contributed-to repositories")
		return owned, nil
	}

	return append(owned, contributed...), nil
}

func (c *Client) fetchOwnedRepositories(ctx context.Context, login string) ([]output.RepoInfo, error) {
	var repos []output.RepoInfo
	var cursor *githubv4.String

	for {
		var q ownedRepositoriesQuery
		variables := map[string]interface{}{
			"login":  githubv4.String(login),
			"cursor": cursor,
		}

		if err := c.queryGraphQL(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("owned repositories query failed for %s: %w", login, err)
		}

		for _, node := range q.User.Repositories.Nodes {
			repos = append(repos, repoInfoFromNode(node, true))
		}

		if !bool(q.User.Repositories.PageInfo.HasNextPage) {
			break
		}
		cursor = &q.User.Repositories.PageInfo.EndCursor
	}

	return repos, nil
}

func (c *Client) fetchContributedRepositories(ctx context.Context, login string) ([]output.RepoInfo, error) {
	var repos []output.RepoInfo
	var cursor *githubv4.String

	for {
		var q contributedRepositoriesQuery
		variables := map[string]interface{}{
			"login":  githubv4.String(login),
			"cursor": cursor,
		}

		if err := c.queryGraphQL(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("contributed repositories query failed for %s: %w", login, err)
		}

		for _, node := range q.User.RepositoriesContributedTo.Nodes {
			repos = append(repos, repoInfoFromNode(node, false))
		}

		if !bool(q.User.RepositoriesContributedTo.PageInfo.HasNextPage) {
			break
		}
		cursor = &q.User.RepositoriesContributedTo.PageInfo.EndCursor
	}

	return repos, nil
}

// repoInfoFromNode maps one GraphQL repository node into the working record.
func repoInfoFromNode(node repositoryNode, isOwner bool) output.RepoInfo {
	info := output.RepoInfo{
		Owner:      string(node.Owner.Login),
		Name:       string(node.Name),
		IsOwner:    isOwner,
		Stars:      int64(node.StargazerCount),
		Forks:      int64(node.ForkCount),
		IsArchived: bool(node.IsArchived),
		IsFork:     bool(node.IsFork),
		IsPrivate:  bool(node.IsPrivate),
		CreatedAt:  node.CreatedAt.Time,
		UpdatedAt:  node.UpdatedAt.Time,
	}

	info.Description = gqlStringPtr(node.Description)
	if node.PrimaryLanguage != nil {
		name := string(node.PrimaryLanguage.Name)
		info.PrimaryLanguage = &name
	}

	for _, edge := range node.Languages.Edges {
		info.Languages = append(info.Languages, output.LanguageEdge{
			Name:  string(edge.Node.Name),
			Size:  int64(edge.Size),
			Color: gqlStringPtr(edge.Node.Color),
		})
	}

	for _, topicNode := range node.RepositoryTopics.Nodes {
		info.Topics = append(info.Topics, string(topicNode.Topic.Name))
	}

	return info
}
