// Package ghapi provides functions for interacting with the GitHub API (GraphQL and REST).
//
// This file (queries.go) defines the typed GraphQL query structs. Field
// selection is driven by struct shape; graphql tags carry arguments and
// aliases. Pagination uses manual cursor loops over connection PageInfo.
package ghapi

import (
	"github.com/shurcooL/githubv4"
)

// repositoryNode is the repository selection shared by the owned and
// contributed-to connections.
type repositoryNode struct {
	Name  githubv4.String
	Owner struct {
		Login githubv4.String
	}
	StargazerCount  githubv4.Int
	ForkCount       githubv4.Int
	Description     *githubv4.String
	IsArchived      githubv4.Boolean
	IsFork          githubv4.Boolean
	IsPrivate       githubv4.Boolean
	CreatedAt       githubv4.DateTime
	UpdatedAt       githubv4.DateTime
	PrimaryLanguage *struct {
		Name githubv4.String
	}
	Languages struct {
		Edges []struct {
			Size githubv4.Int
			Node struct {
				Name  githubv4.String
				Color *githubv4.String
			}
		}
	} `graphql:"languages(first: 20, orderBy: {field: SIZE, direction: DESC})"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name githubv4.String
			}
		}
	} `graphql:"repositoryTopics(first: 20)"`
}

type connectionPageInfo struct {
	HasNextPage githubv4.Boolean
	EndCursor   githubv4.String
}

type userProfileQuery struct {
	User struct {
		Login           githubv4.String
		Name            *githubv4.String
		AvatarURL       githubv4.String `graphql:"avatarUrl"`
		Bio             *githubv4.String
		Company         *githubv4.String
		Location        *githubv4.String
		Email           githubv4.String
		TwitterUsername *githubv4.String
		WebsiteURL      *githubv4.String `graphql:"websiteUrl"`
		CreatedAt       githubv4.DateTime
		Followers       struct {
			TotalCount githubv4.Int
		}
		Following struct {
			TotalCount githubv4.Int
		}
	} `graphql:"user(login: $login)"`
}

type ownedRepositoriesQuery struct {
	User struct {
		Repositories struct {
			PageInfo connectionPageInfo
			Nodes    []repositoryNode
		} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: OWNER, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

type contributedRepositoriesQuery struct {
	User struct {
		RepositoriesContributedTo struct {
			PageInfo connectionPageInfo
			Nodes    []repositoryNode
		} `graphql:"repositoriesContributedTo(first: 100, after: $cursor, includeUserRepositories: false, contributionTypes: [COMMIT, PULL_REQUEST])"`
	} `graphql:"user(login: $login)"`
}

type contributionRangeQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions            githubv4.Int
			TotalIssueContributions             githubv4.Int
			TotalPullRequestContributions       githubv4.Int
			TotalPullRequestReviewContributions githubv4.Int
			TotalRepositoryContributions        githubv4.Int
			RestrictedContributionsCount        githubv4.Int
			ContributionCalendar                struct {
				TotalContributions githubv4.Int
				Weeks              []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}
