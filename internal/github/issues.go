package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// ListIssues fetches the open issues of a repository. Pull requests come
// back in the same listing with their PR marker set, which the expansion
// layer relies on to relate PRs to issues.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allIssues []Issue
	for {
		slog.Debug("GitHub API: Listing issues", "owner", owner, "repo", repo, "page", opts.Page)
		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s/%s: %w", owner, repo, err)
		}

		for _, issue := range issues {
			allIssues = append(allIssues, Issue{
				Number:        issue.GetNumber(),
				Title:         issue.GetTitle(),
				Body:          issue.GetBody(),
				State:         issue.GetState(),
				User:          issue.GetUser().GetLogin(),
				IsPullRequest: issue.IsPullRequest(),
				CreatedAt:     issue.GetCreatedAt().Time,
				UpdatedAt:     issue.GetUpdatedAt().Time,
				URL:           issue.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allIssues, nil
}

// CreateIssue creates a new issue in the repository.
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string) (*Issue, error) {
	request := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}

	slog.Debug("GitHub API: Creating issue", "owner", owner, "repo", repo, "title", title)
	issue, _, err := c.client.Issues.Create(ctx, owner, repo, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue in %s/%s: %w", owner, repo, err)
	}

	return &Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		State:     issue.GetState(),
		User:      issue.GetUser().GetLogin(),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
		URL:       issue.GetHTMLURL(),
	}, nil
}
