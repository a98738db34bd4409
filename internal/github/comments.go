package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// ListIssueComments retrieves all comments of an issue or pull request.
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, issueNumber int) ([]Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allComments []Comment
	for {
		slog.Debug("GitHub API: Listing issue comments", "owner", owner, "repo", repo, "issue", issueNumber, "page", opts.Page)
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, issueNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for issue #%d: %w", issueNumber, err)
		}

		for _, comment := range comments {
			allComments = append(allComments, Comment{
				ID:        comment.GetID(),
				Body:      comment.GetBody(),
				User:      comment.GetUser().GetLogin(),
				CreatedAt: comment.GetCreatedAt().Time,
				UpdatedAt: comment.GetUpdatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// CreateIssueComment creates a new comment on an issue or pull request.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) (*Comment, error) {
	commentInput := &github.IssueComment{
		Body: github.String(body),
	}

	slog.Debug("GitHub API: Creating issue comment", "owner", owner, "repo", repo, "issue", issueNumber)
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, issueNumber, commentInput)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on issue #%d: %w", issueNumber, err)
	}

	return &Comment{
		ID:        comment.GetID(),
		Body:      comment.GetBody(),
		User:      comment.GetUser().GetLogin(),
		CreatedAt: comment.GetCreatedAt().Time,
		UpdatedAt: comment.GetUpdatedAt().Time,
	}, nil
}
