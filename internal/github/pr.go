package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// GetPullRequest fetches the full detail record of a pull request,
// including its head SHA and merge state.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PRDetails, error) {
	slog.Debug("GitHub API: Getting PR", "owner", owner, "repo", repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	return &PRDetails{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     pr.GetState(),
		HeadSHA:   pr.GetHead().GetSHA(),
		Merged:    pr.GetMerged(),
		Mergeable: pr.Mergeable,
		User:      pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
	}, nil
}

// MergePullRequest merges a pull request using the given merge method
// ("merge", "squash" or "rebase").
func (c *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, mergeMethod string) error {
	slog.Debug("GitHub API: Getting PR for merge", "owner", owner, "repo", repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to get PR #%d: %w", number, err)
	}

	// Mergeable can be nil while GitHub is still computing it.
	if pr.Mergeable != nil && !*pr.Mergeable {
		return fmt.Errorf("PR #%d is not mergeable (conflicts may exist)", number)
	}

	mergeOptions := &github.PullRequestOptions{
		MergeMethod: mergeMethod,
	}

	slog.Debug("GitHub API: Merging PR", "owner", owner, "repo", repo, "pr", number, "method", mergeMethod)
	mergeResult, _, err := c.client.PullRequests.Merge(ctx, owner, repo, number, "", mergeOptions)
	if err != nil {
		return fmt.Errorf("failed to merge PR #%d: %w", number, err)
	}

	if !mergeResult.GetMerged() {
		return fmt.Errorf("PR #%d merge was not successful: %s", number, mergeResult.GetMessage())
	}

	return nil
}
