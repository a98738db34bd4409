package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// ListWorkflowRuns fetches the most recent workflow runs of a
// repository. A single page of 100 is plenty for dashboard purposes.
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo string) ([]WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	slog.Debug("GitHub API: Listing workflow runs", "owner", owner, "repo", repo)
	runs, _, err := c.client.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow runs for %s/%s: %w", owner, repo, err)
	}

	var allRuns []WorkflowRun
	for _, run := range runs.WorkflowRuns {
		allRuns = append(allRuns, WorkflowRun{
			ID:         run.GetID(),
			Name:       run.GetName(),
			HeadSHA:    run.GetHeadSHA(),
			Status:     run.GetStatus(),
			Conclusion: run.GetConclusion(),
			CreatedAt:  run.GetCreatedAt().Time,
			URL:        run.GetHTMLURL(),
		})
	}

	return allRuns, nil
}

// ListRunArtifacts fetches the artifacts produced by a workflow run.
func (c *Client) ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]Artifact, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	slog.Debug("GitHub API: Listing run artifacts", "owner", owner, "repo", repo, "run_id", runID)
	artifacts, _, err := c.client.Actions.ListWorkflowRunArtifacts(ctx, owner, repo, runID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts for run %d: %w", runID, err)
	}

	var allArtifacts []Artifact
	for _, artifact := range artifacts.Artifacts {
		allArtifacts = append(allArtifacts, Artifact{
			ID:          artifact.GetID(),
			Name:        artifact.GetName(),
			SizeInBytes: artifact.GetSizeInBytes(),
			Expired:     artifact.GetExpired(),
			CreatedAt:   artifact.GetCreatedAt().Time,
		})
	}

	return allArtifacts, nil
}
