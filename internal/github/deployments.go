package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// ListDeployments fetches the deployments whose SHA matches the given
// commit, most recent first.
func (c *Client) ListDeployments(ctx context.Context, owner, repo, sha string) ([]Deployment, error) {
	opts := &github.DeploymentsListOptions{
		SHA: sha,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	slog.Debug("GitHub API: Listing deployments", "owner", owner, "repo", repo, "sha", sha)
	deployments, _, err := c.client.Repositories.ListDeployments(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments for %s: %w", sha, err)
	}

	var allDeployments []Deployment
	for _, d := range deployments {
		allDeployments = append(allDeployments, Deployment{
			ID:          d.GetID(),
			SHA:         d.GetSHA(),
			Ref:         d.GetRef(),
			Environment: d.GetEnvironment(),
			CreatedAt:   d.GetCreatedAt().Time,
		})
	}

	return allDeployments, nil
}

// ListDeploymentStatuses fetches the status history of a deployment,
// most recent first.
func (c *Client) ListDeploymentStatuses(ctx context.Context, owner, repo string, deploymentID int64) ([]DeploymentStatus, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	slog.Debug("GitHub API: Listing deployment statuses", "owner", owner, "repo", repo, "deployment_id", deploymentID)
	statuses, _, err := c.client.Repositories.ListDeploymentStatuses(ctx, owner, repo, deploymentID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses for deployment %d: %w", deploymentID, err)
	}

	var allStatuses []DeploymentStatus
	for _, s := range statuses {
		allStatuses = append(allStatuses, DeploymentStatus{
			ID:          s.GetID(),
			State:       s.GetState(),
			Description: s.GetDescription(),
			CreatedAt:   s.GetCreatedAt().Time,
		})
	}

	return allStatuses, nil
}
