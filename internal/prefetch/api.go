// Package prefetch contains the two cache-warming orchestrators: the
// expanded-issue aggregator, which assembles an issue's full detail
// graph by fan-out/fan-in, and the top-repository prefetcher, which
// walks the most recently updated repositories at startup so screens
// find their data already cached.
package prefetch

import (
	"context"

	"github.com/friuns/vibehub/internal/github"
)

// API is the slice of the GitHub client the orchestrators consume.
// *github.Client satisfies it; tests substitute a fake.
type API interface {
	ListIssues(ctx context.Context, owner, repo string) ([]github.Issue, error)
	ListIssueComments(ctx context.Context, owner, repo string, issueNumber int) ([]github.Comment, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PRDetails, error)
	ListWorkflowRuns(ctx context.Context, owner, repo string) ([]github.WorkflowRun, error)
	ListRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]github.Artifact, error)
	ListDeployments(ctx context.Context, owner, repo, sha string) ([]github.Deployment, error)
	ListDeploymentStatuses(ctx context.Context, owner, repo string, deploymentID int64) ([]github.DeploymentStatus, error)
}
