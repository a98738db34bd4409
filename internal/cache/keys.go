package cache

import "fmt"

// Cache key builders, one per resource kind. Keys are deterministic and
// colon-delimited; every identifying field is included so two distinct
// resources can never share a key.

// ReposKey names the authenticated user's repository list.
func ReposKey() string {
	return "repos"
}

// IssuesKey names the issue list (including PRs) of a repository.
func IssuesKey(owner, repo string) string {
	return fmt.Sprintf("issues:%s/%s", owner, repo)
}

// CommentsKey names the comment list of a single issue or PR.
func CommentsKey(owner, repo string, issueNumber int) string {
	return fmt.Sprintf("comments:%s/%s:%d", owner, repo, issueNumber)
}

// WorkflowRunsKey names the workflow run list of a repository.
func WorkflowRunsKey(owner, repo string) string {
	return fmt.Sprintf("workflow-runs:%s/%s", owner, repo)
}

// PRDetailsKey names the detail record of a single pull request.
func PRDetailsKey(owner, repo string, prNumber int) string {
	return fmt.Sprintf("pr-details:%s/%s:%d", owner, repo, prNumber)
}

// ExpandedIssueKey names the composed detail bundle of a single issue.
func ExpandedIssueKey(owner, repo string, issueNumber int) string {
	return fmt.Sprintf("expanded-issue:%s/%s:%d", owner, repo, issueNumber)
}

// WorkflowFilesKey names the workflow file listing of a repository.
func WorkflowFilesKey(owner, repo string) string {
	return fmt.Sprintf("workflow-files:%s/%s", owner, repo)
}

// DeploymentsKey names the deployments matching one commit SHA.
func DeploymentsKey(owner, repo, sha string) string {
	return fmt.Sprintf("deployments:%s/%s:%s", owner, repo, sha)
}

// DeploymentStatusesKey names the status list of one deployment.
func DeploymentStatusesKey(owner, repo string, deploymentID int64) string {
	return fmt.Sprintf("deployment-statuses:%s/%s:%d", owner, repo, deploymentID)
}

// LastPrefetchKey names the timestamp marker the prefetcher uses to skip
// redundant back-to-back runs.
func LastPrefetchKey() string {
	return "last-prefetch"
}
