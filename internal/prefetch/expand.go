package prefetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/github"
)

// maxArtifactRuns caps how many related workflow runs get their
// artifacts fetched, bounding the fan-out per issue.
const maxArtifactRuns = 10

// DeploymentWithStatus pairs a deployment with its most recent status,
// if one was fetched.
type DeploymentWithStatus struct {
	Deployment github.Deployment        `json:"deployment"`
	Status     *github.DeploymentStatus `json:"status"`
}

// Bundle is the composed detail graph of a single issue: its comments,
// the pull requests referencing it, their deployments and the CI runs
// and artifacts for their head commits. Cached as one unit.
type Bundle struct {
	Comments        []github.Comment               `json:"comments"`
	WorkflowRuns    []github.WorkflowRun           `json:"workflow_runs"`
	PRDetails       map[int]github.PRDetails       `json:"pr_details"`
	DeploymentsByPR map[int][]DeploymentWithStatus `json:"deployments_by_pr"`
	Artifacts       map[int64][]github.Artifact    `json:"artifacts"`
	PRComments      map[int][]github.Comment       `json:"pr_comments"`
}

// Expander assembles issue bundles and writes them to the cache.
type Expander struct {
	api   API
	cache *cache.Cache
}

// NewExpander returns an expander writing bundles into c. A nil cache
// skips the write, useful for one-off foreground expansions.
func NewExpander(api API, c *cache.Cache) *Expander {
	return &Expander{api: api, cache: c}
}

// RelatedPullRequests returns the pull requests in issues whose title or
// body references the issue number as "#<number>". This is a text
// heuristic, not GitHub's closing-reference semantics: "fixes #42" in a
// PR body counts, a GitHub-side link with no literal "#42" does not.
func RelatedPullRequests(issueNumber int, issues []github.Issue) []github.Issue {
	var related []github.Issue
	for _, candidate := range issues {
		if !candidate.IsPullRequest {
			continue
		}
		if referencesIssue(candidate.Title, issueNumber) || referencesIssue(candidate.Body, issueNumber) {
			related = append(related, candidate)
		}
	}
	return related
}

// referencesIssue reports whether text contains "#<number>" not followed
// by another digit, so #42 never matches inside #420.
func referencesIssue(text string, number int) bool {
	marker := fmt.Sprintf("#%d", number)
	lower := strings.ToLower(text)
	for i := 0; ; {
		j := strings.Index(lower[i:], marker)
		if j < 0 {
			return false
		}
		end := i + j + len(marker)
		if end >= len(lower) || lower[end] < '0' || lower[end] > '9' {
			return true
		}
		i = end
	}
}

// ExpandIssue builds the full detail bundle for one issue and caches it
// as a single unit. Only the initial comment fetch is fatal; every other
// sub-fetch degrades to an empty result for its item. Steps run in
// dependency order, with independent fetches inside a step fanned out
// concurrently and joined by PR number or run id.
func (e *Expander) ExpandIssue(ctx context.Context, owner, repo string, issue github.Issue, allIssues []github.Issue, runs []github.WorkflowRun) (*Bundle, error) {
	comments, err := e.api.ListIssueComments(ctx, owner, repo, issue.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for issue #%d: %w", issue.Number, err)
	}

	related := RelatedPullRequests(issue.Number, allIssues)

	bundle := &Bundle{
		Comments:        comments,
		PRDetails:       make(map[int]github.PRDetails),
		DeploymentsByPR: make(map[int][]DeploymentWithStatus),
		Artifacts:       make(map[int64][]github.Artifact),
		PRComments:      make(map[int][]github.Comment),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	// PR details and PR comments, one fan-out per related PR.
	for _, pr := range related {
		wg.Add(1)
		go func(pr github.Issue) {
			defer wg.Done()

			details, derr := e.api.GetPullRequest(ctx, owner, repo, pr.Number)
			if derr != nil {
				slog.Debug("issue expansion: PR details unavailable", "pr", pr.Number, "error", derr)
			}

			prComments, cerr := e.api.ListIssueComments(ctx, owner, repo, pr.Number)
			if cerr != nil {
				slog.Debug("issue expansion: PR comments unavailable", "pr", pr.Number, "error", cerr)
				prComments = []github.Comment{}
			}

			mu.Lock()
			defer mu.Unlock()
			if derr == nil && details != nil {
				bundle.PRDetails[pr.Number] = *details
			}
			bundle.PRComments[pr.Number] = prComments
			bundle.DeploymentsByPR[pr.Number] = []DeploymentWithStatus{}
		}(pr)
	}
	wg.Wait()

	// Deployments per resolved PR head SHA, then the latest status of
	// the latest deployment.
	for number, details := range bundle.PRDetails {
		wg.Add(1)
		go func(number int, sha string) {
			defer wg.Done()
			entries := e.fetchDeployments(ctx, owner, repo, number, sha)
			mu.Lock()
			bundle.DeploymentsByPR[number] = entries
			mu.Unlock()
		}(number, details.HeadSHA)
	}
	wg.Wait()

	// Workflow runs whose head SHA belongs to a related PR, capped to
	// keep the artifact fan-out bounded.
	relatedSHAs := make(map[string]bool)
	for _, details := range bundle.PRDetails {
		if details.HeadSHA != "" {
			relatedSHAs[details.HeadSHA] = true
		}
	}
	for _, run := range runs {
		if relatedSHAs[run.HeadSHA] {
			bundle.WorkflowRuns = append(bundle.WorkflowRuns, run)
			if len(bundle.WorkflowRuns) == maxArtifactRuns {
				break
			}
		}
	}

	for _, run := range bundle.WorkflowRuns {
		wg.Add(1)
		go func(runID int64) {
			defer wg.Done()

			artifacts, aerr := e.api.ListRunArtifacts(ctx, owner, repo, runID)
			if aerr != nil {
				slog.Debug("issue expansion: artifacts unavailable", "run_id", runID, "error", aerr)
				artifacts = []github.Artifact{}
			}

			mu.Lock()
			bundle.Artifacts[runID] = artifacts
			mu.Unlock()
		}(run.ID)
	}
	wg.Wait()

	if e.cache != nil {
		cache.SetCached(e.cache, cache.ExpandedIssueKey(owner, repo, issue.Number), bundle)
	}

	return bundle, nil
}

// fetchDeployments returns the deployments for one PR head SHA with the
// most recent deployment's most recent status attached. Any failure
// degrades to what was gathered so far.
func (e *Expander) fetchDeployments(ctx context.Context, owner, repo string, prNumber int, sha string) []DeploymentWithStatus {
	entries := []DeploymentWithStatus{}

	deployments, err := e.api.ListDeployments(ctx, owner, repo, sha)
	if err != nil {
		slog.Debug("issue expansion: deployments unavailable", "pr", prNumber, "error", err)
		return entries
	}

	latest := -1
	for i, d := range deployments {
		entries = append(entries, DeploymentWithStatus{Deployment: d})
		if latest < 0 || d.CreatedAt.After(deployments[latest].CreatedAt) {
			latest = i
		}
	}
	if latest < 0 {
		return entries
	}

	statuses, err := e.api.ListDeploymentStatuses(ctx, owner, repo, deployments[latest].ID)
	if err != nil {
		slog.Debug("issue expansion: deployment statuses unavailable", "pr", prNumber, "deployment_id", deployments[latest].ID, "error", err)
		return entries
	}
	if len(statuses) > 0 {
		newest := statuses[0]
		for _, s := range statuses[1:] {
			if s.CreatedAt.After(newest.CreatedAt) {
				newest = s
			}
		}
		entries[latest].Status = &newest
	}

	return entries
}
