package prefetch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/friuns/vibehub/internal/cache"
	"github.com/friuns/vibehub/internal/github"
)

// Config bounds how much work a prefetch run is allowed to generate.
// GitHub enforces a request-rate ceiling, so repos are walked
// sequentially and issue expansions run in small batches; the batch
// size trades prefetch completeness against burst request volume.
type Config struct {
	TopRepoCount int           // repos to walk, first-N by recency
	IssueLimit   int           // non-PR issues expanded per repo
	BatchSize    int           // concurrent issue expansions per repo
	PRLimit      int           // PR details fetched per repo
	SkipWindow   time.Duration // minimum gap between full runs
}

func (c Config) withDefaults() Config {
	if c.TopRepoCount <= 0 {
		c.TopRepoCount = 4
	}
	if c.IssueLimit <= 0 {
		c.IssueLimit = 5
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 3
	}
	if c.PRLimit <= 0 {
		c.PRLimit = 5
	}
	if c.SkipWindow <= 0 {
		c.SkipWindow = 2 * time.Minute
	}
	return c
}

// Prefetcher warms the cache for the most recently updated repositories.
type Prefetcher struct {
	api      API
	cache    *cache.Cache
	expander *Expander
	cfg      Config
}

// NewPrefetcher returns a prefetcher writing into c. Zero config fields
// fall back to the defaults.
func NewPrefetcher(api API, c *cache.Cache, cfg Config) *Prefetcher {
	return &Prefetcher{
		api:      api,
		cache:    c,
		expander: NewExpander(api, c),
		cfg:      cfg.withDefaults(),
	}
}

// TopRepos walks the first TopRepoCount repositories (the caller passes
// them pre-sorted by recency) and warms their caches. Fire and forget:
// it never reports an error; per-unit failures are logged and siblings
// proceed. A run within SkipWindow of the previous one is skipped
// entirely to avoid redundant work on rapid re-triggers.
func (p *Prefetcher) TopRepos(ctx context.Context, repos []github.Repository) {
	if p.cache.IsFresh(cache.LastPrefetchKey(), p.cfg.SkipWindow) {
		slog.Debug("prefetch skipped, previous run still recent")
		return
	}
	cache.SetCached(p.cache, cache.LastPrefetchKey(), time.Now().UnixMilli())

	count := min(p.cfg.TopRepoCount, len(repos))
	for _, repo := range repos[:count] {
		p.prefetchRepo(ctx, repo.Owner, repo.Name)
	}
}

func (p *Prefetcher) prefetchRepo(ctx context.Context, owner, name string) {
	issues, err := p.api.ListIssues(ctx, owner, name)
	if err != nil {
		slog.Debug("prefetch: skipping repo, issues unavailable", "owner", owner, "repo", name, "error", err)
		return
	}
	cache.SetCached(p.cache, cache.IssuesKey(owner, name), issues)

	runs, err := p.api.ListWorkflowRuns(ctx, owner, name)
	if err != nil {
		slog.Debug("prefetch: workflow runs unavailable", "owner", owner, "repo", name, "error", err)
		runs = nil
	} else {
		cache.SetCached(p.cache, cache.WorkflowRunsKey(owner, name), runs)
	}

	var candidates, prs []github.Issue
	for _, issue := range issues {
		if issue.IsPullRequest {
			prs = append(prs, issue)
		} else {
			candidates = append(candidates, issue)
		}
	}
	if len(candidates) > p.cfg.IssueLimit {
		candidates = candidates[:p.cfg.IssueLimit]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.BatchSize)
	for _, issue := range candidates {
		issue := issue
		g.Go(func() error {
			if _, err := p.expander.ExpandIssue(gctx, owner, name, issue, issues, runs); err != nil {
				slog.Debug("prefetch: issue expansion failed", "owner", owner, "repo", name, "issue", issue.Number, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(prs) > p.cfg.PRLimit {
		prs = prs[:p.cfg.PRLimit]
	}
	for _, pr := range prs {
		details, err := p.api.GetPullRequest(ctx, owner, name, pr.Number)
		if err != nil {
			slog.Debug("prefetch: PR details unavailable", "owner", owner, "repo", name, "pr", pr.Number, "error", err)
			continue
		}
		cache.SetCached(p.cache, cache.PRDetailsKey(owner, name, pr.Number), details)
	}
}
