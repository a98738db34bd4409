package prefetch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friuns/vibehub/internal/github"
)

func testRepos(n int) []github.Repository {
	var repos []github.Repository
	for i := 0; i < n; i++ {
		repos = append(repos, github.Repository{Owner: "octo", Name: fmt.Sprintf("repo-%d", i)})
	}
	return repos
}

func TestTopReposWalksOnlyFirstN(t *testing.T) {
	var mu sync.Mutex
	var visited []string

	api := &fakeAPI{
		listIssues: func(_, repo string) ([]github.Issue, error) {
			mu.Lock()
			visited = append(visited, repo)
			mu.Unlock()
			return nil, nil
		},
	}

	p := NewPrefetcher(api, openTestCache(t), Config{TopRepoCount: 4})
	p.TopRepos(context.Background(), testRepos(6))

	assert.Equal(t, []string{"repo-0", "repo-1", "repo-2", "repo-3"}, visited)
}

func TestTopReposBoundsExpansionConcurrency(t *testing.T) {
	const batchSize = 3

	var inFlight, maxInFlight atomic.Int32

	issues := make([]github.Issue, 0, 8)
	for i := 1; i <= 8; i++ {
		issues = append(issues, github.Issue{Number: i, Title: fmt.Sprintf("issue %d", i)})
	}

	api := &fakeAPI{
		listIssues: func(_, _ string) ([]github.Issue, error) {
			return issues, nil
		},
		// With no related PRs, each expansion calls ListIssueComments
		// exactly once, so in-flight comment fetches equal in-flight
		// expansions.
		listIssueComments: func(_, _ string, _ int) ([]github.Comment, error) {
			current := inFlight.Add(1)
			for {
				observed := maxInFlight.Load()
				if current <= observed || maxInFlight.CompareAndSwap(observed, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return nil, nil
		},
	}

	p := NewPrefetcher(api, openTestCache(t), Config{TopRepoCount: 1, IssueLimit: 8, BatchSize: batchSize})
	p.TopRepos(context.Background(), testRepos(1))

	assert.LessOrEqual(t, maxInFlight.Load(), int32(batchSize))
	assert.Positive(t, maxInFlight.Load())
}

func TestTopReposSkipsWithinWindow(t *testing.T) {
	var calls atomic.Int32

	api := &fakeAPI{
		listIssues: func(_, _ string) ([]github.Issue, error) {
			calls.Add(1)
			return nil, nil
		},
	}

	p := NewPrefetcher(api, openTestCache(t), Config{TopRepoCount: 2, SkipWindow: time.Minute})

	p.TopRepos(context.Background(), testRepos(2))
	require.Equal(t, int32(2), calls.Load())

	// Immediately re-triggering within the window is a no-op.
	p.TopRepos(context.Background(), testRepos(2))
	assert.Equal(t, int32(2), calls.Load())
}

func TestTopReposSurvivesRepoFailure(t *testing.T) {
	var mu sync.Mutex
	var visited []string

	api := &fakeAPI{
		listIssues: func(_, repo string) ([]github.Issue, error) {
			mu.Lock()
			visited = append(visited, repo)
			mu.Unlock()
			if repo == "repo-0" {
				return nil, fmt.Errorf("boom")
			}
			return nil, nil
		},
	}

	p := NewPrefetcher(api, openTestCache(t), Config{TopRepoCount: 2})
	p.TopRepos(context.Background(), testRepos(2))

	assert.Equal(t, []string{"repo-0", "repo-1"}, visited, "a failed repo must not block its siblings")
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, 4, cfg.TopRepoCount)
	assert.Equal(t, 5, cfg.IssueLimit)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Equal(t, 5, cfg.PRLimit)
	assert.Equal(t, 2*time.Minute, cfg.SkipWindow)
}
