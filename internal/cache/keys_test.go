package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysDeterministic(t *testing.T) {
	assert.Equal(t, IssuesKey("octo", "hello"), IssuesKey("octo", "hello"))
	assert.Equal(t, CommentsKey("octo", "hello", 42), CommentsKey("octo", "hello", 42))
	assert.Equal(t, DeploymentStatusesKey("octo", "hello", 7), DeploymentStatusesKey("octo", "hello", 7))
}

func TestKeysUnique(t *testing.T) {
	keys := []string{
		ReposKey(),
		IssuesKey("octo", "hello"),
		IssuesKey("octo", "world"),
		IssuesKey("other", "hello"),
		CommentsKey("octo", "hello", 1),
		CommentsKey("octo", "hello", 2),
		WorkflowRunsKey("octo", "hello"),
		PRDetailsKey("octo", "hello", 1),
		ExpandedIssueKey("octo", "hello", 1),
		WorkflowFilesKey("octo", "hello"),
		DeploymentsKey("octo", "hello", "abc123"),
		DeploymentsKey("octo", "hello", "def456"),
		DeploymentStatusesKey("octo", "hello", 9),
		LastPrefetchKey(),
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestKeysSameKindDifferentID(t *testing.T) {
	// Same resource kind, different numeric id must never collide.
	assert.NotEqual(t, PRDetailsKey("o", "r", 1), PRDetailsKey("o", "r", 11))
	assert.NotEqual(t, CommentsKey("o", "r", 4), CommentsKey("o", "r", 40))
}
