package account

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/friuns/vibehub/internal/cache"
)

func openTestRegistry(t *testing.T) (*Registry, *cache.Store) {
	t.Helper()
	s, err := cache.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewRegistry(s), s
}

func TestAddFirstAccountBecomesActive(t *testing.T) {
	r, _ := openTestRegistry(t)

	acct := r.AddOrUpdate("t1", Profile{Login: "alice", DisplayName: "Alice"})
	assert.Equal(t, "alice", acct.ID)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "alice", active.ID)
	assert.Equal(t, "t1", active.Token)
}

func TestAddSecondAccountKeepsActive(t *testing.T) {
	r, _ := openTestRegistry(t)

	r.AddOrUpdate("t1", Profile{Login: "alice"})
	r.AddOrUpdate("t2", Profile{Login: "bob"})

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "alice", active.ID)
	assert.Len(t, r.List(), 2)
}

func TestUpsertRefreshesTokenPreservesAddedAt(t *testing.T) {
	r, _ := openTestRegistry(t)

	base := time.Now()
	r.now = func() time.Time { return base }
	first := r.AddOrUpdate("t1", Profile{Login: "alice"})

	r.now = func() time.Time { return base.Add(time.Hour) }
	second := r.AddOrUpdate("t2", Profile{Login: "alice", DisplayName: "Alice"})

	assert.Len(t, r.List(), 1)
	assert.Equal(t, "t2", second.Token)
	assert.Equal(t, "Alice", second.Profile.DisplayName)
	assert.Equal(t, first.AddedAt, second.AddedAt, "re-adding a login must preserve AddedAt")
}

func TestActiveFallsBackToFirst(t *testing.T) {
	r, s := openTestRegistry(t)

	r.AddOrUpdate("t1", Profile{Login: "alice"})
	r.AddOrUpdate("t2", Profile{Login: "bob"})
	s.Delete(activeAccountKey)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "alice", active.ID)
}

func TestSetActiveUnknownIsNoop(t *testing.T) {
	r, _ := openTestRegistry(t)

	r.AddOrUpdate("t1", Profile{Login: "alice"})

	assert.False(t, r.SetActive("mallory"))

	active, _ := r.Active()
	assert.Equal(t, "alice", active.ID)
}

func TestRemoveReassignsActiveAndClearsCache(t *testing.T) {
	r, s := openTestRegistry(t)

	r.AddOrUpdate("t1", Profile{Login: "alice"})
	r.AddOrUpdate("t2", Profile{Login: "bob"})
	require.True(t, r.SetActive("alice"))

	aliceCache := cache.NewCache(s, "alice")
	bobCache := cache.NewCache(s, "bob")
	cache.SetCached(aliceCache, cache.ReposKey(), []string{"a/one"})
	cache.SetCached(bobCache, cache.ReposKey(), []string{"b/one"})

	r.Remove("alice")

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "bob", active.ID)
	assert.Len(t, r.List(), 1)

	_, ok = cache.GetCached[[]string](aliceCache, cache.ReposKey())
	assert.False(t, ok, "alice's cache entries must be gone")
	_, ok = cache.GetCached[[]string](bobCache, cache.ReposKey())
	assert.True(t, ok, "bob's cache entries must survive")
}

func TestRemoveLastAccountClearsPointer(t *testing.T) {
	r, _ := openTestRegistry(t)

	r.AddOrUpdate("t1", Profile{Login: "alice"})
	r.Remove("alice")

	_, ok := r.Active()
	assert.False(t, ok)
	assert.Empty(t, r.List())
}

func TestMigrateLegacySingleAccount(t *testing.T) {
	r, s := openTestRegistry(t)

	cache.Set(s, legacyTokenKey, "t1")
	cache.Set(s, legacyUserKey, Profile{Login: "alice", DisplayName: "Alice"})

	r.MigrateLegacy()

	accounts := r.List()
	require.Len(t, accounts, 1)
	assert.Equal(t, "alice", accounts[0].ID)
	assert.Equal(t, "t1", accounts[0].Token)

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "alice", active.ID)

	_, ok = cache.Get[string](s, legacyTokenKey)
	assert.False(t, ok, "legacy token slot must be emptied")
	_, ok = cache.Get[Profile](s, legacyUserKey)
	assert.False(t, ok, "legacy user slot must be emptied")

	// Running it again must not duplicate anything.
	r.MigrateLegacy()
	assert.Len(t, r.List(), 1)
}

func TestMigrateLegacyNoopWhenRegistryPopulated(t *testing.T) {
	r, s := openTestRegistry(t)

	r.AddOrUpdate("t0", Profile{Login: "bob"})
	cache.Set(s, legacyTokenKey, "t1")
	cache.Set(s, legacyUserKey, Profile{Login: "alice"})

	r.MigrateLegacy()

	assert.Len(t, r.List(), 1)
	assert.Equal(t, "bob", r.List()[0].ID)
}
