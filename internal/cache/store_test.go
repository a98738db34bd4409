package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := payload{Name: "alpha", Count: 3}
	Set(s, "k1", want)

	got, ok := Get[payload](s, "k1")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStoreMiss(t *testing.T) {
	s := openTestStore(t)

	got, ok := Get[payload](s, "absent")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestStoreOverwrite(t *testing.T) {
	s := openTestStore(t)

	Set(s, "k1", payload{Name: "old"})
	Set(s, "k1", payload{Name: "new"})

	got, ok := Get[payload](s, "k1")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
}

func TestStoreCorruptEntryIsMiss(t *testing.T) {
	s := openTestStore(t)

	s.setRaw("bad", []byte("{not json"))

	got, ok := Get[payload](s, "bad")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestStoreFreshness(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	s.now = func() time.Time { return base }

	Set(s, "k1", payload{Name: "x"})

	assert.True(t, s.IsFresh("k1", time.Nanosecond))
	assert.True(t, s.IsFresh("k1", DefaultTTL))
	assert.False(t, s.IsFresh("absent", DefaultTTL))

	s.now = func() time.Time { return base.Add(DefaultTTL + time.Second) }
	assert.False(t, s.IsFresh("k1", DefaultTTL))
	assert.True(t, s.IsFresh("k1", time.Hour))
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)

	Set(s, "k1", payload{Name: "x"})
	s.Delete("k1")

	_, ok := Get[payload](s, "k1")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	s.Delete("never-existed")
}

func TestStoreDeletePrefix(t *testing.T) {
	s := openTestStore(t)

	Set(s, "cache:alice:repos", payload{Name: "a"})
	Set(s, "cache:alice:issues", payload{Name: "b"})
	Set(s, "cache:bob:repos", payload{Name: "c"})
	Set(s, "accounts", payload{Name: "d"})

	s.DeletePrefix("cache:alice:")

	_, ok := Get[payload](s, "cache:alice:repos")
	assert.False(t, ok)
	_, ok = Get[payload](s, "cache:alice:issues")
	assert.False(t, ok)
	_, ok = Get[payload](s, "cache:bob:repos")
	assert.True(t, ok)
	_, ok = Get[payload](s, "accounts")
	assert.True(t, ok)
}

func TestCacheAccountIsolation(t *testing.T) {
	s := openTestStore(t)

	alice := NewCache(s, "alice")
	bob := NewCache(s, "bob")

	SetCached(alice, ReposKey(), payload{Name: "alice-repos"})

	_, ok := GetCached[payload](bob, ReposKey())
	assert.False(t, ok, "bob must not see alice's entries")

	got, ok := GetCached[payload](alice, ReposKey())
	require.True(t, ok)
	assert.Equal(t, "alice-repos", got.Name)
}

func TestCacheClearAll(t *testing.T) {
	s := openTestStore(t)

	alice := NewCache(s, "alice")
	bob := NewCache(s, "bob")
	SetCached(alice, ReposKey(), payload{Name: "a"})
	SetCached(bob, ReposKey(), payload{Name: "b"})
	Set(s, "accounts", payload{Name: "registry"})

	alice.ClearAll()

	_, ok := GetCached[payload](alice, ReposKey())
	assert.False(t, ok)
	_, ok = GetCached[payload](bob, ReposKey())
	assert.True(t, ok)
	_, ok = Get[payload](s, "accounts")
	assert.True(t, ok, "non-cache state must survive ClearAll")
}
