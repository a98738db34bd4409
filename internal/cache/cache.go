package cache

import "time"

const namespacePrefix = "cache:"

// Cache is a Store view scoped to one account's namespace. All cached
// GitHub resources go through a Cache so that entries written while one
// account is active are invisible to every other account.
type Cache struct {
	store  *Store
	prefix string
}

// NewCache returns a view of s scoped to the given account id. An empty
// id yields the anonymous namespace used before any account exists.
func NewCache(s *Store, accountID string) *Cache {
	return &Cache{store: s, prefix: namespacePrefix + accountID + ":"}
}

func (c *Cache) key(logical string) string {
	return c.prefix + logical
}

// GetCached returns the cached value for the logical key in this
// namespace. Same miss semantics as Store.Get.
func GetCached[T any](c *Cache, logical string) (T, bool) {
	return Get[T](c.store, c.key(logical))
}

// SetCached stores the value under the logical key in this namespace.
func SetCached[T any](c *Cache, logical string, value T) {
	Set(c.store, c.key(logical), value)
}

// IsFresh reports freshness of the logical key in this namespace.
func (c *Cache) IsFresh(logical string, ttl time.Duration) bool {
	return c.store.IsFresh(c.key(logical), ttl)
}

// Clear removes a single logical entry from this namespace.
func (c *Cache) Clear(logical string) {
	c.store.Delete(c.key(logical))
}

// ClearAll removes every entry in this namespace, leaving other
// accounts' entries and non-cache state untouched.
func (c *Cache) ClearAll() {
	c.store.DeletePrefix(c.prefix)
}

// ClearAccount removes every cache entry namespaced to the given account
// id. Used when an account is removed from the registry.
func ClearAccount(s *Store, accountID string) {
	s.DeletePrefix(namespacePrefix + accountID + ":")
}
