package commands

import (
	"log/slog"
	"time"

	"github.com/friuns/vibehub/internal/cache"
)

// FetchWithCache implements the stale-while-revalidate read every
// listing command uses. The cached value is served without a network
// round trip when it is fresh and the caller allows it; otherwise fetch
// runs and overwrites the cache on success. A failed fetch falls back
// to the stale cached value when one exists, so screens degrade to
// stale data instead of an error.
func FetchWithCache[T any](c *cache.Cache, key string, ttl time.Duration, preferCache bool, fetch func() (T, error)) (T, bool, error) {
	cached, haveCached := cache.GetCached[T](c, key)

	if preferCache && haveCached && c.IsFresh(key, ttl) {
		return cached, true, nil
	}

	fresh, err := fetch()
	if err != nil {
		if haveCached {
			slog.Warn("failed to update, serving cached data", "key", key, "error", err)
			return cached, true, nil
		}
		var zero T
		return zero, false, err
	}

	cache.SetCached(c, key, fresh)
	return fresh, false, nil
}
