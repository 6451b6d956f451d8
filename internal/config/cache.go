package config

import (
	"time"
)

// CacheConfig defines settings for the per-user note listing cache.
// When Enabled is false or no Redis client is configured, caching is
// disabled and every listing goes to the database.  TTL bounds how
// stale a cached listing may get if an invalidation is ever missed;
// Prefix namespaces the keys so several deployments can share one
// Redis instance.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "5m")),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
