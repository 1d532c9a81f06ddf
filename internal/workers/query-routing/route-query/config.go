// internal/workers/query-routing/route-query/config.go
package routequery

import "time"

type Config struct {
	CacheTTL       time.Duration
	CachePrefix    string
	PersistQueries bool
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL:    time.Hour,
		CachePrefix: "routed:query:",
		Timeout:     10 * time.Second,
	}
}
