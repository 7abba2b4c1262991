package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [0, 65535] (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be >= 0 (got %s)", c.Server.ShutdownTimeout)
	}

	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache.backend must be memory, redis or none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0 (got %d)", c.Cache.TTL)
	}
	if strings.EqualFold(c.Cache.Backend, "redis") && strings.TrimSpace(c.Cache.RedisURL) == "" {
		return fmt.Errorf("cache.redis_url is required for the redis backend")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}
