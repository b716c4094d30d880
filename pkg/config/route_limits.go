package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// RouteLimit is a per-route-prefix rate limit override.
type RouteLimit struct {
	Window      string `mapstructure:"window"`
	MaxRequests int    `mapstructure:"max_requests"`
}

// DecodeRouteLimits decodes the free-form routes map into typed overrides
// and validates them.
func (c *RateLimitConfig) DecodeRouteLimits() (map[string]RouteLimit, error) {
	if len(c.Routes) == 0 {
		return nil, nil
	}

	limits := make(map[string]RouteLimit, len(c.Routes))
	for prefix, raw := range c.Routes {
		var limit RouteLimit
		if err := mapstructure.Decode(raw, &limit); err != nil {
			return nil, fmt.Errorf("invalid rate limit override for %s: %w", prefix, err)
		}

		if limit.MaxRequests <= 0 {
			return nil, fmt.Errorf("rate limit override for %s requires positive max_requests", prefix)
		}
		if _, err := time.ParseDuration(limit.Window); err != nil {
			return nil, fmt.Errorf("invalid window for %s: %w", prefix, err)
		}

		limits[prefix] = limit
	}

	return limits, nil
}
