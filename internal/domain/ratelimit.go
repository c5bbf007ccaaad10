package domain

import (
	"context"
	"fmt"
	"time"
)

type RateLimitDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error)
}

// RateLimitKey scopes a limiter bucket to one client on one route.
func RateLimitKey(routeID, client string) string {
	if client == "" {
		client = "unknown"
	}
	return fmt.Sprintf("realz:client:%s:route:%s", client, routeID)
}
