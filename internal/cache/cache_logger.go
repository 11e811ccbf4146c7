package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging failures instead
// of propagating them; a stale cache entry must never fail a write.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateLeaderboardCache drops every cached leaderboard view of a course
// after a new score is recorded.
func InvalidateLeaderboardCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeInvalidatePattern(ctx, cm.Leaderboard, fmt.Sprintf("course:%d:*", courseID))
}
