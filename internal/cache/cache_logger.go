package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// InvalidateCatalogCache drops every cached topic and course. Called at startup
// so catalog rows edited directly in the database show up after a deploy.
func InvalidateCatalogCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Catalog, "*")
}
