package shared

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"comanda/shared/cache"
	"comanda/shared/constant"
	"comanda/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// ParseID reads a numeric path id. Anything that is not a positive integer is a bad request.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, failure.BadRequestFromString("id must be a positive integer")
	}

	return id, nil
}

// ActorID returns the authenticated staff id carried by ctx, or the guest marker.
func ActorID(ctx context.Context) string {
	if staffID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && staffID != "" {
		return staffID
	}

	return constant.ContextGuest
}

// BuildCacheKey joins prefix and parts with ":" so related keys share a prefix
// that InvalidateCaches can clear in one scan.
func BuildCacheKey(prefix string, parts ...any) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)

	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}

	return strings.Join(segments, cacheKeySeparator)
}

// InvalidateCaches removes every key starting with prefix. Failures are logged
// only: a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
