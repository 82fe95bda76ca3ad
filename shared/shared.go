package shared

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"stagebook/shared/cache"
	"stagebook/shared/constant"
	"stagebook/shared/dto"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// ActorFromContext returns the authenticated user id placed in the context by the auth middleware.
func ActorFromContext(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a stable key from pagination and filter arguments.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	argParts := make([]string, 0, len(args))
	for _, key := range slices.Sorted(maps.Keys(args)) {
		argParts = append(argParts, fmt.Sprintf("%s=%v", key, args[key]))
	}

	return BuildCacheKey(prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		strings.Join(argParts, "&"),
	)
}

func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func Pointer[T any](value T) *T {
	return &value
}
