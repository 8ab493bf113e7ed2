package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/glowdesk/salon-platform/internal/domain/scope"
)

const locationKeyPrefix = "scope:locations:"

// CachedLocationLister puts a redis set-of-ids cache in front of the
// database lookup that scope resolution performs on every request.
// Redis failures degrade to the underlying lister; location membership
// changes rarely, so a short TTL plus explicit invalidation on location
// writes is enough.
type CachedLocationLister struct {
	rdb  *redis.Client
	next scope.LocationLister
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedLocationLister(
	rdb *redis.Client,
	next scope.LocationLister,
	ttl time.Duration,
	log *zap.Logger,
) *CachedLocationLister {
	return &CachedLocationLister{
		rdb:  rdb,
		next: next,
		ttl:  ttl,
		log:  log,
	}
}

func (l *CachedLocationLister) ListLocationIDs(
	ctx context.Context,
	businessID uint,
) ([]uint, error) {

	key := locationKey(businessID)

	val, err := l.rdb.Get(ctx, key).Result()
	if err == nil {
		if ids, ok := decodeIDs(val); ok {
			return ids, nil
		}
	} else if err != redis.Nil {
		l.log.Warn("location cache read failed", zap.Error(err))
	}

	ids, err := l.next.ListLocationIDs(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if err := l.rdb.Set(ctx, key, encodeIDs(ids), l.ttl).Err(); err != nil {
		l.log.Warn("location cache write failed", zap.Error(err))
	}

	return ids, nil
}

// Invalidate drops a tenant's cached set; called on location writes.
func (l *CachedLocationLister) Invalidate(ctx context.Context, businessID uint) {
	if err := l.rdb.Del(ctx, locationKey(businessID)).Err(); err != nil {
		l.log.Warn("location cache invalidation failed", zap.Error(err))
	}
}

func locationKey(businessID uint) string {
	return fmt.Sprintf("%s%d", locationKeyPrefix, businessID)
}

func encodeIDs(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}

func decodeIDs(raw string) ([]uint, bool) {
	if raw == "" {
		return []uint{}, true
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(n))
	}
	return ids, true
}

var _ scope.LocationLister = (*CachedLocationLister)(nil)
