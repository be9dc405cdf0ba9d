package cache

import (
	"context"
	"time"

	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const ReadListTTL = 5 * time.Minute

// ReadCache holds msgpack-encoded read lists per group. A nil ReadCache, or
// one without Redis, misses on every lookup and ignores writes.
type ReadCache struct {
	redis *RedisCache
}

func NewReadCache(redis *RedisCache) *ReadCache {
	return &ReadCache{redis: redis}
}

func groupReadsKey(groupID string) string {
	return "reads:group:" + groupID
}

// GetGroupReads returns the cached reads of a group and whether they were found
func (rc *ReadCache) GetGroupReads(ctx context.Context, groupID string) ([]models.Read, bool) {
	if rc == nil || rc.redis == nil {
		return nil, false
	}
	data, err := rc.redis.Get(ctx, groupReadsKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}

	var reads []models.Read
	if err := msgpack.Unmarshal(data, &reads); err != nil {
		return nil, false
	}
	if reads == nil {
		reads = []models.Read{}
	}
	return reads, true
}

func (rc *ReadCache) SetGroupReads(ctx context.Context, groupID string, reads []models.Read) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(reads)
	if err != nil {
		return err
	}
	return rc.redis.Set(ctx, groupReadsKey(groupID), data, ReadListTTL)
}

func (rc *ReadCache) InvalidateGroup(ctx context.Context, groupID string) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	return rc.redis.Delete(ctx, groupReadsKey(groupID))
}
