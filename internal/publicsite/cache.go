package publicsite

import (
	"context"
	"time"

	"github.com/sharath018/pacs-portal-backend/utils"
)

// PageCache is the store for assembled pages. found=false is a plain
// miss; err means the store itself failed.
type PageCache interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisPageCache struct{}

// NewPageCache returns the Redis-backed page cache
func NewPageCache() PageCache {
	return redisPageCache{}
}

func (redisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := utils.CacheGet(ctx, key)
	if err != nil {
		if utils.IsCacheMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (redisPageCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return utils.CacheSet(ctx, key, payload, ttl)
}

func (redisPageCache) Delete(ctx context.Context, key string) error {
	return utils.CacheDelete(ctx, key)
}
