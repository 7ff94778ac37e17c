package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/internal/metrics"
)

const searchCachePrefix = "search:"

// SearchCacheService cache 2 tầng cho kết quả search:
// L1 LRU in-process, L2 Redis (chia sẻ giữa các instance).
type SearchCacheService struct {
	l1     *lru.Cache[string, *responses.SearchResponse]
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSearchCacheService tạo mới search cache. rdb có thể nil khi chạy
// không có Redis, lúc đó chỉ dùng L1.
func NewSearchCacheService(l1Size int, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) (*SearchCacheService, error) {
	if l1Size <= 0 {
		l1Size = 1024
	}
	l1, err := lru.New[string, *responses.SearchResponse](l1Size)
	if err != nil {
		return nil, err
	}
	return &SearchCacheService{l1: l1, rdb: rdb, ttl: ttl, logger: logger}, nil
}

// CacheKey fingerprint request đã normalize thành key ổn định.
// Hai request giống hệt nhau về mặt JSON cho cùng một key.
func CacheKey(req interface{}) string {
	raw, err := json.Marshal(req)
	if err != nil {
		return searchCachePrefix + "invalid"
	}
	sum := sha256.Sum256(raw)
	return searchCachePrefix + hex.EncodeToString(sum[:])
}

// Get lấy kết quả từ cache (L1 trước, Redis sau)
func (scs *SearchCacheService) Get(ctx context.Context, key string) (*responses.SearchResponse, bool, error) {
	if resp, ok := scs.l1.Get(key); ok {
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		scs.logger.Debug("L1 cache hit", zap.String("key", key))
		return resp, true, nil
	}

	if scs.rdb != nil {
		raw, err := scs.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var resp responses.SearchResponse
			if err := json.Unmarshal(raw, &resp); err == nil {
				// Đồng bộ lại lên L1
				scs.l1.Add(key, &resp)
				metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
				scs.logger.Debug("L2 cache hit (Redis)", zap.String("key", key))
				return &resp, true, nil
			}
			scs.logger.Warn("Lỗi decode cache entry, bỏ qua", zap.String("key", key), zap.Error(err))
		} else if err != redis.Nil {
			scs.logger.Warn("Lỗi Redis cache, fallback engine", zap.Error(err))
		}
	}

	metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
	return nil, false, nil
}

// Set lưu kết quả vào cả 2 tầng. Lỗi Redis chỉ log, không fail request.
func (scs *SearchCacheService) Set(ctx context.Context, key string, resp *responses.SearchResponse) error {
	scs.l1.Add(key, resp)

	if scs.rdb != nil {
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		if err := scs.rdb.Set(ctx, key, raw, scs.ttl).Err(); err != nil {
			scs.logger.Warn("Lỗi lưu vào Redis", zap.Error(err), zap.String("key", key))
		}
	}
	return nil
}

// Invalidate xóa toàn bộ cache search, gọi sau khi reload catalog.
func (scs *SearchCacheService) Invalidate(ctx context.Context) error {
	scs.l1.Purge()

	if scs.rdb == nil {
		return nil
	}
	iter := scs.rdb.Scan(ctx, 0, searchCachePrefix+"*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 200 {
			if err := scs.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := scs.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	scs.logger.Info("Đã invalidate search cache")
	return nil
}
