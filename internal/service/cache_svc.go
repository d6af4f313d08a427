package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Documents churn with votes and views; the leaderboard only
// needs to be roughly fresh.
const (
	DocumentCacheTTL    = 5 * time.Minute
	LeaderboardCacheTTL = 15 * time.Minute
)

const leaderboardKey = "leaderboard"

// CacheService provides a Redis cache-aside layer for document lookups and
// the reputation leaderboard.
type CacheService struct {
	rdb    *redis.Client
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// SetMetrics attaches hit/miss counters. Optional; without them lookups are
// simply not instrumented.
func (c *CacheService) SetMetrics(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

func (c *CacheService) recordLookup(hit bool) {
	if hit && c.hits != nil {
		c.hits.Inc()
	}
	if !hit && c.misses != nil {
		c.misses.Inc()
	}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetDocument retrieves a cached document. Returns nil if not cached or the
// cache is disabled.
func (c *CacheService) GetDocument(ctx context.Context, documentID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, documentKey(documentID)).Bytes()
	if err == redis.Nil {
		c.recordLookup(false)
		return nil, nil
	}
	if err == nil {
		c.recordLookup(true)
	}
	return data, err
}

// SetDocument stores a document in cache.
func (c *CacheService) SetDocument(ctx context.Context, documentID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, documentKey(documentID), b, DocumentCacheTTL).Err()
}

// InvalidateDocument removes a document from cache (called after votes,
// views, edits, and deletion).
func (c *CacheService) InvalidateDocument(ctx context.Context, documentID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, documentKey(documentID)).Err()
}

// GetLeaderboard retrieves the cached leaderboard. Returns nil if not cached.
func (c *CacheService) GetLeaderboard(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		c.recordLookup(false)
		return nil, nil
	}
	if err == nil {
		c.recordLookup(true)
	}
	return data, err
}

// SetLeaderboard stores the leaderboard in cache.
func (c *CacheService) SetLeaderboard(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, leaderboardKey, b, LeaderboardCacheTTL).Err()
}

// InvalidateLeaderboard drops the cached leaderboard. Reputation moves on
// almost every engine operation, so this is called from the notification
// worker rather than inline on every mutation.
func (c *CacheService) InvalidateLeaderboard(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, leaderboardKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func documentKey(documentID string) string {
	return fmt.Sprintf("document:%s", documentID)
}
