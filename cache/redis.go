package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"doccompare/types"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 5 * time.Second

// Config configures the Redis connection and key layout
type Config struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Prefix   string // key prefix, default "doccompare:result:"
	TTL      time.Duration
}

// RedisCache stores comparison results keyed by a digest of their inputs
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates the cache and verifies connectivity
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return newRedisCache(client, cfg), nil
}

func newRedisCache(client *redis.Client, cfg Config) *RedisCache {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "doccompare:result:"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

// Close closes the underlying Redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get returns the cached result for key. A miss is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, key string) (*types.ComparisonResult, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var res types.ComparisonResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return &res, true, nil
}

// Set stores res under key and refreshes its TTL
func (c *RedisCache) Set(ctx context.Context, key string, res *types.ComparisonResult) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Key derives the cache key of a comparison from the engine options
// fingerprint and both texts. Texts are length-prefixed so that moving a
// boundary between them changes the key.
func Key(fingerprint, text1, text2 string) string {
	h := sha256.New()
	var n [8]byte
	for _, part := range []string{fingerprint, text1, text2} {
		binary.BigEndian.PutUint64(n[:], uint64(len(part)))
		h.Write(n[:])
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
