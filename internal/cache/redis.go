package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/backend"
)

const redisKeyPrefix = "fedsearch:query_cache:"

// Redis is a shared Store backed by Redis, used by the gateway so that
// replicas see one query cache. Expiry is per-key TTL; capacity is left
// to the server's maxmemory policy, so MaxSize reports 0.
type Redis struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Compile-time check: Redis implements Store.
var _ Store = (*Redis)(nil)

// RedisConfig holds connection parameters for the shared cache tier.
type RedisConfig struct {
	Addrs    []string
	Password string
	TTL      time.Duration
}

// NewRedis creates a Redis-backed query cache.
func NewRedis(cfg RedisConfig, logger *zap.Logger) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}

	return &Redis{client: client, ttl: ttl, logger: logger}, nil
}

// Close shuts down the client.
func (r *Redis) Close() {
	r.client.Close()
}

// Ping checks cache tier reachability.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Do(ctx, r.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns the cached response for key. Any failure degrades to a miss.
func (r *Redis) Get(ctx context.Context, key string) (backend.Response, bool) {
	cmd := r.client.B().Get().Key(redisKeyPrefix + key).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			r.logger.Warn("failed to read cached query", zap.Error(err))
		}
		return backend.Response{}, false
	}

	var resp backend.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		r.logger.Warn("failed to parse cached query", zap.Error(err))
		return backend.Response{}, false
	}
	return resp, true
}

// Put stores resp under key with the configured TTL.
func (r *Redis) Put(ctx context.Context, key string, resp backend.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		r.logger.Warn("failed to encode query for cache", zap.Error(err))
		return
	}
	cmd := r.client.B().Set().Key(redisKeyPrefix + key).Value(string(data)).Ex(r.ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		r.logger.Warn("failed to cache query", zap.Error(err))
	}
}

// Clear deletes every cached query via SCAN + DEL.
func (r *Redis) Clear(ctx context.Context) {
	var cursor uint64
	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(redisKeyPrefix + "*").Count(256).Build()
		sc, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			r.logger.Warn("failed to scan query cache", zap.Error(err))
			return
		}
		if len(sc.Elements) > 0 {
			del := r.client.B().Del().Key(sc.Elements...).Build()
			if err := r.client.Do(ctx, del).Error(); err != nil {
				r.logger.Warn("failed to delete cached queries", zap.Error(err))
			}
		}
		cursor = sc.Cursor
		if cursor == 0 {
			return
		}
	}
}

// Stats counts cached queries by scanning the key prefix.
func (r *Redis) Stats(ctx context.Context) Stats {
	size := 0
	var cursor uint64
	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(redisKeyPrefix + "*").Count(256).Build()
		sc, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			r.logger.Warn("failed to scan query cache", zap.Error(err))
			break
		}
		size += len(sc.Elements)
		cursor = sc.Cursor
		if cursor == 0 {
			break
		}
	}
	return Stats{Size: size, MaxSize: 0, TTL: r.ttl}
}
