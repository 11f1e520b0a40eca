package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"feedsng/internal/logger"
	"feedsng/internal/model"
)

// RedisCache is a FeedCache shared between instances through Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "feedsng:"
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *RedisCache) key(id model.FeedID) string {
	return c.prefix + feedKey(id)
}

func (c *RedisCache) Get(ctx context.Context, id model.FeedID) (model.Feed, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("feed cache read failed", "module", "cache", "action", "get", "resource", "feed", "result", "failed", "feed_id", id, "error", err)
		}
		return model.Feed{}, false
	}

	var feed model.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return model.Feed{}, false
	}
	return feed, true
}

func (c *RedisCache) Set(ctx context.Context, feed model.Feed) {
	data, err := json.Marshal(feed)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(feed.ID), data, c.ttl).Err(); err != nil {
		logger.Warn("feed cache write failed", "module", "cache", "action", "set", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, id model.FeedID) {
	c.client.Del(ctx, c.key(id))
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ FeedCache = (*RedisCache)(nil)
