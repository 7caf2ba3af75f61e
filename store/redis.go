package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/K1ssSh0t/url-shortener/models"
)

// RedisStore persists mappings as one redis hash per short code, keyed
// "mapping:<code>" with fields url, clicks and created_at.
type RedisStore struct {
	client *redis.Client
}

// NewRedis builds a RedisStore talking to the redis server at addr.
func NewRedis(addr string) *RedisStore {
	return newRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
}

func newRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func mappingKey(shortCode string) string {
	return "mapping:" + shortCode
}

func (s *RedisStore) Create(ctx context.Context, m *models.Mapping) error {
	return s.client.HSet(ctx, mappingKey(m.ShortCode),
		"url", m.URL,
		"clicks", m.Clicks,
		"created_at", m.CreatedAt.Format(time.RFC3339Nano),
	).Err()
}

func (s *RedisStore) Find(ctx context.Context, shortCode string) (*models.Mapping, error) {
	fields, err := s.client.HGetAll(ctx, mappingKey(shortCode)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	clicks, err := strconv.ParseInt(fields["clicks"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("store: corrupt clicks for %s: %w", shortCode, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("store: corrupt created_at for %s: %w", shortCode, err)
	}
	return &models.Mapping{
		ShortCode: shortCode,
		URL:       fields["url"],
		Clicks:    clicks,
		CreatedAt: createdAt,
	}, nil
}

func (s *RedisStore) IncrementClicks(ctx context.Context, shortCode string) error {
	// Guarded by Exists so a deleted mapping is not resurrected as a
	// stray hash holding only a click count.
	exists, err := s.client.Exists(ctx, mappingKey(shortCode)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	return s.client.HIncrBy(ctx, mappingKey(shortCode), "clicks", 1).Err()
}

func (s *RedisStore) UpdateURL(ctx context.Context, shortCode, url string) error {
	exists, err := s.client.Exists(ctx, mappingKey(shortCode)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	return s.client.HSet(ctx, mappingKey(shortCode), "url", url).Err()
}

func (s *RedisStore) Delete(ctx context.Context, shortCode string) error {
	deleted, err := s.client.Del(ctx, mappingKey(shortCode)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
