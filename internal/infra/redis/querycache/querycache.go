package infra_redis_querycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

// Driver is the Redis query-cache backend, interchangeable with the
// Postgres one. The stored created_at keeps staleness semantics identical
// across backends; the Redis expiry only bounds memory.
type Driver struct {
	client *redis.Client
	prefix string
	expiry time.Duration
}

func New(client *redis.Client, prefix string, expiry time.Duration) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
		expiry: expiry,
	}
}

type entry struct {
	Results   []map[string]any `json:"results"`
	CreatedAt time.Time        `json:"created_at"`
}

func (d *Driver) Get(_ context.Context, key string) (usecase_session.CachedQuery, error) {
	val, err := d.client.Get(d.fullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return usecase_session.CachedQuery{}, usecase_session.ErrCacheMiss
		}
		return usecase_session.CachedQuery{}, err
	}

	var e entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return usecase_session.CachedQuery{}, err
	}

	return usecase_session.CachedQuery{
		Results:   e.Results,
		CreatedAt: e.CreatedAt,
	}, nil
}

func (d *Driver) Put(_ context.Context, key string, _ usecase_session.SearchQuery, results []map[string]any) error {
	payload, err := json.Marshal(entry{
		Results:   results,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return d.client.Set(d.fullKey(key), string(payload), d.expiry).Err()
}

func (d *Driver) fullKey(key string) string {
	if d.prefix != "" {
		return d.prefix + ":" + key
	}
	return key
}
