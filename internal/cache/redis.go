package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces keys written by Redis.
const DefaultPrefix = "phonsim:"

// Redis wraps a Redis client to share scoring results between runs and hosts.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache. A zero ttl keeps entries forever.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}

	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	e, err := decodeEntry(val)
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	return e, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, e Entry) error {
	if err := r.client.Set(ctx, r.prefix+key, encodeEntry(e), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func encodeEntry(e Entry) string {
	return strconv.FormatFloat(e.Distance, 'g', -1, 64) + "," + strconv.FormatFloat(e.Similarity, 'g', -1, 64)
}

func decodeEntry(s string) (Entry, error) {
	dist, sim, ok := strings.Cut(s, ",")
	if !ok {
		return Entry{}, fmt.Errorf("malformed cache value %q", s)
	}

	d, err := strconv.ParseFloat(dist, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed cache distance %q: %w", dist, err)
	}

	m, err := strconv.ParseFloat(sim, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed cache similarity %q: %w", sim, err)
	}

	return Entry{Distance: d, Similarity: m}, nil
}
