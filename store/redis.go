package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

// Redis stores keys in a redis database, behind a circuit breaker so that an
// unreachable server fails fast instead of stalling every mutation.
type Redis struct {
	client *redis.Client
	prefix string
	cb     *gobreaker.CircuitBreaker
}

// NewRedis wraps client. Keys are stored under prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	st := gobreaker.Settings{Name: "redis-snapshot"}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	// a missing key or a full server is an answer, not an outage.
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrQuotaExceeded)
	}
	return &Redis{client: client, prefix: prefix, cb: gobreaker.NewCircuitBreaker(st)}
}

// DialRedis connects to a redis server.
func DialRedis(addr string, db int, prefix string) *Redis {
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr, DB: db}), prefix)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.cb.Execute(func() (any, error) {
		b, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return b, err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v.([]byte), nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.cb.Execute(func() (any, error) {
		err := r.client.Set(ctx, r.prefix+key, value, 0).Err()
		if err != nil && strings.HasPrefix(err.Error(), "OOM") {
			return nil, fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
