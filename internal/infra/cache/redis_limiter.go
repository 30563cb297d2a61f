package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

const keyPrefix = "crm:ratelimit:"

// counterStore é o subconjunto de *redis.Client que o limiter usa.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisRateLimiter é janela fixa compartilhada entre instâncias.
// Se o Redis cair, libera a requisição e loga.
type RedisRateLimiter struct {
	store  counterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisClient(addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("REDIS_ADDR não configurado")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}

	logger.WithField("addr", addr).Info("✅ Redis conectado")
	return client, nil
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return newRedisRateLimiter(client, limit, window)
}

func newRedisRateLimiter(store counterStore, limit int, window time.Duration) *RedisRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{store: store, limit: limit, window: window, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	count, err := l.store.Incr(ctx, redisKey).Result()
	if err != nil {
		logger.WithError(err).WithField("key", key).Warn("⚠️ rate limit indisponível, liberando")
		return true
	}

	if count == 1 {
		if err := l.store.Expire(ctx, redisKey, l.window).Err(); err != nil {
			logger.WithError(err).WithField("key", key).Warn("⚠️ falha ao definir TTL do rate limit")
		}
	}

	return count <= int64(l.limit)
}

func (l *RedisRateLimiter) PingContext(ctx context.Context) error {
	return l.store.Ping(ctx).Err()
}
