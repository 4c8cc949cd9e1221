package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "streamnova:"
	indexKey  = keyPrefix + "pages"

	redisTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each page as its own key with a TTL. A sorted set indexes
// the keys by expiry time so Len can ignore expired pages and Put can trim the
// oldest ones when the cache grows past its size.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	size    int
	onEvict func(key string)
	logger  zerolog.Logger
}

func newRedisCache(opts Options) (PageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddress,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client:  client,
		ttl:     opts.TTL,
		size:    opts.Size,
		onEvict: opts.onEvict,
		logger:  opts.Logger,
	}, nil
}

func (r *redisCache) Get(ctx context.Context, url string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	body, err := r.client.Get(ctx, keyPrefix+PageKey(url)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error().Err(err).Str("url", url).Msg("Page cache get failed")
		}
		return nil, false
	}
	return body, true
}

func (r *redisCache) Put(ctx context.Context, url string, body []byte) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	key := keyPrefix + PageKey(url)
	now := time.Now()
	expiry := float64(now.Add(r.ttl).UnixMilli())

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, body, r.ttl)
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: expiry, Member: key})
		pipe.ZRemRangeByScore(ctx, indexKey, "-inf", strconv.FormatInt(now.UnixMilli(), 10))
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("url", url).Msg("Page cache put failed")
		return
	}

	r.trim(ctx)
}

// trim drops the pages closest to expiry until the index fits the size.
func (r *redisCache) trim(ctx context.Context) {
	count, err := r.client.ZCard(ctx, indexKey).Result()
	if err != nil || count <= int64(r.size) {
		return
	}

	oldest, err := r.client.ZPopMin(ctx, indexKey, count-int64(r.size)).Result()
	if err != nil {
		r.logger.Error().Err(err).Msg("Page cache trim failed")
		return
	}

	keys := make([]string, 0, len(oldest))
	for _, z := range oldest {
		if key, ok := z.Member.(string); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error().Err(err).Msg("Page cache trim failed")
		return
	}
	if r.onEvict != nil {
		for _, key := range keys {
			r.onEvict(key)
		}
	}
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	n, err := r.client.ZCount(ctx, indexKey, "("+now, "+inf").Result()
	if err != nil {
		r.logger.Error().Err(err).Msg("Page cache len failed")
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
