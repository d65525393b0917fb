package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sportsfeed/contentguard/pkg/infra/cache"
)

const keyPattern = "ratelimit:%s:%s"

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int64
	Reset     time.Time
}

//go:generate mockery --name=Limiter --dir=. --output=./mocks --filename=limiter_mock.go --case=underscore --with-expecter
type Limiter interface {
	// Allow records one hit for key unless the window is already full.
	Allow(ctx context.Context, key string) (*Decision, error)
}

type Opts struct {
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

type slidingWindowLimiter struct {
	client       cache.Client
	scope        string
	limit        int
	window       time.Duration
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

// NewSlidingWindowLimiter counts hits per key in a redis sorted set scored by
// unix time. Keys are namespaced by scope.
func NewSlidingWindowLimiter(client cache.Client, scope string, limit int, window time.Duration, opts *Opts) Limiter {
	l := &slidingWindowLimiter{
		client:       client,
		scope:        scope,
		limit:        limit,
		window:       window,
		timeProvider: time.Now,
		uuidProvider: uuid.New,
	}
	if opts != nil && opts.TimeProvider != nil {
		l.timeProvider = opts.TimeProvider
	}
	if opts != nil && opts.UuidProvider != nil {
		l.uuidProvider = opts.UuidProvider
	}
	return l
}

func (l *slidingWindowLimiter) Allow(ctx context.Context, key string) (*Decision, error) {
	redisKey := fmt.Sprintf(keyPattern, l.scope, key)
	now := l.timeProvider()
	windowStart := now.Add(-l.window).Unix()
	rdb := l.client.RedisClient()

	count, err := rdb.ZCount(ctx, redisKey,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count hits for %s: %w", redisKey, err)
	}

	decision := &Decision{
		Limit:     l.limit,
		Remaining: int64(l.limit) - count,
		Reset:     now.Add(l.window),
	}
	if count >= int64(l.limit) {
		decision.Remaining = 0
		return decision, nil
	}

	member := fmt.Sprintf("%d:%s", now.Unix(), l.uuidProvider().String())
	pipe := rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(now.Unix()),
		Member: member,
	})
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record hit for %s: %w", redisKey, err)
	}

	decision.Allowed = true
	decision.Remaining--
	return decision, nil
}
