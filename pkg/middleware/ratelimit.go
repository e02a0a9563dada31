package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/httpapi"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	// Defaults to one second.
	Period       time.Duration
	Store        limiter.Store
	RealIPHeader string
	// Prefix separates counters of limiters sharing a store.
	Prefix string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "portal_limiter",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create redis limiter store")
	}
	return store, nil
}

// NewStore returns the limiter store selected by RATE_LIMIT_STORAGE.
func NewStore(opts configuration.RateLimitOptions) (limiter.Store, error) {
	if opts.Storage == "redis" {
		return NewRedisStore(opts.RedisURL)
	}
	return NewMemoryStore(), nil
}

// RateLimit limits requests per client IP. A non-positive RequestsPerPeriod disables it.
func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	if cfg.RequestsPerPeriod <= 0 || cfg.Store == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	period := cfg.Period
	if period <= 0 {
		period = time.Second
	}
	var opts []limiter.Option
	if cfg.RealIPHeader != "" {
		opts = append(opts, limiter.WithClientIPHeader(cfg.RealIPHeader))
	}
	store := cfg.Store
	if cfg.Prefix != "" {
		store = prefixedStore{Store: store, prefix: cfg.Prefix}
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(cfg.RequestsPerPeriod),
	}, opts...)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
			_ = httpapi.WriteError(w, http.StatusTooManyRequests, httpapi.CodeRateLimited, "too many requests", nil)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			composables.UseLogger(r.Context()).WithError(err).Error("rate limiter failed")
			_ = httpapi.WriteInternal(w)
		}),
	)
	return mw.Handler
}

type prefixedStore struct {
	limiter.Store
	prefix string
}

func (s prefixedStore) Get(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return s.Store.Get(ctx, s.prefix+":"+key, rate)
}

func (s prefixedStore) Peek(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return s.Store.Peek(ctx, s.prefix+":"+key, rate)
}

func (s prefixedStore) Reset(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return s.Store.Reset(ctx, s.prefix+":"+key, rate)
}

func (s prefixedStore) Increment(ctx context.Context, key string, count int64, rate limiter.Rate) (limiter.Context, error) {
	return s.Store.Increment(ctx, s.prefix+":"+key, count, rate)
}
