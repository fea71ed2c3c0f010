package middleware

import (
	"net/http"

	"blood-donation-api/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "blood_donation:ratelimit"

// NewRateLimiter limits requests per client IP. rateFormatted uses the ulule
// format ("20-M"); empty disables limiting. Counters live in redis when a
// client is given so every instance shares them.
func NewRateLimiter(rateFormatted string, redisClient *redis.Client, log *logrus.Logger) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	if redisClient != nil {
		redisStore, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			log.Warnf("Failed to create redis rate limit store, using memory: %+v", err)
		} else {
			store = redisStore
		}
	}

	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warnf("Failed to check rate limit: %+v", err)
			response.InternalServerError(w, "")
		}),
	).Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
