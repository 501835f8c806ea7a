package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
)

// KeyByIP buckets requests per client address.
func KeyByIP(c echo.Context) string {
	return "rl:ip:" + c.RealIP()
}

// KeyByOwnerProject buckets per (user, project), the granularity the
// invoice-creation limiter wants. Reads the header directly so it works
// regardless of middleware ordering.
func KeyByOwnerProject(c echo.Context) string {
	return "rl:billing:" + c.Request().Header.Get(HeaderOwnerID) + ":" + c.Param("projectID")
}

// RateLimiter is a sliding-window limiter backed by a redis sorted set:
// prune members older than the window, count, admit or reject, record.
// With no redis client it admits everything, and a redis outage also
// fails open; limiting is a convenience guard, not a correctness one.
func RateLimiter(client rueidis.Client, limit int, window time.Duration, keyFn func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := keyFn(c)
			now := time.Now()
			cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

			if err := client.Do(
				ctx,
				client.B().Zremrangebyscore().Key(key).Min("-inf").Max(cutoff).Build(),
			).Error(); err != nil {
				log.Printf("rate limiter prune failed for %s: %v", key, err)
				return next(c)
			}

			count, err := client.Do(
				ctx,
				client.B().Zcard().Key(key).Build(),
			).AsInt64()
			if err != nil {
				log.Printf("rate limiter count failed for %s: %v", key, err)
				return next(c)
			}

			if count >= int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			if err := client.Do(
				ctx,
				client.B().Zadd().Key(key).ScoreMember().
					ScoreMember(float64(now.UnixNano()), uuid.NewString()).Build(),
			).Error(); err != nil {
				log.Printf("rate limiter record failed for %s: %v", key, err)
			}

			if err := client.Do(
				ctx,
				client.B().Expire().Key(key).Seconds(int64(window/time.Second)+1).Build(),
			).Error(); err != nil {
				log.Printf("rate limiter expire failed for %s: %v", key, err)
			}

			return next(c)
		}
	}
}
