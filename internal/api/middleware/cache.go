package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ppk205/comicreader/internal/api/metrics"
)

// CacheConfig tunes the Redis response cache applied to proxied GET routes.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// bodyRecorder duplicates the response body while it streams to the client.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// ResponseCache serves successful GET responses from Redis. Only 200s are
// cached; everything else passes through untouched. Cache failures degrade to
// a miss, never to an error.
func ResponseCache(cfg CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "comicreader:cache"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			sum := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
			key := fmt.Sprintf("%s:%x", prefix, sum)

			if data, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(data, &cached) == nil {
					metrics.CacheTotal.WithLabelValues("hit").Inc()
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}
			metrics.CacheTotal.WithLabelValues("miss").Inc()
			c.Response().Header().Set("X-Cache", "MISS")

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK {
				payload, err := json.Marshal(cachedResponse{
					Status:      rec.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rec.buf.Bytes(),
				})
				if err == nil {
					_ = rdb.Set(ctx, key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}
