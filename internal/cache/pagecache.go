package cache

import (
	"time"

	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// cachedPage is the stored form of a full response.
type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache returns a middleware that caches the full response body keyed by
// the request URL for the given TTL. Only successful GET responses are
// stored. There is no write invalidation: a stale page is served until the
// TTL expires. When Redis is unavailable the middleware is a pass-through.
func PageCache(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || client == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := FeedPageKey(c.OriginalURL())

		var page cachedPage
		found, err := GetJSON(ctx, key, &page)
		if err == nil && found {
			middleware.FeedCacheHits.Inc()
			c.Set(fiber.HeaderContentType, page.ContentType)
			return c.Send(page.Body)
		}
		middleware.FeedCacheMisses.Inc()

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			stored := cachedPage{
				ContentType: string(c.Response().Header.ContentType()),
				// Copy: the response buffer is reused by fasthttp.
				Body: append([]byte(nil), c.Response().Body()...),
			}
			_ = SetJSON(ctx, key, stored, ttl)
		}
		return nil
	}
}
