package cache

import (
	"fmt"
	"time"
)

const feedPageKeyPrefix = "feedpage:%s"

// FeedPageTTL is the fixed lifetime of a cached global-feed page. Cached
// pages are never invalidated by writes; a new post becomes visible on the
// front page only after the TTL elapses.
const FeedPageTTL = 20 * time.Second

// FeedPageKey builds the cache key for a full feed page response, keyed by
// the request URL (path plus query string).
func FeedPageKey(url string) string {
	return fmt.Sprintf(feedPageKeyPrefix, url)
}
