package notifications

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// feedChannel is the Redis pub/sub channel carrying feed events.
const feedChannel = "feed:events"

// Notifier publishes feed events into Redis so every instance's hub sees
// them. With no Redis client it degrades to a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends a feed event to all subscribed instances.
func (n *Notifier) Publish(ctx context.Context, event FeedEvent) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, feedChannel, event.Encode()).Err()
}

// StartSubscriber subscribes to the feed channel and calls onMessage for
// each incoming payload until the context is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, feedChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in feed subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
