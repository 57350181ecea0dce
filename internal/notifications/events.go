// Package notifications delivers live feed events to websocket subscribers,
// fanned out across instances via Redis pub/sub.
package notifications

import (
	"encoding/json"
	"time"
)

// Event types published on the feed channel.
const (
	EventPostCreated   = "post_created"
	EventPostDeleted   = "post_deleted"
	EventCommentAdded  = "comment_added"
	EventFollowCreated = "follow_created"
)

// FeedEvent is the wire form of a live feed notification.
type FeedEvent struct {
	Type     string    `json:"type"`
	PostID   uint      `json:"post_id,omitempty"`
	AuthorID uint      `json:"author_id,omitempty"`
	At       time.Time `json:"at"`
}

// Encode marshals the event for publishing.
func (e FeedEvent) Encode() []byte {
	b, _ := json.Marshal(e)
	return b
}
