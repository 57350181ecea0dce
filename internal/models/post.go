package models

import (
	"time"
)

// Post is a single authored entry. Author and PubDate are immutable after
// creation; only the author may change Text, GroupID and Image.
//
// GroupID carries ON DELETE SET NULL so deleting a group orphans its posts
// into the global feed instead of cascading.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index:idx_posts_pub_date,sort:desc" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// Image is the stored attachment path relative to the media dir, empty
	// when the post has no attachment.
	Image string `json:"image,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}
