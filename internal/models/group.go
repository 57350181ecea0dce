package models

// Group is a named collection posts can be filed under. Groups are created
// by admins and referenced, never owned, by posts.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	Posts []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM
func (Group) TableName() string {
	return "groups"
}
