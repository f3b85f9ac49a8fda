package models

import (
	"time"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Reaction holds a user's like/dislike on a blog. One row per
// (user, blog); a second reaction overwrites the type. Rows are never
// deleted — un-reacting is not a supported operation.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;index;uniqueIndex:idx_user_blog" json:"user_id"`
	BlogID    uint         `gorm:"not null;index;uniqueIndex:idx_user_blog" json:"blog_id"`
	Blog      Blog         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"blog"`
	Type      ReactionType `gorm:"type:varchar(10);not null" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}
