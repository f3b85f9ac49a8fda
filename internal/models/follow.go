package models

import (
	"time"
)

// Follow is a directed edge: follower -> following.
// The composite unique index gives the edge set semantics; repeated
// follows are no-ops rather than duplicate rows.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
