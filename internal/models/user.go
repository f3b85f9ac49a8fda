package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Users are never deleted in this design.
}

// SecurityQuestions holds the three recovery question/answer pairs,
// one row per user, written once at registration.
// Answers are stored in plaintext and compared exactly; see DESIGN.md.
type SecurityQuestions struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Question1 string    `gorm:"not null" json:"question1"`
	Answer1   string    `gorm:"not null" json:"-"`
	Question2 string    `gorm:"not null" json:"question2"`
	Answer2   string    `gorm:"not null" json:"-"`
	Question3 string    `gorm:"not null" json:"question3"`
	Answer3   string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// The question set is fixed; only the answers vary per user.
const (
	Question1 = "mothers maiden name"
	Question2 = "first pet name"
	Question3 = "birth city"
)
