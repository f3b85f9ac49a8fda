package services

import (
	"errors"
	"traveltales/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionService manages like/dislike state on blogs.
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(conn *gorm.DB) *ReactionService {
	return &ReactionService{db: conn}
}

// React upserts the viewer's reaction: insert if absent, otherwise
// overwrite the type. Uniqueness is the store's job (ON CONFLICT on the
// (user_id, blog_id) index), so concurrent reacts race safely to
// last-write-wins.
func (s *ReactionService) React(userID, blogID uint, reaction models.ReactionType) error {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return ErrInvalidReaction
	}

	var blog models.Blog
	if err := s.db.Select("id").First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	row := models.Reaction{
		UserID: userID,
		BlogID: blogID,
		Type:   reaction,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "blog_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"type": reaction}),
	}).Create(&row).Error
}

func (s *ReactionService) CountReactions(blogID uint, reaction models.ReactionType) (int64, error) {
	var count int64
	err := s.db.Model(&models.Reaction{}).
		Where("blog_id = ? AND type = ?", blogID, reaction).
		Count(&count).Error
	return count, err
}

// ReactionOf returns the viewer's reaction type, or "" when they have
// not reacted.
func (s *ReactionService) ReactionOf(userID, blogID uint) (models.ReactionType, error) {
	var row models.Reaction
	err := s.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Type, nil
}
