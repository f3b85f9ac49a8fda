package services

import (
	"traveltales/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialService manages the follow graph.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(conn *gorm.DB) *SocialService {
	return &SocialService{db: conn}
}

// Follow inserts the edge. Repeated follows are no-ops thanks to the
// unique (follower_id, following_id) index; self-follows are rejected at
// this boundary.
func (s *SocialService) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	edge := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

// Unfollow removes the edge; removing a non-existent edge is a no-op.
func (s *SocialService) Unfollow(followerID, followingID uint) error {
	return s.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (s *SocialService) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *SocialService) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *SocialService) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
