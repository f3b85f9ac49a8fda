package services

import (
	"errors"
	"strings"
	"traveltales/internal/models"

	"gorm.io/gorm"
)

// PageSize is the number of blogs per listing/search page.
const PageSize = 5

// topN is the size of the recent/popular leaderboards.
const topN = 3

// SearchMode selects which field a search matches against.
type SearchMode string

const (
	SearchByCountry SearchMode = "country"
	SearchByAuthor  SearchMode = "author"
)

// ContentService owns blog CRUD, listing and search.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(conn *gorm.DB) *ContentService {
	return &ContentService{db: conn}
}

// Create persists a new blog. All four fields are required.
func (s *ContentService) Create(userID uint, title, content, country, visitDate string) (*models.Blog, error) {
	if title == "" || content == "" || country == "" || visitDate == "" {
		return nil, ErrMissingFields
	}
	blog := models.Blog{
		UserID:    userID,
		Title:     title,
		Content:   content,
		Country:   country,
		VisitDate: visitDate,
	}
	if err := s.db.Create(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *ContentService) Get(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.Preload("User").First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// Update edits a blog. Only the author may edit; ownership never moves.
func (s *ContentService) Update(id, requesterID uint, title, content, country, visitDate string) error {
	blog, err := s.Get(id)
	if err != nil {
		return err
	}
	if blog.UserID != requesterID {
		return ErrUnauthorized
	}
	if title == "" || content == "" || country == "" || visitDate == "" {
		return ErrMissingFields
	}
	return s.db.Model(&models.Blog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"country":    country,
			"visit_date": visitDate,
		}).Error
}

func (s *ContentService) Delete(id, requesterID uint) error {
	blog, err := s.Get(id)
	if err != nil {
		return err
	}
	if blog.UserID != requesterID {
		return ErrUnauthorized
	}
	return s.db.Delete(&models.Blog{}, id).Error
}

// List returns one page of blogs, newest first. Pages past the end are
// legal and come back empty.
func (s *ContentService) List(page, pageSize int) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = PageSize
	}
	var blogs []models.Blog
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&blogs).Error
	return blogs, err
}

// Count returns the total number of blogs, for pagination links.
func (s *ContentService) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Blog{}).Count(&total).Error
	return total, err
}

// Search matches a case-insensitive substring against the country field
// or the author's display name. An empty result is not an error; the
// caller reports "no results".
func (s *ContentService) Search(query string, mode SearchMode, page, pageSize int) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = PageSize
	}
	pattern := "%" + strings.ToLower(query) + "%"

	tx := s.db.Preload("User").
		Joins("JOIN users ON users.id = blogs.user_id").
		Order("blogs.created_at DESC, blogs.id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize)

	switch mode {
	case SearchByAuthor:
		tx = tx.Where("LOWER(users.name) LIKE ?", pattern)
	default:
		tx = tx.Where("LOWER(blogs.country) LIKE ?", pattern)
	}

	var blogs []models.Blog
	err := tx.Find(&blogs).Error
	return blogs, err
}

// Recent returns the three newest blogs.
func (s *ContentService) Recent() ([]models.Blog, error) {
	var blogs []models.Blog
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(topN).
		Find(&blogs).Error
	return blogs, err
}

// Popular returns the three blogs with the most like reactions. Ties
// break by storage order.
func (s *ContentService) Popular() ([]models.Blog, error) {
	var blogs []models.Blog
	err := s.db.Preload("User").
		Joins("LEFT JOIN reactions ON reactions.blog_id = blogs.id AND reactions.type = ?", models.ReactionLike).
		Group("blogs.id").
		Order("COUNT(reactions.id) DESC").
		Limit(topN).
		Find(&blogs).Error
	return blogs, err
}
