package services

import (
	"errors"
	"traveltales/internal/models"
	"traveltales/internal/utils"

	"gorm.io/gorm"
)

// IdentityService owns accounts, credentials and recovery.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(conn *gorm.DB) *IdentityService {
	return &IdentityService{db: conn}
}

// Register creates the user and their security questions in a single
// transaction, so a failure on the second write cannot leave a user
// without recovery questions.
func (s *IdentityService) Register(name, email, password string, answers [3]string) (*models.User, error) {
	if name == "" || email == "" || password == "" ||
		answers[0] == "" || answers[1] == "" || answers[2] == "" {
		return nil, ErrMissingFields
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		questions := models.SecurityQuestions{
			UserID:    user.ID,
			Question1: models.Question1,
			Answer1:   answers[0],
			Question2: models.Question2,
			Answer2:   answers[1],
			Question3: models.Question3,
			Answer3:   answers[2],
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the credentials and returns the user. Session
// issuance is the handler's job; only {id, name, email} may go into it.
func (s *IdentityService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrWrongPassword
	}
	return &user, nil
}

func (s *IdentityService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListOtherUsers returns every user except the given one, for the
// follow/unfollow directory page.
func (s *IdentityService) ListOtherUsers(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("id != ?", userID).Order("name ASC").Find(&users).Error
	return users, err
}

// ChangePassword rotates the password after verifying the current one.
// The caller must invalidate the session afterwards.
func (s *IdentityService) ChangePassword(userID uint, current, newPassword, confirm string) error {
	if newPassword == "" || newPassword != confirm {
		return ErrPasswordMismatch
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

// UpdateProfile changes name and email. The caller mirrors the change
// into the live session.
func (s *IdentityService) UpdateProfile(userID uint, name, email string) error {
	if name == "" || email == "" {
		return ErrMissingFields
	}

	var existing models.User
	if err := s.db.Where("email = ? AND id != ?", email, userID).First(&existing).Error; err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "email": email}).Error
}

// tempPasswordLength for recovery-issued passwords.
const tempPasswordLength = 10

// RecoverPassword checks all three security answers with an exact,
// case-sensitive comparison. On success it stores a fresh temporary
// password and returns the plaintext, to be shown exactly once.
func (s *IdentityService) RecoverPassword(email string, answers [3]string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnknownEmail
		}
		return "", err
	}

	var questions models.SecurityQuestions
	if err := s.db.Where("user_id = ?", user.ID).First(&questions).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrWrongAnswers
		}
		return "", err
	}

	if questions.Answer1 != answers[0] ||
		questions.Answer2 != answers[1] ||
		questions.Answer3 != answers[2] {
		return "", ErrWrongAnswers
	}

	temp := utils.GenerateRandomCode(tempPasswordLength)
	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", err
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("password", hash).Error; err != nil {
		return "", err
	}
	return temp, nil
}
