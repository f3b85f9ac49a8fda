package services

import (
	"testing"
	"traveltales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))

	user, err := identity.Register("Alice", "alice@x.com", "secret1", testAnswers)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")

	got, err := identity.Authenticate("alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)

	_, err = identity.Authenticate("alice@x.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = identity.Authenticate("nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestRegisterValidation(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))

	_, err := identity.Register("", "a@x.com", "pw", testAnswers)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = identity.Register("A", "a@x.com", "pw", [3]string{"one", "", "three"})
	assert.ErrorIs(t, err, ErrMissingFields)

	registerUser(t, identity, "Alice", "alice@x.com", "secret1")
	_, err = identity.Register("Imposter", "alice@x.com", "other", testAnswers)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterStoresSecurityQuestions(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)

	userID := registerUser(t, identity, "Alice", "alice@x.com", "secret1")

	var questions models.SecurityQuestions
	require.NoError(t, conn.Where("user_id = ?", userID).First(&questions).Error)
	assert.Equal(t, models.Question1, questions.Question1)
	assert.Equal(t, "smith", questions.Answer1)
	assert.Equal(t, "rex", questions.Answer2)
	assert.Equal(t, "oslo", questions.Answer3)
}

func TestRegisterIsTransactional(t *testing.T) {
	conn := setupTestDB(t)
	identity := NewIdentityService(conn)

	// Occupy the security-questions slot the next registered user would
	// get, so the second write inside the transaction fails.
	registerUser(t, identity, "Alice", "alice@x.com", "secret1")
	blocker := models.SecurityQuestions{
		UserID:    2,
		Question1: models.Question1, Answer1: "x",
		Question2: models.Question2, Answer2: "x",
		Question3: models.Question3, Answer3: "x",
	}
	require.NoError(t, conn.Create(&blocker).Error)

	_, err := identity.Register("Bob", "bob@x.com", "secret2", testAnswers)
	require.Error(t, err)

	// The user write must have been rolled back: no orphan account.
	var count int64
	conn.Model(&models.User{}).Where("email = ?", "bob@x.com").Count(&count)
	assert.Zero(t, count)
}

func TestChangePassword(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))
	userID := registerUser(t, identity, "Alice", "alice@x.com", "secret1")

	err := identity.ChangePassword(userID, "secret1", "newpass", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = identity.ChangePassword(userID, "wrong", "newpass", "newpass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, identity.ChangePassword(userID, "secret1", "newpass", "newpass"))

	_, err = identity.Authenticate("alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = identity.Authenticate("alice@x.com", "newpass")
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))
	aliceID := registerUser(t, identity, "Alice", "alice@x.com", "secret1")
	registerUser(t, identity, "Bob", "bob@x.com", "secret2")

	err := identity.UpdateProfile(aliceID, "Alice B", "bob@x.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, identity.UpdateProfile(aliceID, "Alice B", "aliceb@x.com"))

	user, err := identity.GetUser(aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.Name)
	assert.Equal(t, "aliceb@x.com", user.Email)
}

func TestRecoverPassword(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))
	registerUser(t, identity, "Alice", "alice@x.com", "secret1")

	_, err := identity.RecoverPassword("nobody@x.com", testAnswers)
	assert.ErrorIs(t, err, ErrUnknownEmail)

	// Answer comparison is case-sensitive.
	_, err = identity.RecoverPassword("alice@x.com", [3]string{"smith", "rex", "Oslo"})
	assert.ErrorIs(t, err, ErrWrongAnswers)

	temp, err := identity.RecoverPassword("alice@x.com", testAnswers)
	require.NoError(t, err)
	require.NotEmpty(t, temp)

	// Old password is gone, the temporary one works.
	_, err = identity.Authenticate("alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = identity.Authenticate("alice@x.com", temp)
	assert.NoError(t, err)
}

func TestListOtherUsers(t *testing.T) {
	identity := NewIdentityService(setupTestDB(t))
	aliceID := registerUser(t, identity, "Alice", "alice@x.com", "secret1")
	registerUser(t, identity, "Bob", "bob@x.com", "secret2")
	registerUser(t, identity, "Cara", "cara@x.com", "secret3")

	others, err := identity.ListOtherUsers(aliceID)
	require.NoError(t, err)
	require.Len(t, others, 2)
	for _, other := range others {
		assert.NotEqual(t, aliceID, other.ID)
	}
}
