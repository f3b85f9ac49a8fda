package services

import (
	"testing"
	"traveltales/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

var testAnswers = [3]string{"smith", "rex", "oslo"}

// registerUser is a shorthand for tests that just need an account.
func registerUser(t *testing.T, identity *IdentityService, name, email, password string) uint {
	t.Helper()

	user, err := identity.Register(name, email, password, testAnswers)
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user.ID
}
