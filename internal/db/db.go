package db

import (
	"log"
	"os"
	"traveltales/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init connects to Postgres using DATABASE_URL and runs migrations.
// The handle is returned rather than stored in a package global so
// services can take it as a dependency (and tests can substitute an
// in-memory database).
func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=traveltales port=5432 sslmode=disable"
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	return conn
}

// Migrate creates/updates the schema for all entity tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.SecurityQuestions{},
		&models.Blog{},
		&models.Follow{},
		&models.Reaction{},
	)
}
