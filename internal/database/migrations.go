package database

import (
	"filevault-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RunMigrations performs all database migrations
func RunMigrations() error {
	return Migrate(GetDB())
}

// Migrate runs the schema migrations against the given database instance
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.BlockedToken{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.File{}); err != nil {
		return err
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}
