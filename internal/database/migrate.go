package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// Migrate runs schema migrations for all application models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Meal{},
		&models.MealPlanItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
