package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// MealService handles durable meal records.
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance.
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// CreateMeal creates a new meal for a user.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// GetMeal retrieves one of a user's meals by ID.
func (s *MealService) GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListMeals returns a user's meals, newest first, optionally filtered by a
// case-insensitive name search.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, search string) ([]models.Meal, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")

	if search != "" {
		query = query.Where("lower(name) LIKE lower(?)", "%"+search+"%")
	}

	var meals []models.Meal
	if err := query.Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// DeleteMeal removes one of a user's meals along with its plan items.
func (s *MealService) DeleteMeal(ctx context.Context, userID, id uuid.UUID) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("meal_id = ?", id).Delete(&models.MealPlanItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&meal).Error
}
