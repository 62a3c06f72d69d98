package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
	"github.com/platewise/backend/internal/validation"
)

// MealPlanService persists accepted generated meals as meal + plan-item
// records.
type MealPlanService struct {
	db     *gorm.DB
	images *ImageService
}

// NewMealPlanService creates a MealPlanService. images may be nil, in which
// case saved meals carry no image URL.
func NewMealPlanService(db *gorm.DB, images *ImageService) *MealPlanService {
	return &MealPlanService{db: db, images: images}
}

// SavedMeal records one successfully persisted meal.
type SavedMeal struct {
	MealID uuid.UUID `json:"meal_id"`
	Name   string    `json:"name"`
	Date   string    `json:"date"`
	Slot   string    `json:"slot"`
}

// FailedMeal records one meal that could not be persisted.
type FailedMeal struct {
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Error string `json:"error"`
}

// SaveResult is the per-item outcome summary of a plan save. The save is not
// transactional across the batch; each meal+plan-item pair is independently
// useful, so the loop continues past failures and reports both lists.
type SaveResult struct {
	Saved  []SavedMeal  `json:"saved"`
	Failed []FailedMeal `json:"failed"`
}

// SavePlan writes each accepted meal as a Meal row plus a MealPlanItem keyed
// by (user, anchor+day-1, meal type). Plan items upsert on the
// (user, date, slot) uniqueness key so re-saving an overlapping plan replaces
// rather than duplicates.
func (s *MealPlanService) SavePlan(ctx context.Context, userID uuid.UUID, anchor time.Time, meals []types.GeneratedMeal) (*SaveResult, error) {
	result := &SaveResult{
		Saved:  make([]SavedMeal, 0, len(meals)),
		Failed: make([]FailedMeal, 0),
	}

	for i := range meals {
		meal := &meals[i]

		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := validation.ValidateGeneratedMeal(meal, types.TimeframeMonth); err != nil {
			result.Failed = append(result.Failed, FailedMeal{Name: meal.Name, Day: meal.Day, Error: err.Error()})
			continue
		}

		date := anchor.AddDate(0, 0, meal.Day-1).Format("2006-01-02")

		var imageURL string
		if s.images != nil {
			imageURL = s.images.FetchFoodImage(ctx, meal.Name)
		}

		record := models.Meal{
			UserID:        userID,
			Name:          meal.Name,
			Description:   meal.Description,
			ImageURL:      imageURL,
			Ingredients:   models.JSONBIngredients(meal.Ingredients),
			Instructions:  models.JSONBInstructions(meal.Instructions),
			Calories:      meal.Calories,
			ProteinG:      meal.ProteinG,
			CarbsG:        meal.CarbsG,
			FatG:          meal.FatG,
			EstimatedCost: meal.EstimatedCost,
			PrepTimeMin:   meal.PrepTimeMin,
			CookTimeMin:   meal.CookTimeMin,
			Difficulty:    meal.Difficulty,
			MealType:      models.JSONBStringArray{meal.MealType},
			Tags:          models.JSONBStringArray(meal.Tags),
			IsAIGenerated: true,
		}

		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			result.Failed = append(result.Failed, FailedMeal{Name: meal.Name, Day: meal.Day, Error: err.Error()})
			continue
		}

		if err := s.upsertPlanItem(ctx, userID, record.ID, date, meal.MealType); err != nil {
			result.Failed = append(result.Failed, FailedMeal{Name: meal.Name, Day: meal.Day, Error: err.Error()})
			continue
		}

		result.Saved = append(result.Saved, SavedMeal{MealID: record.ID, Name: meal.Name, Date: date, Slot: meal.MealType})
	}

	return result, nil
}

// UpsertPlanItem binds a meal to a date and slot, overwriting any item
// already occupying that (user, date, slot).
func (s *MealPlanService) UpsertPlanItem(ctx context.Context, userID, mealID uuid.UUID, date, slot string) (*models.MealPlanItem, error) {
	if err := s.upsertPlanItem(ctx, userID, mealID, date, slot); err != nil {
		return nil, err
	}

	var item models.MealPlanItem
	err := s.db.WithContext(ctx).
		Preload("Meal").
		First(&item, "user_id = ? AND date = ? AND slot = ?", userID, date, slot).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load plan item: %w", err)
	}
	return &item, nil
}

func (s *MealPlanService) upsertPlanItem(ctx context.Context, userID, mealID uuid.UUID, date, slot string) error {
	item := models.MealPlanItem{
		UserID: userID,
		MealID: mealID,
		Date:   date,
		Slot:   slot,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"meal_id", "updated_at"}),
	}).Create(&item).Error
}

// PlanForRange returns a user's plan items with meals for dates in
// [start, end), ordered by date.
func (s *MealPlanService) PlanForRange(ctx context.Context, userID uuid.UUID, start, end string) ([]models.MealPlanItem, error) {
	var items []models.MealPlanItem
	err := s.db.WithContext(ctx).
		Preload("Meal").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date asc").
		Find(&items).Error
	return items, err
}

// PlanForDate returns a user's plan items with meals for a single date.
func (s *MealPlanService) PlanForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.MealPlanItem, error) {
	var items []models.MealPlanItem
	err := s.db.WithContext(ctx).
		Preload("Meal").
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

// RemovePlanItem deletes one of the user's plan items.
func (s *MealPlanService) RemovePlanItem(ctx context.Context, userID, itemID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.MealPlanItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
