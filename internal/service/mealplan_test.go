package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Meal{},
		&models.MealPlanItem{},
	))
	return db
}

func planAnchor(t *testing.T) time.Time {
	t.Helper()
	anchor, err := time.Parse("2006-01-02", "2026-03-02")
	require.NoError(t, err)
	return anchor
}

func TestSavePlan_PersistsMealsAndItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	breakfast := *validTestMeal()
	breakfast.Name = "Overnight Oats"
	breakfast.MealType = types.SlotBreakfast
	breakfast.Day = 1

	dinner := *validTestMeal()
	dinner.Day = 3

	result, err := svc.SavePlan(context.Background(), userID, planAnchor(t), []types.GeneratedMeal{breakfast, dinner})
	require.NoError(t, err)
	require.Len(t, result.Saved, 2)
	assert.Empty(t, result.Failed)

	assert.Equal(t, "Overnight Oats", result.Saved[0].Name)
	assert.Equal(t, "2026-03-02", result.Saved[0].Date)
	assert.Equal(t, types.SlotBreakfast, result.Saved[0].Slot)
	assert.Equal(t, "2026-03-04", result.Saved[1].Date)

	var meals []models.Meal
	require.NoError(t, db.Where("user_id = ?", userID).Find(&meals).Error)
	require.Len(t, meals, 2)
	for _, meal := range meals {
		assert.True(t, meal.IsAIGenerated)
		assert.NotEmpty(t, meal.Ingredients)
	}

	items, err := svc.PlanForDate(context.Background(), userID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Meal)
	assert.Equal(t, "Overnight Oats", items[0].Meal.Name)
}

func TestSavePlan_ReportsPerMealFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	good := *validTestMeal()
	good.Day = 1

	bad := *validTestMeal()
	bad.Name = "No Slot"
	bad.MealType = "brunch"
	bad.Day = 2

	alsoGood := *validTestMeal()
	alsoGood.Name = "Recovered Meal"
	alsoGood.Day = 3

	result, err := svc.SavePlan(context.Background(), userID, planAnchor(t), []types.GeneratedMeal{good, bad, alsoGood})
	require.NoError(t, err)

	// The failing meal is reported and the loop continues past it.
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "No Slot", result.Failed[0].Name)
	assert.Equal(t, 2, result.Failed[0].Day)
	require.Len(t, result.Saved, 2)
	assert.Equal(t, "Recovered Meal", result.Saved[1].Name)
}

func TestUpsertPlanItem_OverwritesSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	first := models.Meal{UserID: userID, Name: "First", Difficulty: types.DifficultyEasy}
	second := models.Meal{UserID: userID, Name: "Second", Difficulty: types.DifficultyEasy}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	item, err := svc.UpsertPlanItem(context.Background(), userID, first.ID, "2026-03-02", types.SlotLunch)
	require.NoError(t, err)
	assert.Equal(t, first.ID, item.MealID)

	item, err = svc.UpsertPlanItem(context.Background(), userID, second.ID, "2026-03-02", types.SlotLunch)
	require.NoError(t, err)
	assert.Equal(t, second.ID, item.MealID)

	// Exactly one item remains for the (user, date, slot) triple.
	var count int64
	require.NoError(t, db.Model(&models.MealPlanItem{}).
		Where("user_id = ? AND date = ? AND slot = ?", userID, "2026-03-02", types.SlotLunch).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSavePlan_ResaveReplacesOverlappingItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	meal := *validTestMeal()
	meal.Day = 1

	_, err := svc.SavePlan(context.Background(), userID, planAnchor(t), []types.GeneratedMeal{meal})
	require.NoError(t, err)

	replacement := *validTestMeal()
	replacement.Name = "Replacement Dinner"
	replacement.Day = 1

	result, err := svc.SavePlan(context.Background(), userID, planAnchor(t), []types.GeneratedMeal{replacement})
	require.NoError(t, err)
	require.Len(t, result.Saved, 1)

	items, err := svc.PlanForDate(context.Background(), userID, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Meal)
	assert.Equal(t, "Replacement Dinner", items[0].Meal.Name)
}

func TestPlanForRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	meal := models.Meal{UserID: userID, Name: "Anything", Difficulty: types.DifficultyEasy}
	require.NoError(t, db.Create(&meal).Error)

	for _, date := range []string{"2026-03-01", "2026-03-05", "2026-03-08"} {
		_, err := svc.UpsertPlanItem(context.Background(), userID, meal.ID, date, types.SlotDinner)
		require.NoError(t, err)
	}

	// Half-open range: the end date is excluded.
	items, err := svc.PlanForRange(context.Background(), userID, "2026-03-01", "2026-03-08")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2026-03-01", items[0].Date)
	assert.Equal(t, "2026-03-05", items[1].Date)

	// Other users' items are invisible.
	items, err = svc.PlanForRange(context.Background(), uuid.New(), "2026-03-01", "2026-04-01")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemovePlanItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMealPlanService(db, nil)
	userID := uuid.New()

	meal := models.Meal{UserID: userID, Name: "Anything", Difficulty: types.DifficultyEasy}
	require.NoError(t, db.Create(&meal).Error)

	item, err := svc.UpsertPlanItem(context.Background(), userID, meal.ID, "2026-03-02", types.SlotSnack)
	require.NoError(t, err)

	// A different user cannot remove it.
	err = svc.RemovePlanItem(context.Background(), uuid.New(), item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.RemovePlanItem(context.Background(), userID, item.ID))
	err = svc.RemovePlanItem(context.Background(), userID, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
