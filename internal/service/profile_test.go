package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

func TestProfileService_UpdateAppliesOnlyPresentFields(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret-test-secret-test-secret")
	svc := NewProfileService(db)
	ctx := context.Background()

	_, err := auth.Register(ctx, "student@example.com", "hunter2hunter2")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "student@example.com").First(&user).Error)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "save_money", profile.Goal)
	assert.Equal(t, "beginner", profile.SkillLevel)

	budget := 65.0
	restrictions := []string{"vegan", "nut_free"}
	done := true
	updated, err := svc.UpdateProfile(ctx, user.ID, &types.ProfileUpdateRequest{
		WeeklyBudget:        &budget,
		DietaryRestrictions: &restrictions,
		OnboardingComplete:  &done,
	})
	require.NoError(t, err)

	assert.Equal(t, 65.0, updated.WeeklyBudget)
	assert.Equal(t, models.JSONBStringArray{"vegan", "nut_free"}, updated.DietaryRestrictions)
	assert.True(t, updated.OnboardingComplete)

	// Fields absent from the update keep their values.
	assert.Equal(t, "save_money", updated.Goal)
	assert.Equal(t, "beginner", updated.SkillLevel)

	reloaded, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 65.0, reloaded.WeeklyBudget)
	assert.True(t, reloaded.OnboardingComplete)
}

func TestProfileService_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
