package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

// ProfileService manages a user's onboarding preferences.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the profile for a user.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a validated partial update and returns the result.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.ProfileUpdateRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Goal != nil {
		profile.Goal = *req.Goal
	}
	if req.WeeklyBudget != nil {
		profile.WeeklyBudget = *req.WeeklyBudget
	}
	if req.SkillLevel != nil {
		profile.SkillLevel = *req.SkillLevel
	}
	if req.DietaryRestrictions != nil {
		profile.DietaryRestrictions = models.JSONBStringArray(*req.DietaryRestrictions)
	}
	if req.OnboardingComplete != nil {
		profile.OnboardingComplete = *req.OnboardingComplete
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
