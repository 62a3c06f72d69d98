package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/models"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret-test-secret-test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "student@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Registration creates an empty profile alongside the user.
	var user models.User
	require.NoError(t, db.Where("email = ?", "student@example.com").First(&user).Error)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.False(t, profile.OnboardingComplete)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "student@example.com", "another-password")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, err := svc.Login(ctx, "student@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "student@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret-test-secret-test-secret")

	token, err := svc.Register(context.Background(), "student@example.com", "hunter2hunter2")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "student@example.com").First(&user).Error)
	assert.Equal(t, user.ID, claims.UserID)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(db, "a-completely-different-secret-value")
		otherToken, err := other.Register(context.Background(), "other@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = svc.ValidateToken(otherToken)
		assert.Error(t, err)
	})
}
