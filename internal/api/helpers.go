package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/validation"
)

// currentUserID returns the authenticated user ID set by the auth
// middleware, or aborts with 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}

	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// bindStrictJSON decodes the request body rejecting any field not in the
// declared schema, so extra parameters cannot be smuggled past validation.
func bindStrictJSON(c *gin.Context, dest interface{}) bool {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON in request body: " + err.Error()})
		return false
	}
	return true
}

// writeValidationError renders a ValidationError as a 400 with the
// field-level error list.
func writeValidationError(c *gin.Context, err error) bool {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": verr.Fields,
		})
		return true
	}
	return false
}
