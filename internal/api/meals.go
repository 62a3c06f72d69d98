package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

// MealHandler serves the meal CRUD endpoints.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new MealHandler instance.
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

// ListMeals handles GET /meals with an optional ?search= name filter.
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.meals.ListMeals(c.Request.Context(), userID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal handles GET /meals/:id.
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// CreateMeal handles POST /meals for manually added recipes.
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Ingredients:   models.JSONBIngredients(req.Ingredients),
		Instructions:  models.JSONBInstructions(req.Instructions),
		Calories:      req.Calories,
		ProteinG:      req.ProteinG,
		CarbsG:        req.CarbsG,
		FatG:          req.FatG,
		EstimatedCost: req.EstimatedCost,
		PrepTimeMin:   req.PrepTimeMin,
		CookTimeMin:   req.CookTimeMin,
		Difficulty:    req.Difficulty,
		MealType:      models.JSONBStringArray(req.MealType),
		Tags:          models.JSONBStringArray(req.Tags),
	}

	created, err := h.meals.CreateMeal(c.Request.Context(), &meal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": created})
}

// DeleteMeal handles DELETE /meals/:id.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	c.Status(http.StatusNoContent)
}
