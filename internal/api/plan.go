package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

// PlanHandler serves the meal-plan calendar endpoints.
type PlanHandler struct {
	plans *service.MealPlanService
}

// NewPlanHandler creates a new PlanHandler instance.
func NewPlanHandler(plans *service.MealPlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// GetRange handles GET /plan?start=YYYY-MM-DD&end=YYYY-MM-DD. The range is
// half-open: items on the end date are excluded.
func (h *PlanHandler) GetRange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end := c.Query("start"), c.Query("end")
	if !validDate(start) || !validDate(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be dates in YYYY-MM-DD format"})
		return
	}
	if end <= start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	items, err := h.plans.PlanForRange(c.Request.Context(), userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetDay handles GET /plan/:date.
func (h *PlanHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	items, err := h.plans.PlanForDate(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "items": items})
}

// AddItem handles POST /plan/items, binding an existing meal to a date and
// slot. An item already occupying that (date, slot) is replaced.
func (h *PlanHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mealID, err := uuid.Parse(req.MealID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	item, err := h.plans.UpsertPlanItem(c.Request.Context(), userID, mealID, req.Date, req.Slot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save plan item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem handles DELETE /plan/items/:id.
func (h *PlanHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan item id"})
		return
	}

	if err := h.plans.RemovePlanItem(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove plan item"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SavePlan handles POST /plan/save, persisting a reviewed batch of generated
// meals starting at the anchor date. The save is best-effort per meal; the
// response reports saved and failed items separately and returns 207 when the
// batch only partially succeeded.
func (h *PlanHandler) SavePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SavePlanRequest
	if !bindStrictJSON(c, &req) {
		return
	}
	if req.AnchorDate == "" || len(req.Meals) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anchor_date and at least one meal are required"})
		return
	}

	anchor, err := time.Parse("2006-01-02", req.AnchorDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anchor_date must be in YYYY-MM-DD format"})
		return
	}

	result, err := h.plans.SavePlan(c.Request.Context(), userID, anchor, req.Meals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save plan"})
		return
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
