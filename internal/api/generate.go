package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
	"github.com/platewise/backend/internal/validation"
)

// Generator produces meal lists from validated requests.
type Generator interface {
	Generate(ctx context.Context, req *types.GenerateMealPlanRequest, onProgress service.ProgressFunc) ([]types.GeneratedMeal, error)
}

// GenerateHandler serves the meal-plan generation endpoint.
type GenerateHandler struct {
	generator Generator
}

// NewGenerateHandler creates a new GenerateHandler instance.
func NewGenerateHandler(generator Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// Generate handles POST /generate. The request is re-validated here even
// though clients validate before sending; the server-side check is the
// authoritative one.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GenerateMealPlanRequest
	if !bindStrictJSON(c, &req) {
		return
	}

	if err := validation.ValidateGenerateRequest(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	meals, err := h.generator.Generate(c.Request.Context(), &req, func(completed, total int) {
		log.Printf("generation progress for user %s: chunk %d/%d", userID, completed, total)
	})
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// writeGenerationError maps each failure category to its own status and
// user-facing message. The categories are deliberately not collapsed.
func (h *GenerateHandler) writeGenerationError(c *gin.Context, err error) {
	var partial *service.PartialGenerationError
	if errors.As(err, &partial) {
		log.Printf("chunked generation stopped after %d/%d chunks: %v", partial.CompletedChunks, partial.TotalChunks, partial.Cause)
		status := generationStatus(partial.Cause)
		c.JSON(status, gin.H{
			"error":          partial.Error(),
			"completed_days": partial.CompletedDays,
		})
		return
	}

	if writeValidationError(c, err) {
		return
	}

	log.Printf("generation failed: %v", err)
	c.JSON(generationStatus(err), gin.H{"error": userFacingMessage(err)})
}

func generationStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrResponseTruncated):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrResponseBlocked):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrResponseMalformed), errors.Is(err, service.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userFacingMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrResponseTruncated),
		errors.Is(err, service.ErrResponseBlocked),
		errors.Is(err, service.ErrResponseMalformed),
		errors.Is(err, service.ErrUpstreamUnavailable):
		return err.Error()
	default:
		return "an unexpected error occurred, please try again"
	}
}
