package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/platewise/backend/internal/types"
	"github.com/platewise/backend/internal/validation"
)

const (
	monthChunks        = 4
	daysPerChunk       = 7
	defaultCallTimeout = 90 * time.Second
)

// ProgressFunc reports chunked generation progress as
// (completed chunks, total chunks).
type ProgressFunc func(completed, total int)

// GenerationService turns validated requests into reviewed meal lists through
// the external model.
type GenerationService struct {
	model       TextModel
	callTimeout time.Duration
}

// NewGenerationService creates a GenerationService around a TextModel.
func NewGenerationService(model TextModel) *GenerationService {
	return &GenerationService{
		model:       model,
		callTimeout: defaultCallTimeout,
	}
}

// Generate produces the meal list for a validated request. Month requests are
// split into 4 sequential weekly calls so a single response never risks the
// model's output-length limit; each completed chunk fires onProgress and has
// its day numbers offset into a continuous 1..28 range. A chunk failure
// returns the meals gathered so far wrapped in a PartialGenerationError.
func (s *GenerationService) Generate(ctx context.Context, req *types.GenerateMealPlanRequest, onProgress ProgressFunc) ([]types.GeneratedMeal, error) {
	if err := validation.ValidateGenerateRequest(req); err != nil {
		return nil, err
	}

	if req.Timeframe != types.TimeframeMonth {
		return s.generateOnce(ctx, req)
	}

	// Weekly budget, rounded to cents.
	weeklyBudget := math.Round(req.Budget/monthChunks*100) / 100

	allMeals := make([]types.GeneratedMeal, 0, monthChunks*28)
	for week := 0; week < monthChunks; week++ {
		if err := ctx.Err(); err != nil {
			return allMeals, s.partialError(week, err)
		}

		weekReq := *req
		weekReq.Timeframe = types.TimeframeWeek
		weekReq.Budget = weeklyBudget

		meals, err := s.generateOnce(ctx, &weekReq)
		if err != nil {
			return allMeals, s.partialError(week, err)
		}

		for i := range meals {
			meals[i].Day += week * daysPerChunk
		}
		allMeals = append(allMeals, meals...)

		if onProgress != nil {
			onProgress(week+1, monthChunks)
		}
	}

	return allMeals, nil
}

func (s *GenerationService) partialError(completedChunks int, cause error) error {
	return &PartialGenerationError{
		CompletedChunks: completedChunks,
		TotalChunks:     monthChunks,
		CompletedDays:   completedChunks * daysPerChunk,
		Cause:           cause,
	}
}

// generateOnce performs one model call and parses the response into
// validated meals.
func (s *GenerationService) generateOnce(ctx context.Context, req *types.GenerateMealPlanRequest) ([]types.GeneratedMeal, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	prompt := BuildPrompt(req)
	out, err := s.model.GenerateContent(callCtx, prompt)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: model call timed out", ErrUpstreamUnavailable)
		}
		return nil, err
	}

	switch out.FinishReason {
	case FinishMaxTokens, FinishOther:
		log.Printf("generation finished abnormally: reason=%d length=%d", out.FinishReason, len(out.Text))
		return nil, ErrResponseTruncated
	case FinishSafety:
		return nil, ErrResponseBlocked
	}

	if out.Text == "" {
		return nil, fmt.Errorf("%w: no content returned", ErrUpstreamUnavailable)
	}

	return parseMeals(out.Text, req.Timeframe)
}

// Matches an entire response wrapped in a code fence.
var codeFence = regexp.MustCompile("(?s)^```(?:json)?\\s*\n?(.*?)\n?\\s*```$")

// extractJSON defensively strips an enclosing code fence. The prompt forbids
// fences, but a model deviation must not become a parse failure.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	return text
}

// parseMeals decodes a model response body into meals and checks every meal
// independently. One non-conforming meal fails the whole response.
func parseMeals(raw, timeframe string) ([]types.GeneratedMeal, error) {
	var plan struct {
		Meals []types.GeneratedMeal `json:"meals"`
	}

	if err := json.Unmarshal([]byte(extractJSON(raw)), &plan); err != nil {
		log.Printf("failed to parse model JSON response: %v", err)
		return nil, ErrResponseMalformed
	}

	if len(plan.Meals) == 0 {
		return nil, fmt.Errorf("%w: response contains no meals", ErrResponseMalformed)
	}

	for i := range plan.Meals {
		if err := validation.ValidateGeneratedMeal(&plan.Meals[i], timeframe); err != nil {
			return nil, fmt.Errorf("%w: meal %d: %v", ErrResponseMalformed, i, err)
		}
	}

	return plan.Meals, nil
}
