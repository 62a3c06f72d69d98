package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/types"
	"github.com/platewise/backend/internal/validation"
)

// fakeModel returns scripted outputs in call order.
type fakeModel struct {
	outputs []*ModelOutput
	prompts []string
}

func (m *fakeModel) GenerateContent(ctx context.Context, prompt string) (*ModelOutput, error) {
	call := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if call < len(m.outputs) {
		return m.outputs[call], nil
	}
	return nil, fmt.Errorf("unexpected call %d", call)
}

func mealJSON(t *testing.T, meals []types.GeneratedMeal) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{"meals": meals})
	require.NoError(t, err)
	return string(body)
}

func weekOfMeals(t *testing.T) string {
	meals := make([]types.GeneratedMeal, 0, 7)
	for day := 1; day <= 7; day++ {
		meal := *validTestMeal()
		meal.Name = fmt.Sprintf("Day %d Dinner", day)
		meal.Day = day
		meals = append(meals, meal)
	}
	return mealJSON(t, meals)
}

func validTestMeal() *types.GeneratedMeal {
	return &types.GeneratedMeal{
		Name:     "Veggie Stir Fry",
		MealType: types.SlotDinner,
		Day:      1,
		Ingredients: []types.Ingredient{
			{Name: "frozen vegetables", Quantity: "2", Unit: "cups", EstimatedCost: 1.5},
		},
		Instructions: []types.InstructionStep{
			{Step: 1, Text: "Stir fry vegetables over high heat."},
		},
		Calories:      380,
		EstimatedCost: 2.2,
		PrepTimeMin:   5,
		CookTimeMin:   10,
		Difficulty:    types.DifficultyEasy,
	}
}

func generateRequest(timeframe string) *types.GenerateMealPlanRequest {
	return &types.GenerateMealPlanRequest{
		Timeframe:   timeframe,
		Budget:      100,
		MaxCookTime: 30,
		Servings:    2,
		SkillLevel:  types.SkillBeginner,
	}
}

func TestGenerate_SingleCall(t *testing.T) {
	model := &fakeModel{outputs: []*ModelOutput{
		{Text: mealJSON(t, []types.GeneratedMeal{*validTestMeal()}), FinishReason: FinishStop},
	}}
	svc := NewGenerationService(model)

	meals, err := svc.Generate(context.Background(), generateRequest(types.TimeframeDay), nil)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Veggie Stir Fry", meals[0].Name)
	assert.Len(t, model.prompts, 1)
}

func TestGenerate_RejectsInvalidRequest(t *testing.T) {
	model := &fakeModel{}
	svc := NewGenerationService(model)

	req := generateRequest(types.TimeframeDay)
	req.Budget = 0

	_, err := svc.Generate(context.Background(), req, nil)
	var verr *validation.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, model.prompts, "invalid requests must never reach the model")
}

func TestGenerate_StripsCodeFence(t *testing.T) {
	body := mealJSON(t, []types.GeneratedMeal{*validTestMeal()})
	model := &fakeModel{outputs: []*ModelOutput{
		{Text: "```json\n" + body + "\n```", FinishReason: FinishStop},
	}}
	svc := NewGenerationService(model)

	meals, err := svc.Generate(context.Background(), generateRequest(types.TimeframeDay), nil)
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}

func TestGenerate_FinishReasons(t *testing.T) {
	tests := []struct {
		name    string
		output  *ModelOutput
		wantErr error
	}{
		{"max tokens", &ModelOutput{Text: `{"meals": [`, FinishReason: FinishMaxTokens}, ErrResponseTruncated},
		{"other abnormal finish", &ModelOutput{Text: "", FinishReason: FinishOther}, ErrResponseTruncated},
		{"safety block", &ModelOutput{Text: "", FinishReason: FinishSafety}, ErrResponseBlocked},
		{"empty normal response", &ModelOutput{Text: "", FinishReason: FinishStop}, ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGenerationService(&fakeModel{outputs: []*ModelOutput{tt.output}})
			_, err := svc.Generate(context.Background(), generateRequest(types.TimeframeDay), nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerate_MalformedResponses(t *testing.T) {
	invalidMeal := *validTestMeal()
	invalidMeal.MealType = "brunch"

	tests := []struct {
		name string
		text string
	}{
		{"not JSON", "here is your meal plan!"},
		{"empty meal list", `{"meals": []}`},
		{"meal failing validation", mealJSON(t, []types.GeneratedMeal{invalidMeal})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGenerationService(&fakeModel{outputs: []*ModelOutput{
				{Text: tt.text, FinishReason: FinishStop},
			}})
			_, err := svc.Generate(context.Background(), generateRequest(types.TimeframeDay), nil)
			assert.ErrorIs(t, err, ErrResponseMalformed)
		})
	}
}

func TestGenerate_MonthChunking(t *testing.T) {
	model := &fakeModel{outputs: []*ModelOutput{
		{Text: weekOfMeals(t), FinishReason: FinishStop},
		{Text: weekOfMeals(t), FinishReason: FinishStop},
		{Text: weekOfMeals(t), FinishReason: FinishStop},
		{Text: weekOfMeals(t), FinishReason: FinishStop},
	}}
	svc := NewGenerationService(model)

	var progress [][2]int
	req := generateRequest(types.TimeframeMonth)
	req.Budget = 250

	meals, err := svc.Generate(context.Background(), req, func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	})
	require.NoError(t, err)
	require.Len(t, meals, 28)

	// Day numbers are offset into one continuous 1..28 range.
	for i, meal := range meals {
		assert.Equal(t, i+1, meal.Day)
	}

	assert.Equal(t, [][2]int{{1, 4}, {2, 4}, {3, 4}, {4, 4}}, progress)

	// Each weekly call carries a quarter of the month budget, rounded to cents.
	require.Len(t, model.prompts, 4)
	for _, prompt := range model.prompts {
		assert.Contains(t, prompt, "<user_input>62.5</user_input>")
		assert.Contains(t, prompt, "<user_input>week</user_input>")
	}
}

func TestGenerate_MonthChunkFailure(t *testing.T) {
	model := &fakeModel{
		outputs: []*ModelOutput{
			{Text: weekOfMeals(t), FinishReason: FinishStop},
			{Text: weekOfMeals(t), FinishReason: FinishStop},
			{Text: "", FinishReason: FinishSafety},
		},
	}
	svc := NewGenerationService(model)

	meals, err := svc.Generate(context.Background(), generateRequest(types.TimeframeMonth), nil)

	var perr *PartialGenerationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.CompletedChunks)
	assert.Equal(t, 4, perr.TotalChunks)
	assert.Equal(t, 14, perr.CompletedDays)
	assert.ErrorIs(t, err, ErrResponseBlocked)

	// Meals from completed chunks are preserved.
	require.Len(t, meals, 14)
	assert.Equal(t, 14, meals[13].Day)
}

func TestGenerate_MonthCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	model := &fakeModel{outputs: []*ModelOutput{
		{Text: weekOfMeals(t), FinishReason: FinishStop},
	}}
	svc := NewGenerationService(model)

	meals, err := svc.Generate(ctx, generateRequest(types.TimeframeMonth), func(completed, total int) {
		cancel()
	})

	var perr *PartialGenerationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.CompletedChunks)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, meals, 7)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare JSON", `{"meals": []}`, `{"meals": []}`},
		{"fenced with language", "```json\n{\"meals\": []}\n```", `{"meals": []}`},
		{"fenced without language", "```\n{\"meals\": []}\n```", `{"meals": []}`},
		{"surrounding whitespace", "  {\"meals\": []}\n", `{"meals": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}
