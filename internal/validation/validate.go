package validation

import (
	"fmt"
	"strings"

	"github.com/platewise/backend/internal/types"
)

// FieldError describes a single failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full field-level error list for a rejected
// request. Error() reports the first failing field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	return fmt.Sprintf("%s: %s", e.Fields[0].Field, e.Fields[0].Message)
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}

// Request bounds, mirroring the database CHECK constraints.
const (
	MaxBudget            = 10000
	MaxCookTimeMinutes   = 480
	MaxServings          = 50
	MinDailyCalories     = 500
	MaxDailyCalories     = 10000
	MaxIngredients       = 50
	MaxIngredientLength  = 100
	MaxDietarySelections = 7
)

// ValidateGenerateRequest range-checks every field of a generation request
// and sanitizes each free-text ingredient in place. Enum comparisons are
// case-sensitive and numeric bounds inclusive. The request must pass here on
// both the calling and the serving side before it is used anywhere.
func ValidateGenerateRequest(req *types.GenerateMealPlanRequest) error {
	verr := &ValidationError{}

	if !contains(types.ValidTimeframes, req.Timeframe) {
		verr.add("timeframe", fmt.Sprintf("must be one of: %s", strings.Join(types.ValidTimeframes, ", ")))
	}
	if req.Budget < 1 {
		verr.add("budget", "budget must be at least $1")
	} else if req.Budget > MaxBudget {
		verr.add("budget", "budget cannot exceed $10,000")
	}
	if req.MaxCookTime < 1 {
		verr.add("max_cook_time", "cook time must be at least 1 minute")
	} else if req.MaxCookTime > MaxCookTimeMinutes {
		verr.add("max_cook_time", "cook time cannot exceed 8 hours")
	}
	if req.Servings < 1 {
		verr.add("servings", "at least 1 serving")
	} else if req.Servings > MaxServings {
		verr.add("servings", "max 50 servings")
	}
	if req.DailyCalories != nil {
		if *req.DailyCalories < MinDailyCalories || *req.DailyCalories > MaxDailyCalories {
			verr.add("daily_calories", "daily calories must be between 500 and 10,000")
		}
	}

	if len(req.DietaryRestrictions) > MaxDietarySelections {
		verr.add("dietary_restrictions", "at most 7 dietary restrictions")
	}
	seen := make(map[string]bool, len(req.DietaryRestrictions))
	for i, r := range req.DietaryRestrictions {
		field := fmt.Sprintf("dietary_restrictions[%d]", i)
		if !contains(types.ValidDietaryRestrictions, r) {
			verr.add(field, fmt.Sprintf("unknown dietary restriction %q", r))
			continue
		}
		if seen[r] {
			verr.add(field, fmt.Sprintf("duplicate dietary restriction %q", r))
		}
		seen[r] = true
	}

	if len(req.AvailableIngredients) > MaxIngredients {
		verr.add("available_ingredients", "at most 50 ingredients")
	}
	for i, ing := range req.AvailableIngredients {
		field := fmt.Sprintf("available_ingredients[%d]", i)
		if len(ing) > MaxIngredientLength {
			verr.add(field, "each ingredient must be 100 characters or less")
			continue
		}
		cleaned, err := SanitizeForPrompt(strings.TrimSpace(ing))
		if err != nil {
			verr.add(field, err.Error())
			continue
		}
		if cleaned == "" {
			verr.add(field, "ingredient cannot be empty")
			continue
		}
		req.AvailableIngredients[i] = cleaned
	}

	if !contains(types.ValidSkillLevels, req.SkillLevel) {
		verr.add("skill_level", fmt.Sprintf("must be one of: %s", strings.Join(types.ValidSkillLevels, ", ")))
	}

	return verr.orNil()
}

// ValidateGeneratedMeal checks a single parsed model meal against the
// GeneratedMeal invariants. A meal failing here makes the whole response a
// parse failure; malformed meals are never silently accepted.
func ValidateGeneratedMeal(meal *types.GeneratedMeal, timeframe string) error {
	verr := &ValidationError{}

	if strings.TrimSpace(meal.Name) == "" {
		verr.add("name", "meal name is required")
	}
	if !contains(types.ValidMealSlots, meal.MealType) {
		verr.add("meal_type", fmt.Sprintf("unknown meal type %q", meal.MealType))
	}
	days := types.TimeframeDays(timeframe)
	if meal.Day < 1 {
		verr.add("day", "day must be 1 or greater")
	} else if days > 0 && meal.Day > days {
		verr.add("day", fmt.Sprintf("day %d exceeds the %d-day timeframe", meal.Day, days))
	}
	if !contains(types.ValidDifficulties, meal.Difficulty) {
		verr.add("difficulty", fmt.Sprintf("unknown difficulty %q", meal.Difficulty))
	}
	if len(meal.Ingredients) == 0 {
		verr.add("ingredients", "at least one ingredient is required")
	}
	if len(meal.Instructions) == 0 {
		verr.add("instructions", "at least one instruction step is required")
	}
	if meal.Calories < 0 {
		verr.add("calories", "calories cannot be negative")
	}
	if meal.EstimatedCost < 0 {
		verr.add("estimated_cost", "estimated cost cannot be negative")
	}
	if meal.PrepTimeMin < 0 || meal.CookTimeMin < 0 {
		verr.add("prep_time_min", "prep and cook times cannot be negative")
	}

	return verr.orNil()
}
