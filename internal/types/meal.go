package types

// Timeframe is the span a generation request covers.
const (
	TimeframeDay   = "day"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
)

// Meal slots.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

// Skill levels.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidTimeframes lists the accepted generation timeframes.
var ValidTimeframes = []string{TimeframeDay, TimeframeWeek, TimeframeMonth}

// ValidSkillLevels lists the accepted cooking skill levels.
var ValidSkillLevels = []string{SkillBeginner, SkillIntermediate, SkillAdvanced}

// ValidDietaryRestrictions lists the accepted dietary restriction values.
var ValidDietaryRestrictions = []string{
	"vegan",
	"vegetarian",
	"gluten_free",
	"dairy_free",
	"nut_free",
	"halal",
	"kosher",
}

// ValidMealSlots lists the accepted meal slots.
var ValidMealSlots = []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// ValidDifficulties lists the accepted recipe difficulties.
var ValidDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ValidGoals lists the accepted onboarding goals.
var ValidGoals = []string{"save_money", "eat_healthy", "learn_to_cook", "save_time"}

// GenerateMealPlanRequest is the user-supplied input to meal-plan generation.
// It must pass schema validation and prompt sanitization before use.
type GenerateMealPlanRequest struct {
	Timeframe            string   `json:"timeframe"`
	Budget               float64  `json:"budget"`
	MaxCookTime          int      `json:"max_cook_time"`
	Servings             int      `json:"servings"`
	DailyCalories        *int     `json:"daily_calories,omitempty"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	AvailableIngredients []string `json:"available_ingredients"`
	SkillLevel           string   `json:"skill_level"`
}

// Ingredient is one ingredient line of a meal.
type Ingredient struct {
	Name          string  `json:"name"`
	Quantity      string  `json:"quantity"`
	Unit          string  `json:"unit"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// InstructionStep is one ordered instruction of a meal.
type InstructionStep struct {
	Step int    `json:"step"`
	Text string `json:"text"`
}

// GeneratedMeal is a single model-proposed meal. It is held in memory for
// review and only converted to persisted records on explicit save.
type GeneratedMeal struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	MealType      string            `json:"meal_type"`
	Day           int               `json:"day"`
	Ingredients   []Ingredient      `json:"ingredients"`
	Instructions  []InstructionStep `json:"instructions"`
	Calories      int               `json:"calories"`
	ProteinG      float64           `json:"protein_g"`
	CarbsG        float64           `json:"carbs_g"`
	FatG          float64           `json:"fat_g"`
	EstimatedCost float64           `json:"estimated_cost"`
	PrepTimeMin   int               `json:"prep_time_min"`
	CookTimeMin   int               `json:"cook_time_min"`
	Difficulty    string            `json:"difficulty"`
	Tags          []string          `json:"tags"`
}

// TimeframeDays returns the number of plan days a timeframe covers.
func TimeframeDays(timeframe string) int {
	switch timeframe {
	case TimeframeDay:
		return 1
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 28
	default:
		return 0
	}
}
