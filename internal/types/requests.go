package types

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest carries partial profile updates. Pointer fields
// distinguish "absent" from zero values; unknown fields are rejected at
// decode time.
type ProfileUpdateRequest struct {
	DisplayName         *string   `json:"display_name"`
	Goal                *string   `json:"goal"`
	WeeklyBudget        *float64  `json:"weekly_budget"`
	SkillLevel          *string   `json:"skill_level"`
	DietaryRestrictions *[]string `json:"dietary_restrictions"`
	OnboardingComplete  *bool     `json:"onboarding_complete"`
}

// CreateMealRequest is the request body for manually adding a meal.
type CreateMealRequest struct {
	Name          string            `json:"name" binding:"required,max=200"`
	Description   string            `json:"description" binding:"max=2000"`
	ImageURL      string            `json:"image_url" binding:"max=255"`
	Ingredients   []Ingredient      `json:"ingredients" binding:"required,max=50"`
	Instructions  []InstructionStep `json:"instructions" binding:"required,max=100"`
	Calories      int               `json:"calories" binding:"min=0,max=50000"`
	ProteinG      float64           `json:"protein_g" binding:"min=0,max=5000"`
	CarbsG        float64           `json:"carbs_g" binding:"min=0,max=5000"`
	FatG          float64           `json:"fat_g" binding:"min=0,max=5000"`
	EstimatedCost float64           `json:"estimated_cost" binding:"min=0,max=10000"`
	PrepTimeMin   int               `json:"prep_time_min" binding:"min=0,max=1440"`
	CookTimeMin   int               `json:"cook_time_min" binding:"min=0,max=1440"`
	Difficulty    string            `json:"difficulty" binding:"required,oneof=easy medium hard"`
	MealType      []string          `json:"meal_type" binding:"required,min=1,max=4,dive,oneof=breakfast lunch dinner snack"`
	Tags          []string          `json:"tags" binding:"max=20,dive,max=50"`
}

// AddPlanItemRequest binds an existing meal to a date and slot.
type AddPlanItemRequest struct {
	MealID string `json:"meal_id" binding:"required,uuid"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Slot   string `json:"slot" binding:"required,oneof=breakfast lunch dinner snack"`
}

// SavePlanRequest commits a reviewed set of generated meals starting at the
// anchor date.
type SavePlanRequest struct {
	AnchorDate string          `json:"anchor_date" binding:"required,datetime=2006-01-02"`
	Meals      []GeneratedMeal `json:"meals" binding:"required,min=1"`
}
