package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	return scanJSONB(value, a)
}

// JSONBIngredients stores a meal's ingredient list as JSONB
type JSONBIngredients []types.Ingredient

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
		return nil
	}
	return scanJSONB(value, a)
}

// JSONBInstructions stores a meal's ordered instruction steps as JSONB
type JSONBInstructions []types.InstructionStep

// Value implements the driver.Valuer interface
func (a JSONBInstructions) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBInstructions) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBInstructions{}
		return nil
	}
	return scanJSONB(value, a)
}

func scanJSONB(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

// Meal is a durable recipe record owned by a user.
type Meal struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string            `gorm:"size:200;not null" json:"name"`
	Description   string            `gorm:"type:text" json:"description"`
	ImageURL      string            `gorm:"size:255" json:"image_url"`
	Ingredients   JSONBIngredients  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  JSONBInstructions `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Calories      int               `gorm:"check:calories >= 0" json:"calories"`
	ProteinG      float64           `gorm:"type:float" json:"protein_g"`
	CarbsG        float64           `gorm:"type:float" json:"carbs_g"`
	FatG          float64           `gorm:"type:float" json:"fat_g"`
	EstimatedCost float64           `gorm:"type:float" json:"estimated_cost"`
	PrepTimeMin   int               `json:"prep_time_min"`
	CookTimeMin   int               `json:"cook_time_min"`
	Difficulty    string            `gorm:"size:20;not null" json:"difficulty"`
	MealType      JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"meal_type"`
	Tags          JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	IsAIGenerated bool              `gorm:"not null;default:false" json:"is_ai_generated"`
}

// MealPlanItem binds a meal to a (user, date, slot) triple. At most one item
// may exist per triple; conflicting writes overwrite rather than duplicate.
type MealPlanItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_user_date_slot" json:"user_id"`
	MealID    uuid.UUID `gorm:"type:uuid;not null" json:"meal_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_plan_user_date_slot" json:"date"`
	Slot      string    `gorm:"size:20;not null;uniqueIndex:idx_plan_user_date_slot" json:"slot"`
	Meal      *Meal     `gorm:"foreignKey:MealID" json:"meal,omitempty"`
}

// BeforeCreate assigns an ID when one was not provided.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns an ID when one was not provided.
func (i *MealPlanItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
