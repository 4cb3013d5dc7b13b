package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
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

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

// Instruction is one ordered step of a recipe.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

// IngredientList stores ingredients as a JSONB array.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// InstructionList stores instructions as a JSONB array.
type InstructionList []Instruction

func (l InstructionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *InstructionList) Scan(value interface{}) error {
	if value == nil {
		*l = InstructionList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Cuisines is the closed set of accepted cuisine values.
var Cuisines = []string{
	"italian",
	"chinese",
	"indian",
	"mexican",
	"japanese",
	"french",
	"thai",
	"greek",
	"american",
	"mediterranean",
	"other",
}

type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Author        *User            `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Slug          string           `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	HeroImage     string           `gorm:"size:512" json:"hero_image"`
	PrepTime      int              `json:"prep_time"`
	CookTime      int              `json:"cook_time"`
	Servings      int              `gorm:"default:4" json:"servings"`
	Difficulty    string           `gorm:"size:20;default:'medium'" json:"difficulty"`
	Cuisine       string           `gorm:"size:50;index" json:"cuisine"`
	MealType      string           `gorm:"size:50;index" json:"meal_type"`
	Ingredients   IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  InstructionList  `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	LikeCount     int              `gorm:"default:0" json:"like_count"`
	SaveCount     int              `gorm:"default:0" json:"save_count"`
	ViewCount     int              `gorm:"default:0" json:"view_count"`
	AverageRating float64          `gorm:"default:0" json:"average_rating"`
	RatingCount   int              `gorm:"default:0" json:"rating_count"`
	IsPublished   bool             `gorm:"default:false;index" json:"is_published"`
	PublishedAt   *time.Time       `gorm:"index" json:"published_at,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
