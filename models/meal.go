package models

import (
	"errors"
	"time"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func ParseMealType(s string) (MealType, error) {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return MealType(s), nil
	}
	return "", errors.New("meal type must be \"breakfast\", \"lunch\", \"dinner\" or \"snack\"")
}

func (t MealType) Label() string {
	switch t {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	default:
		return "Snack"
	}
}

// DefaultMealTypeFor picks the meal type from the hour of day. Applied
// once when a draft is started, never re-evaluated afterwards.
func DefaultMealTypeFor(t time.Time) MealType {
	switch h := t.Hour(); {
	case h >= 4 && h < 11:
		return MealBreakfast
	case h >= 11 && h < 14:
		return MealLunch
	case h >= 14 && h < 18:
		return MealSnack
	default:
		return MealDinner
	}
}

// FoodItem is one component of a meal. Items belong to exactly one meal
// and carry their nutrient snapshot; calories are whole kcal, macros are
// grams to one decimal place.
type FoodItem struct {
	ID           string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	MealID       string  `gorm:"type:varchar(36);index" json:"-"`
	Position     int     `gorm:"not null" json:"-"` // insertion order = display order
	Name         string  `json:"name"`
	WeightGrams  float64 `json:"weight_grams"`
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"protein_grams"`
	FatGrams     float64 `json:"fat_grams"`
	CarbsGrams   float64 `json:"carbs_grams"`
}

// Meal is immutable once saved: the ledger only ever appends meals, and
// TotalCalories is frozen at commit time.
type Meal struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Timestamp     time.Time  `gorm:"index;not null" json:"timestamp"`
	Type          MealType   `gorm:"type:varchar(16);not null" json:"type"`
	ImageRef      string     `json:"image_ref,omitempty"`
	Items         []FoodItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
	TotalCalories int        `gorm:"not null" json:"total_calories"`
}
