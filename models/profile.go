package models

import (
	"errors"
	"time"
)

// Gender and Goal are semantic codes. Display text lives in Label();
// formulas and storage only ever see the code.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", errors.New("gender must be \"male\" or \"female\"")
}

func (g Gender) Label() string {
	if g == GenderMale {
		return "Male"
	}
	return "Female"
}

type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainWeight Goal = "gain_weight"
)

func ParseGoal(s string) (Goal, error) {
	switch Goal(s) {
	case GoalLoseWeight, GoalMaintain, GoalGainWeight:
		return Goal(s), nil
	}
	return "", errors.New("goal must be \"lose_weight\", \"maintain\" or \"gain_weight\"")
}

func (g Goal) Label() string {
	switch g {
	case GoalLoseWeight:
		return "Lose weight"
	case GoalGainWeight:
		return "Gain weight"
	default:
		return "Maintain"
	}
}

// UserProfile is a per-device singleton: exactly one row, fixed key.
// TDEE is the stored output of nutrition.ComputeTDEE over the other
// fields at the time of the last save; nothing recomputes it implicitly.
type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Gender    Gender    `gorm:"type:varchar(16);not null" json:"gender"`
	HeightCm  float64   `gorm:"not null" json:"height_cm"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	Goal      Goal      `gorm:"type:varchar(16);not null" json:"goal"`
	TDEE      int       `gorm:"not null" json:"tdee"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileKey is the fixed primary key of the singleton profile row.
const ProfileKey uint = 1
