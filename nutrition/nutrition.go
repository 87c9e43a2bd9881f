// Package nutrition holds the pure calorie math: TDEE, proportional
// rescaling of food items, meal totals and BMI. No state, no I/O.
package nutrition

import (
	"errors"
	"math"

	"backend/models"
)

// activityFactor is fixed at sedentary/light activity. The product
// deliberately does not expose a user-selectable activity level.
const activityFactor = 1.375

// goalAdjustment is the flat kcal/day delta applied on top of TDEE.
const goalAdjustment = 500

// ComputeTDEE applies Mifflin-St Jeor, scales by the fixed activity
// factor, rounds, then applies the goal adjustment. The result is the
// daily calorie budget stored on the profile.
func ComputeTDEE(weightKg, heightCm float64, age int, gender models.Gender, goal models.Goal) (int, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, errors.New("weight and height must be positive")
	}
	if age < 1 {
		return 0, errors.New("age must be at least 1")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := int(math.Round(bmr * activityFactor))

	switch goal {
	case models.GoalLoseWeight:
		tdee -= goalAdjustment
	case models.GoalGainWeight:
		tdee += goalAdjustment
	}
	return tdee, nil
}

// RescaleItem returns a copy of item with its weight set to newWeightGrams
// and calories/macros scaled by the same ratio. Calories round to whole
// kcal, macros to one decimal place. The item's id, meal and name are kept.
func RescaleItem(item models.FoodItem, newWeightGrams float64) (models.FoodItem, error) {
	if item.WeightGrams <= 0 {
		return models.FoodItem{}, errors.New("item has no weight to scale from")
	}
	if newWeightGrams <= 0 {
		return models.FoodItem{}, errors.New("target weight must be positive")
	}

	ratio := newWeightGrams / item.WeightGrams
	item.WeightGrams = newWeightGrams
	item.Calories = math.Round(item.Calories * ratio)
	item.ProteinGrams = round1(item.ProteinGrams * ratio)
	item.FatGrams = round1(item.FatGrams * ratio)
	item.CarbsGrams = round1(item.CarbsGrams * ratio)
	return item, nil
}

// MealTotal sums item calories into the frozen meal total. Empty list → 0.
func MealTotal(items []models.FoodItem) int {
	var sum float64
	for _, it := range items {
		sum += it.Calories
	}
	return int(math.Round(sum))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}
