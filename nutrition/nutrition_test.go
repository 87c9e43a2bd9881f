package nutrition

import (
	"testing"

	"backend/models"
)

func TestComputeTDEE(t *testing.T) {
	cases := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		gender   models.Gender
		goal     models.Goal
		want     int
	}{
		// bmr = 550+1000-125 = 1425; -161 = 1264; *1.375 = 1738; -500
		{"female lose weight", 55, 160, 25, models.GenderFemale, models.GoalLoseWeight, 1238},
		// bmr = 700+1093.75-150 = 1643.75; +5 = 1648.75; *1.375 = 2267.03 → 2267
		{"male maintain", 70, 175, 30, models.GenderMale, models.GoalMaintain, 2267},
		{"male gain weight", 70, 175, 30, models.GenderMale, models.GoalGainWeight, 2767},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ComputeTDEE(c.weight, c.height, c.age, c.gender, c.goal)
			if err != nil {
				t.Fatalf("ComputeTDEE: %v", err)
			}
			if got != c.want {
				t.Errorf("ComputeTDEE = %d, want %d", got, c.want)
			}
		})
	}
}

func TestComputeTDEERejectsBadInput(t *testing.T) {
	if _, err := ComputeTDEE(0, 160, 25, models.GenderFemale, models.GoalMaintain); err == nil {
		t.Error("expected error for zero weight")
	}
	if _, err := ComputeTDEE(55, -1, 25, models.GenderFemale, models.GoalMaintain); err == nil {
		t.Error("expected error for negative height")
	}
	if _, err := ComputeTDEE(55, 160, 0, models.GenderFemale, models.GoalMaintain); err == nil {
		t.Error("expected error for zero age")
	}
}

func TestRescaleItem(t *testing.T) {
	item := models.FoodItem{
		ID:           "a",
		Name:         "Rice",
		WeightGrams:  100,
		Calories:     200,
		ProteinGrams: 10,
		FatGrams:     5,
		CarbsGrams:   20,
	}

	got, err := RescaleItem(item, 150)
	if err != nil {
		t.Fatalf("RescaleItem: %v", err)
	}
	if got.WeightGrams != 150 {
		t.Errorf("WeightGrams = %v, want 150", got.WeightGrams)
	}
	if got.Calories != 300 {
		t.Errorf("Calories = %v, want 300", got.Calories)
	}
	if got.ProteinGrams != 15.0 {
		t.Errorf("ProteinGrams = %v, want 15.0", got.ProteinGrams)
	}
	if got.FatGrams != 7.5 {
		t.Errorf("FatGrams = %v, want 7.5", got.FatGrams)
	}
	if got.CarbsGrams != 30.0 {
		t.Errorf("CarbsGrams = %v, want 30.0", got.CarbsGrams)
	}
	if got.ID != "a" || got.Name != "Rice" {
		t.Errorf("id/name changed: %q %q", got.ID, got.Name)
	}
	// input untouched
	if item.WeightGrams != 100 || item.Calories != 200 {
		t.Errorf("input item mutated: %+v", item)
	}
}

func TestRescaleItemRoundsOneDecimal(t *testing.T) {
	item := models.FoodItem{WeightGrams: 90, Calories: 100, ProteinGrams: 3.3, FatGrams: 1.1, CarbsGrams: 7.7}
	got, err := RescaleItem(item, 100)
	if err != nil {
		t.Fatalf("RescaleItem: %v", err)
	}
	if got.ProteinGrams != 3.7 { // 3.3*100/90 = 3.666…
		t.Errorf("ProteinGrams = %v, want 3.7", got.ProteinGrams)
	}
	if got.Calories != 111 { // 111.11… rounds to whole kcal
		t.Errorf("Calories = %v, want 111", got.Calories)
	}
}

func TestRescaleItemGuards(t *testing.T) {
	if _, err := RescaleItem(models.FoodItem{WeightGrams: 0, Calories: 100}, 50); err == nil {
		t.Error("expected error for zero base weight")
	}
	if _, err := RescaleItem(models.FoodItem{WeightGrams: 100, Calories: 100}, 0); err == nil {
		t.Error("expected error for zero target weight")
	}
	if _, err := RescaleItem(models.FoodItem{WeightGrams: 100, Calories: 100}, -5); err == nil {
		t.Error("expected error for negative target weight")
	}
}

func TestMealTotal(t *testing.T) {
	if got := MealTotal(nil); got != 0 {
		t.Errorf("MealTotal(nil) = %d, want 0", got)
	}
	items := []models.FoodItem{
		{Calories: 120},
		{Calories: 80},
		{Calories: 45},
	}
	if got := MealTotal(items); got != 245 {
		t.Errorf("MealTotal = %d, want 245", got)
	}
}

func TestBMI(t *testing.T) {
	bmi, err := BMI(175, 70)
	if err != nil {
		t.Fatalf("BMI: %v", err)
	}
	if bmi < 22.8 || bmi > 22.9 {
		t.Errorf("BMI = %v, want ~22.86", bmi)
	}
	if got := BMICategory(bmi); got != "Normal weight" {
		t.Errorf("BMICategory = %q", got)
	}
	if _, err := BMI(0, 70); err == nil {
		t.Error("expected error for zero height")
	}
}
