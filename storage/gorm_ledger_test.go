package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/models"
)

// setupLedger opens a fresh sqlite ledger in a temp directory.
func setupLedger(t *testing.T) *GormLedger {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	l := NewGormLedger(db)
	if err := l.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return l
}

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		Name:     "Linh",
		Age:      25,
		Gender:   models.GenderFemale,
		HeightCm: 160,
		WeightKg: 55,
		Goal:     models.GoalLoseWeight,
		TDEE:     1238,
	}
}

func TestProfileRoundTrip(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	if _, err := l.LoadProfile(ctx); err != ErrNoProfile {
		t.Fatalf("LoadProfile before save: err = %v, want ErrNoProfile", err)
	}

	saved := sampleProfile()
	if err := l.SaveProfile(ctx, saved); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := l.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.Name != saved.Name || got.Age != saved.Age || got.Gender != saved.Gender ||
		got.HeightCm != saved.HeightCm || got.WeightKg != saved.WeightKg ||
		got.Goal != saved.Goal || got.TDEE != saved.TDEE {
		t.Errorf("loaded profile differs: got %+v, want %+v", got, saved)
	}
}

func TestSaveProfileReplacesWholesale(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	if err := l.SaveProfile(ctx, sampleProfile()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	updated := &models.UserProfile{
		Name: "Linh", Age: 26, Gender: models.GenderFemale,
		HeightCm: 160, WeightKg: 52, Goal: models.GoalMaintain, TDEE: 1732,
	}
	if err := l.SaveProfile(ctx, updated); err != nil {
		t.Fatalf("SaveProfile (update): %v", err)
	}

	got, err := l.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.WeightKg != 52 || got.Goal != models.GoalMaintain || got.TDEE != 1732 {
		t.Errorf("profile not replaced: %+v", got)
	}

	// still exactly one row
	var count int64
	l.db.Model(&models.UserProfile{}).Count(&count)
	if count != 1 {
		t.Errorf("profile rows = %d, want 1", count)
	}
}

func mealAt(id string, ts time.Time, calories ...float64) *models.Meal {
	m := &models.Meal{ID: id, Timestamp: ts, Type: models.MealLunch}
	total := 0.0
	for i, c := range calories {
		m.Items = append(m.Items, models.FoodItem{
			ID: id + "-" + string(rune('a'+i)), Position: i,
			Name: "item", WeightGrams: 100, Calories: c,
		})
		total += c
	}
	m.TotalCalories = int(total)
	return m
}

func TestAppendAndQueryByDay(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	inDay := mealAt("m1", day.Add(12*time.Hour), 300, 200)
	atMidnight := mealAt("m2", day, 150)
	lastMs := mealAt("m3", day.Add(24*time.Hour-time.Millisecond), 90)
	nextDay := mealAt("m4", day.Add(24*time.Hour+time.Millisecond), 500)

	for _, m := range []*models.Meal{inDay, atMidnight, lastMs, nextDay} {
		if err := l.AppendMeal(ctx, m); err != nil {
			t.Fatalf("AppendMeal %s: %v", m.ID, err)
		}
	}

	got, err := l.MealsByDay(ctx, day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("MealsByDay: %v", err)
	}
	ids := map[string]bool{}
	for _, m := range got {
		ids[m.ID] = true
	}
	if len(got) != 3 || !ids["m1"] || !ids["m2"] || !ids["m3"] {
		t.Errorf("MealsByDay = %v, want m1,m2,m3", ids)
	}
	if ids["m4"] {
		t.Error("meal one millisecond past midnight leaked into the previous day")
	}

	next, err := l.MealsByDay(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("MealsByDay (next day): %v", err)
	}
	if len(next) != 1 || next[0].ID != "m4" {
		t.Errorf("next day meals = %+v, want only m4", next)
	}
}

func TestMealFieldsSurviveRoundTrip(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 14, 19, 30, 0, 0, time.Local)
	m := &models.Meal{
		ID:        "m1",
		Timestamp: ts,
		Type:      models.MealDinner,
		ImageRef:  "https://cdn.example.com/meals/m1.jpg",
		Items: []models.FoodItem{
			{ID: "i1", Position: 0, Name: "Phở bò", WeightGrams: 350, Calories: 450, ProteinGrams: 25.5, FatGrams: 12.3, CarbsGrams: 55.1},
			{ID: "i2", Position: 1, Name: "Quẩy", WeightGrams: 40, Calories: 160, ProteinGrams: 2.4, FatGrams: 9.8, CarbsGrams: 16.2},
		},
		TotalCalories: 610,
	}
	if err := l.AppendMeal(ctx, m); err != nil {
		t.Fatalf("AppendMeal: %v", err)
	}

	got, err := l.MealsByDay(ctx, ts)
	if err != nil {
		t.Fatalf("MealsByDay: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d meals, want 1", len(got))
	}
	g := got[0]
	if g.Type != models.MealDinner || g.ImageRef != m.ImageRef || g.TotalCalories != 610 {
		t.Errorf("meal fields lost: %+v", g)
	}
	if len(g.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(g.Items))
	}
	// insertion order preserved
	if g.Items[0].ID != "i1" || g.Items[1].ID != "i2" {
		t.Errorf("item order = %s,%s want i1,i2", g.Items[0].ID, g.Items[1].ID)
	}
	// macro precision to one decimal
	if g.Items[0].ProteinGrams != 25.5 || g.Items[1].FatGrams != 9.8 {
		t.Errorf("macros lost precision: %+v", g.Items)
	}
}

func TestAppendMealRequiresID(t *testing.T) {
	l := setupLedger(t)
	if err := l.AppendMeal(context.Background(), &models.Meal{}); err == nil {
		t.Error("expected error for meal without id")
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 4, 5, 0, time.Local)
	start, end := DayWindow(at)
	if start.Hour() != 0 || start.Day() != 14 {
		t.Errorf("start = %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("window length = %v", end.Sub(start))
	}
}
