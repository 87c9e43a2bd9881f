package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"backend/models"
	"backend/storage"
)

// DaySummary is the dashboard read model for one calendar day. It is
// recomputed from the ledger on every query and never cached.
type DaySummary struct {
	Date              string        `json:"date"`
	TDEE              int           `json:"tdee"`
	ConsumedCalories  int           `json:"consumed_calories"`
	RemainingCalories int           `json:"remaining_calories"`
	OverBudget        bool          `json:"over_budget"`
	Meals             []models.Meal `json:"meals"`
}

// DayService projects the profile and the day's meals into the summary.
type DayService struct {
	ledger storage.Ledger
}

func NewDayService(ledger storage.Ledger) *DayService {
	return &DayService{ledger: ledger}
}

// BuildDaySummary is the pure projection: consumed is the sum of frozen
// meal totals, remaining clamps at zero, and meals come back most recent
// first regardless of store order.
func BuildDaySummary(profile *models.UserProfile, date time.Time, meals []models.Meal) DaySummary {
	consumed := 0
	for _, m := range meals {
		consumed += m.TotalCalories
	}

	sorted := make([]models.Meal, len(meals))
	copy(sorted, meals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	remaining := profile.TDEE - consumed
	if remaining < 0 {
		remaining = 0
	}

	return DaySummary{
		Date:              date.Format("2006-01-02"),
		TDEE:              profile.TDEE,
		ConsumedCalories:  consumed,
		RemainingCalories: remaining,
		OverBudget:        consumed > profile.TDEE,
		Meals:             sorted,
	}
}

// ForDate reads through the ledger and recomputes the summary for the
// given calendar day.
func (s *DayService) ForDate(ctx context.Context, date time.Time) (*DaySummary, error) {
	profile, err := s.ledger.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.ledger.MealsByDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("build day summary: %w", err)
	}
	summary := BuildDaySummary(profile, date, meals)
	return &summary, nil
}

// Today is ForDate at the current local day.
func (s *DayService) Today(ctx context.Context) (*DaySummary, error) {
	return s.ForDate(ctx, time.Now())
}

// History returns summaries for the trailing days up to and including
// today, oldest first.
func (s *DayService) History(ctx context.Context, days int) ([]DaySummary, error) {
	if days < 1 {
		days = 7
	}
	profile, err := s.ledger.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DaySummary, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		meals, err := s.ledger.MealsByDay(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("build history: %w", err)
		}
		out = append(out, BuildDaySummary(profile, date, meals))
	}
	return out, nil
}
