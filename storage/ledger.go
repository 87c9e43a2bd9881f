// Package storage is the durable ledger behind the app: the singleton
// user profile and the append-only meal log.
package storage

import (
	"context"
	"errors"
	"time"

	"backend/models"
)

// ErrNoProfile is returned by LoadProfile before onboarding has completed.
var ErrNoProfile = errors.New("no profile stored")

// Ledger is the storage port injected into the services. Profile writes
// replace the whole record atomically; meals are append-only and are
// never updated or removed.
type Ledger interface {
	// SaveProfile overwrites the single stored profile.
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	// LoadProfile returns the stored profile or ErrNoProfile.
	LoadProfile(ctx context.Context) (*models.UserProfile, error)
	// AppendMeal adds a committed meal and its items in one atomic write.
	AppendMeal(ctx context.Context, m *models.Meal) error
	// MealsByDay returns every meal whose timestamp falls on the calendar
	// day of date, in local time, in no particular order. Item order
	// within each meal is preserved.
	MealsByDay(ctx context.Context, date time.Time) ([]models.Meal, error)
}

// DayWindow returns [midnight, nextMidnight) for the calendar day of t
// in t's location. The half-open upper bound is equivalent to a closed
// 23:59:59.999 bound at the precision timestamps carry.
func DayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
