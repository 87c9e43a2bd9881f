package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"backend/models"
)

// GormLedger implements Ledger on a GORM database (sqlite by default,
// postgres in the teacher-style server deployment).
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Migrate creates the schema (profile, meals, items, push endpoint).
func (l *GormLedger) Migrate() error {
	if err := l.db.AutoMigrate(&models.UserProfile{}, &models.Meal{}, &models.FoodItem{}, &models.PushEndpoint{}); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

// SaveProfile replaces the singleton row in a single transaction so an
// interrupted save never leaves a partial profile behind.
func (l *GormLedger) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	p.ID = models.ProfileKey
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		err := tx.First(&existing, models.ProfileKey).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(p).Error
		case err != nil:
			return err
		}
		return tx.Model(&existing).Select("*").Omit("id").Updates(p).Error
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (l *GormLedger) LoadProfile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	err := l.db.WithContext(ctx).First(&p, models.ProfileKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

// AppendMeal inserts the meal row and its item rows in one transaction:
// the meal either lands whole or not at all.
func (l *GormLedger) AppendMeal(ctx context.Context, m *models.Meal) error {
	if m.ID == "" {
		return errors.New("meal has no id")
	}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return fmt.Errorf("append meal %s: %w", m.ID, err)
	}
	return nil
}

func (l *GormLedger) MealsByDay(ctx context.Context, date time.Time) ([]models.Meal, error) {
	start, end := DayWindow(date)
	var meals []models.Meal
	err := l.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("query meals for %s: %w", start.Format("2006-01-02"), err)
	}
	return meals, nil
}
