package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"backend/models"
	"backend/nutrition"
	"backend/storage"
)

var (
	ErrNoDraft        = errors.New("no meal draft in progress")
	ErrDraftCommitted = errors.New("meal already committed")
	ErrItemNotFound   = errors.New("item not found in draft")
)

// Draft is the single in-progress meal: proposed items from the analyzer
// (or added by hand) that the user edits before committing. A draft is
// mutable until Commit freezes it into a Meal; after that every edit
// returns ErrDraftCommitted.
type Draft struct {
	mealType     models.MealType
	items        []models.FoodItem
	imageDataURI string
	committed    bool
}

// NewDraft builds a draft from analyzer estimates. Each item gets a fresh
// id; weights are clamped to at least 1g so a later rescale can never
// divide by zero, and calories are normalized to whole kcal. The meal
// type default comes from the hour of now and is not re-evaluated.
func NewDraft(estimates []FoodEstimate, now time.Time) *Draft {
	d := &Draft{mealType: models.DefaultMealTypeFor(now)}
	for _, e := range estimates {
		d.items = append(d.items, normalizeItem(e))
	}
	return d
}

func normalizeItem(e FoodEstimate) models.FoodItem {
	return models.FoodItem{
		ID:           uuid.NewString(),
		Name:         e.Name,
		WeightGrams:  math.Max(1, e.WeightGrams),
		Calories:     math.Max(0, math.Round(e.Calories)),
		ProteinGrams: math.Max(0, e.ProteinGrams),
		FatGrams:     math.Max(0, e.FatGrams),
		CarbsGrams:   math.Max(0, e.CarbsGrams),
	}
}

func (d *Draft) Type() models.MealType { return d.mealType }

// ImageData returns the photo the draft was proposed from, for upload at
// commit time. Empty for drafts without a photo.
func (d *Draft) ImageData() string { return d.imageDataURI }

// Items returns a copy; callers cannot mutate the draft through it.
func (d *Draft) Items() []models.FoodItem {
	out := make([]models.FoodItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) SetType(t models.MealType) error {
	if d.committed {
		return ErrDraftCommitted
	}
	d.mealType = t
	return nil
}

func (d *Draft) RenameItem(id, name string) error {
	if d.committed {
		return ErrDraftCommitted
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i].Name = name
			return nil
		}
	}
	return ErrItemNotFound
}

// SetItemWeight rescales the item's calories and macros proportionally
// to the new weight.
func (d *Draft) SetItemWeight(id string, weightGrams float64) error {
	if d.committed {
		return ErrDraftCommitted
	}
	for i := range d.items {
		if d.items[i].ID == id {
			scaled, err := nutrition.RescaleItem(d.items[i], weightGrams)
			if err != nil {
				return err
			}
			d.items[i] = scaled
			return nil
		}
	}
	return ErrItemNotFound
}

func (d *Draft) RemoveItem(id string) error {
	if d.committed {
		return ErrDraftCommitted
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// AddItem appends a neutral placeholder the user is expected to overwrite.
func (d *Draft) AddItem() (models.FoodItem, error) {
	if d.committed {
		return models.FoodItem{}, ErrDraftCommitted
	}
	item := models.FoodItem{
		ID:           uuid.NewString(),
		Name:         "New item",
		WeightGrams:  100,
		Calories:     100,
		ProteinGrams: 5,
		FatGrams:     5,
		CarbsGrams:   10,
	}
	d.items = append(d.items, item)
	return item, nil
}

// freeze turns the draft into an immutable Meal. Committing an empty
// item list is allowed and yields a zero-calorie meal.
func (d *Draft) freeze(imageRef string, now time.Time) *models.Meal {
	meal := &models.Meal{
		ID:            uuid.NewString(),
		Timestamp:     now,
		Type:          d.mealType,
		ImageRef:      imageRef,
		TotalCalories: nutrition.MealTotal(d.items),
	}
	for i := range d.items {
		it := d.items[i]
		it.MealID = meal.ID
		it.Position = i
		meal.Items = append(meal.Items, it)
	}
	d.committed = true
	return meal
}

// AssemblyService runs the propose → edit → commit lifecycle for the one
// in-progress meal and writes committed meals through the ledger.
type AssemblyService struct {
	ledger   storage.Ledger
	analyzer FoodAnalyzer

	mu    sync.Mutex
	draft *Draft
}

func NewAssemblyService(ledger storage.Ledger, analyzer FoodAnalyzer) *AssemblyService {
	return &AssemblyService{ledger: ledger, analyzer: analyzer}
}

// StartDraft analyzes the photo and opens a new draft, replacing any
// abandoned one. On analysis failure no draft is opened.
func (s *AssemblyService) StartDraft(ctx context.Context, imageDataURI string) (*Draft, error) {
	estimates, err := s.analyzer.AnalyzeImage(ctx, imageDataURI)
	if err != nil {
		return nil, err
	}
	d := NewDraft(estimates, time.Now())
	d.imageDataURI = imageDataURI

	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
	return d, nil
}

// Draft returns the in-progress draft, or ErrNoDraft.
func (s *AssemblyService) Draft() (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, ErrNoDraft
	}
	return s.draft, nil
}

// Commit freezes the current draft and appends it to the ledger. The
// transition is one-way: on success the draft slot is cleared, and on a
// storage failure the draft stays editable so nothing is lost.
func (s *AssemblyService) Commit(ctx context.Context, imageRef string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, ErrNoDraft
	}
	if s.draft.committed {
		return nil, ErrDraftCommitted
	}

	meal := s.draft.freeze(imageRef, time.Now())
	if err := s.ledger.AppendMeal(ctx, meal); err != nil {
		s.draft.committed = false
		return nil, fmt.Errorf("commit meal: %w", err)
	}
	s.draft = nil
	return meal, nil
}
