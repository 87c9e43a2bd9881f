package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend/models"
	"backend/nutrition"
	"backend/storage"
)

// ErrValidation marks rejected onboarding input; controllers map it to
// a 400 instead of a server error.
var ErrValidation = errors.New("invalid profile input")

// ProfileInput carries validated-enum onboarding fields; numeric
// validation happens here so an invalid profile is never persisted.
type ProfileInput struct {
	Name     string
	Age      int
	Gender   models.Gender
	Goal     models.Goal
	HeightCm float64
	WeightKg float64
}

type ProfileService struct {
	ledger storage.Ledger
}

func NewProfileService(ledger storage.Ledger) *ProfileService {
	return &ProfileService{ledger: ledger}
}

// Save validates the input, derives TDEE exactly once, and replaces the
// stored profile wholesale. Used for both onboarding and later edits.
func (s *ProfileService) Save(ctx context.Context, in ProfileInput) (*models.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	tdee, err := nutrition.ComputeTDEE(in.WeightKg, in.HeightCm, in.Age, in.Gender, in.Goal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	profile := &models.UserProfile{
		Name:     name,
		Age:      in.Age,
		Gender:   in.Gender,
		HeightCm: in.HeightCm,
		WeightKg: in.WeightKg,
		Goal:     in.Goal,
		TDEE:     tdee,
	}
	if err := s.ledger.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns the stored profile; storage.ErrNoProfile means onboarding
// has not completed yet.
func (s *ProfileService) Get(ctx context.Context) (*models.UserProfile, error) {
	return s.ledger.LoadProfile(ctx)
}
