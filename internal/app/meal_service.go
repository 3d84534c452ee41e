package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/validation"
)

// ErrNotFound indicates that a record does not exist or is not owned by the caller.
var ErrNotFound = errors.New("not found")

const defaultRecentMeals = 10

// MealInput is a meal as entered by the user.
type MealInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Calories float64 `json:"calories" validate:"gte=0,lte=20000"`
	Protein  float64 `json:"protein" validate:"gte=0,lte=2000"`
	Carbs    float64 `json:"carbs" validate:"gte=0,lte=2000"`
	Fats     float64 `json:"fats" validate:"gte=0,lte=2000"`
}

// MealService logs meals and lists recent ones.
type MealService struct {
	repo domain.MealRepository
}

// NewMealService creates a MealService.
func NewMealService(repo domain.MealRepository) *MealService {
	return &MealService{repo: repo}
}

// Log stores a new meal.
func (s *MealService) Log(ctx context.Context, userID int64, in MealInput) (*domain.Meal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.add(ctx, &domain.Meal{
		UserID:   userID,
		Name:     in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
	})
}

// ListRecent returns up to limit meals, newest first. A non-positive limit
// returns the last ten.
func (s *MealService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	if limit <= 0 {
		limit = defaultRecentMeals
	}
	return s.repo.ListRecentMeals(ctx, userID, limit)
}

// Reuse logs a copy of one of the user's earlier meals as eaten now.
func (s *MealService) Reuse(ctx context.Context, userID, mealID int64) (*domain.Meal, error) {
	orig, err := s.repo.GetMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	if orig == nil {
		return nil, ErrNotFound
	}
	copied := *orig
	copied.ID = 0
	return s.add(ctx, &copied)
}

func (s *MealService) add(ctx context.Context, m *domain.Meal) (*domain.Meal, error) {
	m.CreatedAt = time.Now()
	id, err := s.repo.AddMeal(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}
