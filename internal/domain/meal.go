package domain

import (
	"context"
	"time"
)

// Meal is a logged meal with its macronutrients. IDs increase with
// insertion order, which is what "most recent" queries sort by.
type Meal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fats      float64   `json:"fats"`
	CreatedAt time.Time `json:"createdAt"`
}

// MealRepository is the port for meal persistence.
type MealRepository interface {
	AddMeal(ctx context.Context, m *Meal) (int64, error)
	// GetMeal returns (nil, nil) when the meal does not exist or belongs to another user.
	GetMeal(ctx context.Context, userID, id int64) (*Meal, error)
	// ListRecentMeals returns up to limit meals, newest first.
	ListRecentMeals(ctx context.Context, userID int64, limit int) ([]Meal, error)
	ListMeals(ctx context.Context, userID int64) ([]Meal, error)
}
