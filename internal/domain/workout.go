package domain

import (
	"context"
	"time"
)

// WorkoutTypes lists the accepted workout categories.
var WorkoutTypes = []string{"Cardio", "Strength", "Flexibility", "HIIT", "Other"}

// Workout is a logged training session.
type Workout struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Type           string    `json:"type"`
	DurationMin    int       `json:"durationMin"`
	CaloriesBurned int       `json:"caloriesBurned"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WorkoutRepository is the port for workout persistence.
type WorkoutRepository interface {
	AddWorkout(ctx context.Context, w *Workout) (int64, error)
	// ListWorkouts returns every workout for the user, newest first.
	ListWorkouts(ctx context.Context, userID int64) ([]Workout, error)
}
