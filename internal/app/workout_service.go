package app

import (
	"context"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/validation"
)

// WorkoutInput is a workout as entered by the user.
type WorkoutInput struct {
	Type           string `json:"type" validate:"required,oneof=Cardio Strength Flexibility HIIT Other"`
	DurationMin    int    `json:"durationMin" validate:"gte=1,lte=1440"`
	CaloriesBurned int    `json:"caloriesBurned" validate:"gte=1,lte=20000"`
}

// WorkoutService logs and lists workouts.
type WorkoutService struct {
	repo domain.WorkoutRepository
}

// NewWorkoutService creates a WorkoutService.
func NewWorkoutService(repo domain.WorkoutRepository) *WorkoutService {
	return &WorkoutService{repo: repo}
}

// Log stores a new workout.
func (s *WorkoutService) Log(ctx context.Context, userID int64, in WorkoutInput) (*domain.Workout, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	w := &domain.Workout{
		UserID:         userID,
		Type:           in.Type,
		DurationMin:    in.DurationMin,
		CaloriesBurned: in.CaloriesBurned,
		CreatedAt:      time.Now(),
	}
	id, err := s.repo.AddWorkout(ctx, w)
	if err != nil {
		return nil, err
	}
	w.ID = id
	return w, nil
}

// List returns every workout, newest first.
func (s *WorkoutService) List(ctx context.Context, userID int64) ([]domain.Workout, error) {
	return s.repo.ListWorkouts(ctx, userID)
}
