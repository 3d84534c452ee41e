package postgres

import "fittrack/internal/domain"

var (
	_ domain.UserRepository           = (*DB)(nil)
	_ domain.WeightRepository         = (*DB)(nil)
	_ domain.MealRepository           = (*DB)(nil)
	_ domain.WorkoutRepository        = (*DB)(nil)
	_ domain.RecommendationRepository = (*DB)(nil)
	_ domain.SessionRepository        = (*SessionRepo)(nil)
)
