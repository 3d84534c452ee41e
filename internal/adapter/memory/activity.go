package memory

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// --- MealRepository ---

// AddMeal stores m and returns its ID.
func (db *DB) AddMeal(ctx context.Context, m *domain.Meal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.mealIDCounter++
	c := *m
	c.ID = db.mealIDCounter
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	db.meals = append(db.meals, c)
	return c.ID, nil
}

// GetMeal returns the meal with id if it belongs to userID.
func (db *DB) GetMeal(ctx context.Context, userID, id int64) (*domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, m := range db.meals {
		if m.ID == id && m.UserID == userID {
			c := m
			return &c, nil
		}
	}
	return nil, nil
}

func (db *DB) userMeals(userID int64) []domain.Meal {
	var out []domain.Meal
	for _, m := range db.meals {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	newestFirst(out, func(m domain.Meal) int64 { return m.ID })
	return out
}

// ListRecentMeals returns up to limit meals, newest first.
func (db *DB) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return limitTo(db.userMeals(userID), limit), nil
}

// ListMeals returns every meal, newest first.
func (db *DB) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.userMeals(userID), nil
}

// --- WorkoutRepository ---

// AddWorkout stores w and returns its ID.
func (db *DB) AddWorkout(ctx context.Context, w *domain.Workout) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.workoutIDCounter++
	c := *w
	c.ID = db.workoutIDCounter
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	db.workouts = append(db.workouts, c)
	return c.ID, nil
}

// ListWorkouts returns every workout, newest first.
func (db *DB) ListWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Workout
	for _, w := range db.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	newestFirst(out, func(w domain.Workout) int64 { return w.ID })
	return out, nil
}

// --- RecommendationRepository ---

// AddRecommendation stores r and returns its ID.
func (db *DB) AddRecommendation(ctx context.Context, r *domain.Recommendation) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.recIDCounter++
	c := *r
	c.ID = db.recIDCounter
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	db.recommendations = append(db.recommendations, c)
	return c.ID, nil
}

func (db *DB) userRecommendations(userID int64) []domain.Recommendation {
	var out []domain.Recommendation
	for _, r := range db.recommendations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	newestFirst(out, func(r domain.Recommendation) int64 { return r.ID })
	return out
}

// LatestRecommendation returns the newest recommendation, or nil.
func (db *DB) LatestRecommendation(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	recs := db.userRecommendations(userID)
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListRecentRecommendations returns up to limit records, newest first.
func (db *DB) ListRecentRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return limitTo(db.userRecommendations(userID), limit), nil
}

// ListRecommendations returns every record, newest first.
func (db *DB) ListRecommendations(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.userRecommendations(userID), nil
}

// SetFeedback overwrites the feedback on the user's recommendation id.
func (db *DB) SetFeedback(ctx context.Context, userID, id int64, fb domain.Feedback) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.recommendations {
		r := &db.recommendations[i]
		if r.ID == id && r.UserID == userID {
			r.Feedback = fb
			return true, nil
		}
	}
	return false, nil
}
