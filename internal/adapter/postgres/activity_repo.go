package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/domain"
)

func createdNow(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC()
}

// AddMeal inserts m and returns its ID.
func (d *DB) AddMeal(ctx context.Context, m *domain.Meal) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO meals(user_id, name, calories, protein, carbs, fats, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		m.UserID, m.Name, m.Calories, m.Protein, m.Carbs, m.Fats, createdNow(m.CreatedAt),
	).Scan(&id)
	return id, err
}

const mealColumns = "id, user_id, name, calories, protein, carbs, fats, created_at"

func scanMeal(row interface{ Scan(...any) error }) (domain.Meal, error) {
	var m domain.Meal
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Calories, &m.Protein, &m.Carbs, &m.Fats, &m.CreatedAt)
	return m, err
}

// GetMeal returns the meal with id if it belongs to userID.
func (d *DB) GetMeal(ctx context.Context, userID, id int64) (*domain.Meal, error) {
	m, err := scanMeal(d.sql.QueryRowContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE id = $1 AND user_id = $2;", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListRecentMeals returns up to limit meals, newest first.
func (d *DB) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	return d.queryMeals(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = $1 ORDER BY id DESC LIMIT $2;", userID, limit)
}

// ListMeals returns every meal, newest first.
func (d *DB) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	return d.queryMeals(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = $1 ORDER BY id DESC;", userID)
}

func (d *DB) queryMeals(ctx context.Context, query string, args ...any) ([]domain.Meal, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddWorkout inserts w and returns its ID.
func (d *DB) AddWorkout(ctx context.Context, w *domain.Workout) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO workouts(user_id, type, duration_min, calories_burned, created_at)
		 VALUES($1, $2, $3, $4, $5) RETURNING id;`,
		w.UserID, w.Type, w.DurationMin, w.CaloriesBurned, createdNow(w.CreatedAt),
	).Scan(&id)
	return id, err
}

// ListWorkouts returns every workout, newest first.
func (d *DB) ListWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, type, duration_min, calories_burned, created_at
		 FROM workouts WHERE user_id = $1 ORDER BY id DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Type, &w.DurationMin, &w.CaloriesBurned, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AddRecommendation inserts r and returns its ID.
func (d *DB) AddRecommendation(ctx context.Context, r *domain.Recommendation) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO recommendations(user_id, meal, workout, trend_note, feedback, created_at)
		 VALUES($1, $2, $3, $4, $5, $6) RETURNING id;`,
		r.UserID, r.Meal, r.Workout, r.TrendNote, string(r.Feedback), createdNow(r.CreatedAt),
	).Scan(&id)
	return id, err
}

const recommendationColumns = "id, user_id, meal, workout, trend_note, feedback, created_at"

func scanRecommendation(row interface{ Scan(...any) error }) (domain.Recommendation, error) {
	var r domain.Recommendation
	var fb string
	err := row.Scan(&r.ID, &r.UserID, &r.Meal, &r.Workout, &r.TrendNote, &fb, &r.CreatedAt)
	r.Feedback = domain.Feedback(fb)
	return r, err
}

// LatestRecommendation returns the newest recommendation, or nil.
func (d *DB) LatestRecommendation(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	r, err := scanRecommendation(d.sql.QueryRowContext(ctx,
		"SELECT "+recommendationColumns+" FROM recommendations WHERE user_id = $1 ORDER BY id DESC LIMIT 1;", userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecentRecommendations returns up to limit records, newest first.
func (d *DB) ListRecentRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	return d.queryRecommendations(ctx,
		"SELECT "+recommendationColumns+" FROM recommendations WHERE user_id = $1 ORDER BY id DESC LIMIT $2;", userID, limit)
}

// ListRecommendations returns every record, newest first.
func (d *DB) ListRecommendations(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	return d.queryRecommendations(ctx,
		"SELECT "+recommendationColumns+" FROM recommendations WHERE user_id = $1 ORDER BY id DESC;", userID)
}

// SetFeedback overwrites the feedback on the user's recommendation id.
func (d *DB) SetFeedback(ctx context.Context, userID, id int64, fb domain.Feedback) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE recommendations SET feedback = $3 WHERE id = $1 AND user_id = $2;", id, userID, string(fb))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (d *DB) queryRecommendations(ctx context.Context, query string, args ...any) ([]domain.Recommendation, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Recommendation
	for rows.Next() {
		r, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
