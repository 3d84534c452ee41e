package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/domain"
)

const dayLayout = "2006-01-02"

// AddWeightEvent inserts a new weight event.
func (d *DB) AddWeightEvent(ctx context.Context, userID int64, value float64, unit string, createdAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_events(user_id, value, unit, created_at) VALUES($1, $2, $3, $4) RETURNING id;",
		userID, value, unit, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteLatestWeightEvent removes the user's most recent weight event unless
// it is the only one. Concurrent callers target the same row, so at most one
// of them deletes it.
func (d *DB) DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`DELETE FROM weight_events WHERE id = (
			SELECT id FROM weight_events WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1
		) AND (SELECT count(*) FROM weight_events WHERE user_id = $1) > 1;`, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LatestWeightForLocalDay returns the most recent weight entry for a local calendar day.
func (d *DB) LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*domain.WeightEntry, error) {
	dayStart, err := time.ParseInLocation(dayLayout, localDay, time.Local)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	row := d.sql.QueryRowContext(ctx,
		`SELECT id, user_id, value, unit, created_at FROM weight_events
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at DESC, id DESC LIMIT 1;`,
		userID, dayStart.UTC(), dayEnd.UTC(),
	)

	var e domain.WeightEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Value, &e.Unit, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.Day = localDay
	return &e, nil
}

// ListRecentWeightEvents returns the most recent weight events up to limit.
func (d *DB) ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	return d.queryWeights(ctx,
		`SELECT id, user_id, value, unit, created_at FROM weight_events
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2;`, userID, limit)
}

// ListWeightHistory returns every weight event, oldest first.
func (d *DB) ListWeightHistory(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	return d.queryWeights(ctx,
		`SELECT id, user_id, value, unit, created_at FROM weight_events
		 WHERE user_id = $1 ORDER BY created_at, id;`, userID)
}

// CountWeightEvents returns how many weight events the user has.
func (d *DB) CountWeightEvents(ctx context.Context, userID int64) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM weight_events WHERE user_id = $1;", userID).Scan(&n)
	return n, err
}

func (d *DB) queryWeights(ctx context.Context, query string, args ...any) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Value, &e.Unit, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Day = e.CreatedAt.In(time.Local).Format(dayLayout)
		out = append(out, e)
	}
	return out, rows.Err()
}
