package memory

import (
	"context"
	"slices"
	"time"

	"fittrack/internal/domain"
)

const dayLayout = "2006-01-02"

func (db *DB) userWeights(userID int64) []domain.WeightEntry {
	var out []domain.WeightEntry
	for _, w := range db.weights {
		if w.UserID == userID {
			w.Day = w.CreatedAt.In(time.Local).Format(dayLayout)
			out = append(out, w)
		}
	}
	return out
}

func byCreatedAt(a, b domain.WeightEntry) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// AddWeightEvent adds a weight event.
func (db *DB) AddWeightEvent(ctx context.Context, userID int64, value float64, unit string, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightEntry{
		ID:        db.weightIDCounter,
		UserID:    userID,
		Value:     value,
		Unit:      unit,
		CreatedAt: createdAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// DeleteLatestWeightEvent deletes the user's most recent weight event unless
// it is the only one.
func (db *DB) DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx, n := -1, 0
	for i, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		n++
		if lastIdx == -1 || byCreatedAt(w, db.weights[lastIdx]) > 0 {
			lastIdx = i
		}
	}
	if n < 2 {
		return false, nil
	}
	db.weights = slices.Delete(db.weights, lastIdx, lastIdx+1)
	return true, nil
}

// LatestWeightForLocalDay returns the latest weight for the given day.
func (db *DB) LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := time.ParseInLocation(dayLayout, localDay, time.Local); err != nil {
		return nil, err
	}

	var latest *domain.WeightEntry
	for _, w := range db.userWeights(userID) {
		if w.Day != localDay {
			continue
		}
		if latest == nil || byCreatedAt(w, *latest) > 0 {
			c := w
			latest = &c
		}
	}
	return latest, nil
}

// ListRecentWeightEvents lists the most recent weight events.
func (db *DB) ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeights(userID)
	slices.SortFunc(result, func(a, b domain.WeightEntry) int { return byCreatedAt(b, a) })
	return limitTo(result, limit), nil
}

// ListWeightHistory lists every weight event, oldest first.
func (db *DB) ListWeightHistory(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeights(userID)
	slices.SortFunc(result, byCreatedAt)
	return result, nil
}

// CountWeightEvents returns how many weight events the user has.
func (db *DB) CountWeightEvents(ctx context.Context, userID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.userWeights(userID)), nil
}
