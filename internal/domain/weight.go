package domain

import (
	"context"
	"time"
)

// WeightEntry represents a single weight measurement.
type WeightEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Day       string    `json:"day"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pounds returns the entry's value in pounds.
func (e WeightEntry) Pounds() float64 {
	return ConvertWeight(e.Value, e.Unit, UnitLb)
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeightEvent(ctx context.Context, userID int64, value float64, unit string, createdAt time.Time) (int64, error)
	// DeleteLatestWeightEvent removes the newest entry only while another
	// entry remains, as a single atomic step. It reports whether a row was
	// deleted.
	DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error)
	LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*WeightEntry, error)
	// ListRecentWeightEvents returns up to limit entries, newest first.
	ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
	// ListWeightHistory returns every entry for the user, oldest first.
	ListWeightHistory(ctx context.Context, userID int64) ([]WeightEntry, error)
	CountWeightEvents(ctx context.Context, userID int64) (int, error)
}
