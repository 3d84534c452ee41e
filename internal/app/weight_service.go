package app

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/validation"
)

// ErrLastWeightEntry is returned when undo would remove a user's only
// weight entry.
var ErrLastWeightEntry = errors.New("cannot delete the only weight entry")

type weightInput struct {
	Value float64 `json:"value" validate:"gt=0,lte=1500"`
	Unit  string  `json:"unit" validate:"required,unit"`
}

// WeightService encapsulates weight-tracking use cases. It keeps the
// profile weight in sync with the newest entry.
type WeightService struct {
	repo  domain.WeightRepository
	users domain.UserRepository
}

// NewWeightService creates a WeightService backed by the given repositories.
func NewWeightService(repo domain.WeightRepository, users domain.UserRepository) *WeightService {
	return &WeightService{repo: repo, users: users}
}

// GetTodayWeight returns the latest weight entry for the given local day.
func (s *WeightService) GetTodayWeight(ctx context.Context, userID int64, today string) (*domain.WeightEntry, error) {
	return s.repo.LatestWeightForLocalDay(ctx, userID, today)
}

// RecordWeight validates and stores a new weight measurement, returning the
// latest entry for today after the insert.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, value float64, unit string) (*domain.WeightEntry, string, error) {
	if err := validation.Struct(weightInput{Value: value, Unit: unit}); err != nil {
		return nil, "", err
	}
	now := time.Now()
	today := localDay(now)
	if _, err := s.repo.AddWeightEvent(ctx, userID, value, unit, now); err != nil {
		return nil, today, err
	}
	if err := s.users.UpdateWeight(ctx, userID, domain.ConvertWeight(value, unit, domain.UnitLb)); err != nil {
		return nil, today, err
	}
	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	return entry, today, err
}

// ListRecent returns the most recent weight events up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	return s.repo.ListRecentWeightEvents(ctx, userID, limit)
}

// History returns every weight event, oldest first.
func (s *WeightService) History(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	return s.repo.ListWeightHistory(ctx, userID)
}

// UndoLast deletes the most recent weight event and returns the new latest
// entry for today. The only remaining entry is never deleted.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, *domain.WeightEntry, string, error) {
	today := localDay(time.Now())

	n, err := s.repo.CountWeightEvents(ctx, userID)
	if err != nil {
		return false, nil, today, err
	}
	if n == 0 {
		return false, nil, today, nil
	}
	if n == 1 {
		return false, nil, today, ErrLastWeightEntry
	}

	// A concurrent undo may have removed the other entries since the count.
	deleted, err := s.repo.DeleteLatestWeightEvent(ctx, userID)
	if err != nil {
		return false, nil, today, err
	}
	if !deleted {
		return false, nil, today, ErrLastWeightEntry
	}

	latest, err := s.repo.ListRecentWeightEvents(ctx, userID, 1)
	if err != nil {
		return true, nil, today, err
	}
	if len(latest) > 0 {
		if err := s.users.UpdateWeight(ctx, userID, latest[0].Pounds()); err != nil {
			return true, nil, today, err
		}
	}

	entry, err := s.repo.LatestWeightForLocalDay(ctx, userID, today)
	if err != nil {
		return true, nil, today, err
	}
	return true, entry, today, nil
}

func localDay(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
