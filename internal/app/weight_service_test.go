package app_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"fittrack/internal/adapter/memory"
	"fittrack/internal/app"
	"fittrack/internal/domain"
)

func TestRecordWeight_Validation(t *testing.T) {
	repo := &mockWeightRepo{
		addFn: func(context.Context, int64, float64, string, time.Time) (int64, error) {
			t.Fatal("invalid weight must not be stored")
			return 0, nil
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})

	tests := []struct {
		name  string
		value float64
		unit  string
	}{
		{"zero value", 0, "kg"},
		{"negative value", -5, "kg"},
		{"bad unit", 80, "stones"},
		{"missing unit", 80, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RecordWeight(context.Background(), 1, tc.value, tc.unit)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRecordWeight_SyncsProfileWeight(t *testing.T) {
	entry := &domain.WeightEntry{ID: 1, Value: 80, Unit: "kg"}
	var synced float64
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, _ float64, _ string, _ time.Time) (int64, error) {
			return 1, nil
		},
		latestFn: func(_ context.Context, _ int64, _ string) (*domain.WeightEntry, error) {
			return entry, nil
		},
	}
	users := &mockUserRepo{
		updateWeightFn: func(_ context.Context, id int64, lb float64) error {
			synced = lb
			return nil
		},
	}
	svc := app.NewWeightService(repo, users)

	got, today, err := svc.RecordWeight(context.Background(), 1, 80, "kg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != entry {
		t.Errorf("expected latest entry to be returned")
	}
	if today == "" {
		t.Error("expected today to be set")
	}
	if math.Abs(synced-176.37) > 0.01 {
		t.Errorf("profile weight should be synced in pounds, got %v", synced)
	}
}

func TestUndoLast_RefusesOnlyEntry(t *testing.T) {
	repo := &mockWeightRepo{
		countFn: func(context.Context, int64) (int, error) { return 1, nil },
		deleteFn: func(context.Context, int64) (bool, error) {
			t.Fatal("the only entry must not be deleted")
			return false, nil
		},
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})

	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if !errors.Is(err, app.ErrLastWeightEntry) {
		t.Fatalf("expected ErrLastWeightEntry, got %v", err)
	}
	if deleted {
		t.Error("nothing should be reported as deleted")
	}
}

func TestUndoLast_NoEntries(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, &mockUserRepo{})
	deleted, entry, _, err := svc.UndoLast(context.Background(), 1)
	if err != nil || deleted || entry != nil {
		t.Errorf("expected no-op, got deleted=%v entry=%v err=%v", deleted, entry, err)
	}
}

func TestUndoLast_ResyncsProfileWeight(t *testing.T) {
	var synced float64
	repo := &mockWeightRepo{
		countFn:  func(context.Context, int64) (int, error) { return 3, nil },
		deleteFn: func(context.Context, int64) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.WeightEntry, error) {
			if limit != 1 {
				t.Errorf("expected limit 1, got %d", limit)
			}
			return []domain.WeightEntry{{ID: 2, Value: 190, Unit: "lb"}}, nil
		},
	}
	users := &mockUserRepo{
		updateWeightFn: func(_ context.Context, _ int64, lb float64) error {
			synced = lb
			return nil
		},
	}
	svc := app.NewWeightService(repo, users)

	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}
	if synced != 190 {
		t.Errorf("profile weight should follow the new latest entry, got %v", synced)
	}
}

func TestUndoLast_DeleteRefusedReportsLastEntry(t *testing.T) {
	repo := &mockWeightRepo{
		countFn:  func(context.Context, int64) (int, error) { return 2, nil },
		deleteFn: func(context.Context, int64) (bool, error) { return false, nil },
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})

	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if !errors.Is(err, app.ErrLastWeightEntry) {
		t.Fatalf("expected ErrLastWeightEntry, got %v", err)
	}
	if deleted {
		t.Error("nothing should be reported as deleted")
	}
}

func TestUndoLast_TodayLookupError(t *testing.T) {
	lookupErr := errors.New("connection reset")
	repo := &mockWeightRepo{
		countFn:  func(context.Context, int64) (int, error) { return 2, nil },
		deleteFn: func(context.Context, int64) (bool, error) { return true, nil },
		latestFn: func(context.Context, int64, string) (*domain.WeightEntry, error) { return nil, lookupErr },
	}
	svc := app.NewWeightService(repo, &mockUserRepo{})

	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected the lookup error, got %v", err)
	}
	if !deleted {
		t.Error("the delete happened and should be reported")
	}
}

// slowCountDB widens the gap between counting and deleting.
type slowCountDB struct {
	*memory.DB
}

func (db slowCountDB) CountWeightEvents(ctx context.Context, userID int64) (int, error) {
	n, err := db.DB.CountWeightEvents(ctx, userID)
	time.Sleep(5 * time.Millisecond)
	return n, err
}

func TestUndoLast_ConcurrentKeepsOneEntry(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	u, err := db.Create(ctx, &domain.User{Username: "racer", Age: 30, WeightLb: 180, HeightIn: 70, Goal: domain.GoalBalanced})
	if err != nil {
		t.Fatal(err)
	}
	start := time.Now().Add(-time.Hour)
	for i, v := range []float64{181, 180} {
		if _, err := db.AddWeightEvent(ctx, u.ID, v, domain.UnitLb, start.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}
	svc := app.NewWeightService(slowCountDB{db}, db)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		deletes int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deleted, _, _, err := svc.UndoLast(ctx, u.ID)
			if err != nil && !errors.Is(err, app.ErrLastWeightEntry) {
				t.Errorf("unexpected error: %v", err)
			}
			if deleted {
				mu.Lock()
				deletes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if deletes != 1 {
		t.Errorf("expected exactly one undo to succeed, got %d", deletes)
	}
	if n, _ := db.CountWeightEvents(ctx, u.ID); n != 1 {
		t.Errorf("expected 1 weight entry to remain, got %d", n)
	}
}

func TestWeightHistory(t *testing.T) {
	want := []domain.WeightEntry{{ID: 1}, {ID: 2}}
	repo := &mockWeightRepo{
		historyFn: func(context.Context, int64) ([]domain.WeightEntry, error) { return want, nil },
	}
	got, err := app.NewWeightService(repo, &mockUserRepo{}).History(context.Background(), 1)
	if err != nil || len(got) != 2 {
		t.Fatalf("History = %v, %v", got, err)
	}
}
