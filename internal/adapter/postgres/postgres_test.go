package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"fittrack/internal/domain"
)

// openTestDB connects to the database named by FITTRACK_TEST_DATABASE_URL
// and skips the test when it is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("FITTRACK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FITTRACK_TEST_DATABASE_URL not set")
	}
	db, err := Open(context.Background(), url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB) *domain.User {
	t.Helper()
	name := fmt.Sprintf("user%d", time.Now().UnixNano())
	u, err := db.Create(context.Background(), &domain.User{
		Username: name,
		Email:    name + "@example.com",
		Age:      30,
		WeightLb: 180,
		HeightIn: 70,
		Goal:     domain.GoalCutting,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func TestIsUniqueViolation(t *testing.T) {
	if isUniqueViolation(nil) || isUniqueViolation(errors.New("x")) {
		t.Error("plain errors are not unique violations")
	}
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	got, err := db.GetByEmail(ctx, u.Email)
	if err != nil || got == nil || got.ID != u.ID || got.Goal != domain.GoalCutting {
		t.Fatalf("GetByEmail: %+v, %v", got, err)
	}

	if _, err := db.Create(ctx, &domain.User{Username: u.Username}); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}

	if err := db.UpdateWeight(ctx, u.ID, 175.5); err != nil {
		t.Fatalf("UpdateWeight: %v", err)
	}
	got, _ = db.GetByID(ctx, u.ID)
	if got.WeightLb != 175.5 {
		t.Errorf("expected 175.5, got %v", got.WeightLb)
	}

	if missing, err := db.GetByUsername(ctx, "nobody-"+u.Username); err != nil || missing != nil {
		t.Errorf("expected nil, nil for missing user, got %+v, %v", missing, err)
	}
}

func TestWeightAndRecommendationRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db)

	now := time.Now()
	_, _ = db.AddWeightEvent(ctx, u.ID, 82, "kg", now.Add(-72*time.Hour))
	if _, err := db.AddWeightEvent(ctx, u.ID, 180, "lb", now); err != nil {
		t.Fatalf("AddWeightEvent: %v", err)
	}

	history, err := db.ListWeightHistory(ctx, u.ID)
	if err != nil || len(history) != 2 || history[0].Unit != "kg" {
		t.Fatalf("ListWeightHistory: %+v, %v", history, err)
	}
	ok, err := db.DeleteLatestWeightEvent(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteLatestWeightEvent: %v, %v", ok, err)
	}
	if n, _ := db.CountWeightEvents(ctx, u.ID); n != 1 {
		t.Errorf("expected 1 weight event, got %d", n)
	}
	if ok, err := db.DeleteLatestWeightEvent(ctx, u.ID); err != nil || ok {
		t.Errorf("the only entry must not be deleted, got %v, %v", ok, err)
	}

	id, err := db.AddRecommendation(ctx, &domain.Recommendation{UserID: u.ID, Meal: "m", Workout: "w"})
	if err != nil {
		t.Fatalf("AddRecommendation: %v", err)
	}
	if ok, err := db.SetFeedback(ctx, u.ID, id, domain.FeedbackFollowed); err != nil || !ok {
		t.Fatalf("SetFeedback: %v, %v", ok, err)
	}
	latest, _ := db.LatestRecommendation(ctx, u.ID)
	if latest == nil || latest.ID != id || latest.Feedback != domain.FeedbackFollowed {
		t.Errorf("unexpected latest %+v", latest)
	}
	if ok, _ := db.SetFeedback(ctx, u.ID+1000000, id, domain.FeedbackSkipped); ok {
		t.Error("feedback on another user's recommendation must fail")
	}
}
