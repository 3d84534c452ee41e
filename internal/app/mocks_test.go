package app_test

import (
	"context"
	"sync"
	"time"

	"fittrack/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock repositories (function-fields pattern)
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, u *domain.User) (*domain.User, error)
	updateFn        func(ctx context.Context, u *domain.User) error
	updateWeightFn  func(ctx context.Context, id int64, weightLb float64) error
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	c := *u
	c.ID = 1
	return &c, nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) UpdateWeight(ctx context.Context, id int64, weightLb float64) error {
	if m.updateWeightFn != nil {
		return m.updateWeightFn(ctx, id, weightLb)
	}
	return nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockWeightRepo struct {
	addFn     func(ctx context.Context, userID int64, v float64, u string, t time.Time) (int64, error)
	deleteFn  func(ctx context.Context, userID int64) (bool, error)
	latestFn  func(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error)
	listFn    func(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error)
	historyFn func(ctx context.Context, userID int64) ([]domain.WeightEntry, error)
	countFn   func(ctx context.Context, userID int64) (int, error)
}

func (m *mockWeightRepo) AddWeightEvent(ctx context.Context, userID int64, v float64, u string, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, v, u, t)
	}
	return 0, nil
}

func (m *mockWeightRepo) DeleteLatestWeightEvent(ctx context.Context, userID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return false, nil
}

func (m *mockWeightRepo) LatestWeightForLocalDay(ctx context.Context, userID int64, day string) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightEvents(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListWeightHistory(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) CountWeightEvents(ctx context.Context, userID int64) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

type mockMealRepo struct {
	addFn    func(ctx context.Context, m *domain.Meal) (int64, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.Meal, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.Meal, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Meal, error)
}

func (m *mockMealRepo) AddMeal(ctx context.Context, meal *domain.Meal) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, meal)
	}
	return 1, nil
}

func (m *mockMealRepo) GetMeal(ctx context.Context, userID, id int64) (*domain.Meal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockMealRepo) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockMealRepo) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockWorkoutRepo struct {
	addFn  func(ctx context.Context, w *domain.Workout) (int64, error)
	listFn func(ctx context.Context, userID int64) ([]domain.Workout, error)
}

func (m *mockWorkoutRepo) AddWorkout(ctx context.Context, w *domain.Workout) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, w)
	}
	return 1, nil
}

func (m *mockWorkoutRepo) ListWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockRecommendationRepo struct {
	addFn         func(ctx context.Context, r *domain.Recommendation) (int64, error)
	latestFn      func(ctx context.Context, userID int64) (*domain.Recommendation, error)
	recentFn      func(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error)
	listFn        func(ctx context.Context, userID int64) ([]domain.Recommendation, error)
	setFeedbackFn func(ctx context.Context, userID, id int64, fb domain.Feedback) (bool, error)
}

func (m *mockRecommendationRepo) AddRecommendation(ctx context.Context, r *domain.Recommendation) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, r)
	}
	return 1, nil
}

func (m *mockRecommendationRepo) LatestRecommendation(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecommendationRepo) ListRecentRecommendations(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockRecommendationRepo) ListRecommendations(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecommendationRepo) SetFeedback(ctx context.Context, userID, id int64, fb domain.Feedback) (bool, error) {
	if m.setFeedbackFn != nil {
		return m.setFeedbackFn(ctx, userID, id, fb)
	}
	return true, nil
}

// recordingLocker counts Lock calls and tracks whether a holder is active.
type recordingLocker struct {
	mu      sync.Mutex
	keys    []string
	held    bool
	lockErr error
}

func (l *recordingLocker) Lock(_ context.Context, key string) (func(), error) {
	if l.lockErr != nil {
		return nil, l.lockErr
	}
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.held = true
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.held = false
		l.mu.Unlock()
	}, nil
}

type mockFoodSearcher struct {
	searchFn func(ctx context.Context, query string, max int) ([]domain.FoodItem, error)
}

func (m *mockFoodSearcher) SearchFoods(ctx context.Context, query string, max int) ([]domain.FoodItem, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, max)
	}
	return nil, nil
}
