package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"fittrack/internal/domain"
	"fittrack/internal/logging"
	"fittrack/internal/metrics"
	"fittrack/internal/recommend"
)

var (
	// ErrInvalidFeedback indicates a feedback status other than followed or skipped.
	ErrInvalidFeedback = errors.New(`feedback must be "followed" or "skipped"`)
	// ErrProfileIncomplete is returned until the user has set age, weight
	// and height.
	ErrProfileIncomplete = errors.New("profile incomplete: set age, weight and height first")
)

const (
	defaultRecommendationMaxAge = time.Hour
	recentWindow                = 3
)

// RecommendationService builds engine input from stored data, persists the
// outcome and records feedback.
type RecommendationService struct {
	users   domain.UserRepository
	weights domain.WeightRepository
	meals   domain.MealRepository
	recs    domain.RecommendationRepository
	engine  *recommend.Engine
	locker  domain.Locker
	maxAge  time.Duration
}

// NewRecommendationService creates a RecommendationService. Generation is
// serialized per user through locker.
func NewRecommendationService(
	users domain.UserRepository,
	weights domain.WeightRepository,
	meals domain.MealRepository,
	recs domain.RecommendationRepository,
	engine *recommend.Engine,
	locker domain.Locker,
) *RecommendationService {
	return &RecommendationService{
		users:   users,
		weights: weights,
		meals:   meals,
		recs:    recs,
		engine:  engine,
		locker:  locker,
		maxAge:  defaultRecommendationMaxAge,
	}
}

// WithMaxAge sets how long Current reuses the latest recommendation.
func (s *RecommendationService) WithMaxAge(d time.Duration) *RecommendationService {
	s.maxAge = d
	return s
}

// snapshot is everything the engine reads for one user.
type snapshot struct {
	user    *domain.User
	weights []domain.WeightEntry
	meals   []domain.Meal
	recent  []domain.Recommendation
	all     []domain.Recommendation
}

func (s *RecommendationService) load(ctx context.Context, userID int64) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.users.GetByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			return ErrUserNotFound
		}
		snap.user = u
		return nil
	})
	g.Go(func() error {
		w, err := s.weights.ListWeightHistory(gctx, userID)
		if err != nil {
			return fmt.Errorf("load weight history: %w", err)
		}
		snap.weights = w
		return nil
	})
	g.Go(func() error {
		m, err := s.meals.ListRecentMeals(gctx, userID, recentWindow)
		if err != nil {
			return fmt.Errorf("load recent meals: %w", err)
		}
		snap.meals = m
		return nil
	})
	g.Go(func() error {
		r, err := s.recs.ListRecentRecommendations(gctx, userID, recentWindow)
		if err != nil {
			return fmt.Errorf("load recent recommendations: %w", err)
		}
		snap.recent = r
		return nil
	})
	g.Go(func() error {
		r, err := s.recs.ListRecommendations(gctx, userID)
		if err != nil {
			return fmt.Errorf("load recommendation history: %w", err)
		}
		snap.all = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (snap *snapshot) input() recommend.Input {
	in := recommend.Input{Profile: snap.user.Profile()}
	for _, w := range snap.weights {
		in.Weights = append(in.Weights, recommend.WeightPoint{WeightLb: w.Pounds(), At: w.CreatedAt})
	}
	for _, m := range snap.meals {
		in.RecentMeals = append(in.RecentMeals, recommend.MacroSample{
			Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats,
		})
	}
	for _, r := range snap.recent {
		in.RecentRecommendations = append(in.RecentRecommendations, recommend.Shown{Meal: r.Meal, Workout: r.Workout})
	}
	for _, r := range snap.all {
		in.History = append(in.History, recommend.Feedback{Meal: r.Meal, Workout: r.Workout, Status: r.Feedback})
	}
	return in
}

func (s *RecommendationService) lock(ctx context.Context, userID int64) (func(), error) {
	unlock, err := s.locker.Lock(ctx, "recommend:"+strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, fmt.Errorf("acquire recommendation lock: %w", err)
	}
	return unlock, nil
}

// Generate computes and stores a new recommendation for the user.
func (s *RecommendationService) Generate(ctx context.Context, userID int64) (*domain.Recommendation, *recommend.Analysis, error) {
	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()
	return s.generateLocked(ctx, userID)
}

// generateLocked must run while the user's recommendation lock is held.
func (s *RecommendationService) generateLocked(ctx context.Context, userID int64) (*domain.Recommendation, *recommend.Analysis, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !snap.user.ProfileComplete() {
		return nil, nil, ErrProfileIncomplete
	}

	res := s.engine.Recommend(snap.input())

	rec := &domain.Recommendation{
		UserID:    userID,
		Meal:      res.Meal,
		Workout:   res.Workout,
		TrendNote: res.TrendNote,
		CreatedAt: time.Now(),
	}
	id, err := s.recs.AddRecommendation(ctx, rec)
	if err != nil {
		return nil, nil, fmt.Errorf("store recommendation: %w", err)
	}
	rec.ID = id

	goal, _ := domain.ParseGoal(string(snap.user.Goal))
	metrics.RecordRecommendation(string(goal), res.Analysis.Branch)
	logging.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("recommendation_id", id).
		Str("goal", string(goal)).
		Str("branch", res.Analysis.Branch).
		Int("tdee", res.Analysis.TDEE).
		Strs("advisories", res.Analysis.Advisories).
		Msg("recommendation generated")

	return rec, &res.Analysis, nil
}

// Current returns the latest recommendation if it is younger than the
// configured max age, and generates a new one otherwise.
func (s *RecommendationService) Current(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	if latest, err := s.fresh(ctx, userID); latest != nil || err != nil {
		return latest, err
	}

	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Another request may have generated one while this one waited.
	if latest, err := s.fresh(ctx, userID); latest != nil || err != nil {
		return latest, err
	}
	rec, _, err := s.generateLocked(ctx, userID)
	return rec, err
}

// fresh returns the latest recommendation when it is younger than maxAge.
func (s *RecommendationService) fresh(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	latest, err := s.recs.LatestRecommendation(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil && time.Since(latest.CreatedAt) < s.maxAge {
		return latest, nil
	}
	return nil, nil
}

// History returns every recommendation for the user, newest first.
func (s *RecommendationService) History(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	return s.recs.ListRecommendations(ctx, userID)
}

// SubmitFeedback records whether the user followed or skipped a
// recommendation. Later feedback replaces earlier feedback.
func (s *RecommendationService) SubmitFeedback(ctx context.Context, userID, recID int64, status string) error {
	fb := domain.Feedback(status)
	if fb != domain.FeedbackFollowed && fb != domain.FeedbackSkipped {
		return ErrInvalidFeedback
	}
	ok, err := s.recs.SetFeedback(ctx, userID, recID, fb)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	metrics.RecordFeedback(status)
	return nil
}
