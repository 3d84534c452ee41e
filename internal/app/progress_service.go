package app

import (
	"context"

	"fittrack/internal/domain"
	"fittrack/internal/recommend"
)

// Progress summarises a user's intake and weight history.
type Progress struct {
	TDEE          int               `json:"tdee"`
	MealCount     int               `json:"mealCount"`
	AverageMacros *recommend.Macros `json:"averageMacros"`
	TotalMacros   recommend.Macros  `json:"totalMacros"`
	Trend         *recommend.Trend  `json:"trend"`
	Unit          string            `json:"unit"`
	Weights       []WeightPoint     `json:"weights"`
}

// WeightPoint is one entry of the weight chart.
type WeightPoint struct {
	Label string  `json:"label"`
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// ProgressService assembles chart data for the progress view.
type ProgressService struct {
	users   domain.UserRepository
	weights domain.WeightRepository
	meals   domain.MealRepository
}

// NewProgressService creates a ProgressService backed by the given repositories.
func NewProgressService(users domain.UserRepository, weights domain.WeightRepository, meals domain.MealRepository) *ProgressService {
	return &ProgressService{users: users, weights: weights, meals: meals}
}

// Get returns the user's progress with weights converted to unit.
func (s *ProgressService) Get(ctx context.Context, userID int64, unit string) (*Progress, error) {
	if !domain.ValidUnit(unit) {
		return nil, ErrInvalidUnit
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	meals, err := s.meals.ListMeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.weights.ListWeightHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Progress{
		TDEE:      recommend.EstimateTDEE(user.Profile()),
		MealCount: len(meals),
		Unit:      unit,
		Weights:   make([]WeightPoint, 0, len(history)),
	}

	samples := make([]recommend.MacroSample, len(meals))
	for i, m := range meals {
		samples[i] = recommend.MacroSample{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats}
		p.TotalMacros.Calories += m.Calories
		p.TotalMacros.Protein += m.Protein
		p.TotalMacros.Carbs += m.Carbs
		p.TotalMacros.Fats += m.Fats
	}
	p.AverageMacros = recommend.AverageMacros(samples)

	points := make([]recommend.WeightPoint, len(history))
	for i, e := range history {
		points[i] = recommend.WeightPoint{WeightLb: e.Pounds(), At: e.CreatedAt}
		p.Weights = append(p.Weights, WeightPoint{
			Label: e.CreatedAt.Format("Jan 02"),
			Day:   e.Day,
			Value: domain.ConvertWeight(e.Value, e.Unit, unit),
		})
	}
	p.Trend = recommend.AnalyzeTrend(points)

	return p, nil
}
