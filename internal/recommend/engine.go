package recommend

import (
	"strings"

	"fittrack/internal/domain"
)

const recentRecommendationWindow = 3

// Shown is a previously displayed meal/workout pair.
type Shown struct {
	Meal    string
	Workout string
}

// Input is the snapshot of user data a recommendation is computed from.
type Input struct {
	Profile domain.Profile
	// Weights is ordered oldest first.
	Weights []WeightPoint
	// RecentMeals is ordered newest first; only the first three are used.
	RecentMeals []MacroSample
	// RecentRecommendations is ordered newest first; only the first three are used.
	RecentRecommendations []Shown
	// History is every past recommendation with its feedback.
	History []Feedback
}

// Analysis records the intermediate values behind a Result.
type Analysis struct {
	TDEE              int      `json:"tdee"`
	Trend             *Trend   `json:"trend,omitempty"`
	Macros            *Macros  `json:"macros,omitempty"`
	Branch            string   `json:"branch,omitempty"`
	Advisories        []string `json:"advisories,omitempty"`
	MealPool          []string `json:"-"`
	WorkoutPool       []string `json:"-"`
	MealCandidates    []string `json:"-"`
	WorkoutCandidates []string `json:"-"`
}

// Result is the engine's output.
type Result struct {
	Meal      string
	Workout   string
	TrendNote string
	Analysis  Analysis
}

// Engine computes recommendations. It is safe for concurrent use as long as
// its Picker is.
type Engine struct {
	picker Picker
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker sets the source of randomness for the final draw.
func WithPicker(p Picker) Option {
	return func(e *Engine) { e.picker = p }
}

// New creates an Engine. Without options it draws from a time-seeded source.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.picker == nil {
		e.picker = NewRandPicker(0)
	}
	return e
}

// Recommend selects one meal and one workout for in. It never fails: every
// missing input skips the step that needs it.
func (e *Engine) Recommend(in Input) Result {
	pol := policyFor(in.Profile.Goal)
	meals := newLabelSet(pol.meals...)
	workouts := newLabelSet(pol.workouts...)

	a := Analysis{TDEE: EstimateTDEE(in.Profile)}
	var note string

	if trend := AnalyzeTrend(in.Weights); trend != nil {
		a.Trend = trend
		if rule, ok := matchRule(pol.rules, trend.RatePerWeek); ok {
			meals = meals.with(rule.meals...)
			workouts = workouts.with(rule.workouts...)
			note = rule.note(*trend)
			a.Branch = rule.name
		}
	}

	shownMeals, shownWorkouts := recentlyShown(in.RecentRecommendations)
	filteredMeals := meals.without(shownMeals)
	filteredWorkouts := workouts.without(shownWorkouts)

	mealSignals, workoutSignals := aggregateFeedback(in.History)
	meals = mealSignals.apply(meals)
	workouts = workoutSignals.apply(workouts)

	recent := in.RecentMeals
	if len(recent) > recentMealWindow {
		recent = recent[:recentMealWindow]
	}
	if m := AverageMacros(recent); m != nil {
		a.Macros = m
		for _, adv := range macroAdvisories(in.Profile.Goal, *m, a.TDEE) {
			meals = meals.with(adv.meals...)
			note = joinNote(note, adv.text)
			a.Advisories = append(a.Advisories, adv.name)
		}
	}

	a.MealPool = meals.list()
	a.WorkoutPool = workouts.list()
	a.MealCandidates = orFallback(filteredMeals, meals).list()
	a.WorkoutCandidates = orFallback(filteredWorkouts, workouts).list()

	return Result{
		Meal:      pick(e.picker, a.MealCandidates),
		Workout:   pick(e.picker, a.WorkoutCandidates),
		TrendNote: note,
		Analysis:  a,
	}
}

func recentlyShown(recs []Shown) (meals, workouts labelSet) {
	if len(recs) > recentRecommendationWindow {
		recs = recs[:recentRecommendationWindow]
	}
	for _, r := range recs {
		meals = meals.with(r.Meal)
		workouts = workouts.with(r.Workout)
	}
	return meals, workouts
}

// orFallback returns filtered unless it is empty, in which case full.
func orFallback(filtered, full labelSet) labelSet {
	if len(filtered) == 0 {
		return full
	}
	return filtered
}

// joinNote appends extra to note, separated by a single space.
func joinNote(note, extra string) string {
	if note == "" {
		return extra
	}
	return strings.TrimRight(note, " ") + " " + extra
}
