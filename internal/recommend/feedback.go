package recommend

import "fittrack/internal/domain"

const feedbackThreshold = 2

// Feedback is one past recommendation with the user's response.
type Feedback struct {
	Meal    string
	Workout string
	Status  domain.Feedback
}

// signals holds the labels promoted and dropped for one category.
type signals struct {
	proven     labelSet
	disfavored labelSet
}

// apply drops disfavored labels from pool and moves proven labels to the front.
func (s signals) apply(pool labelSet) labelSet {
	return pool.without(s.disfavored).prepend(s.proven)
}

type labelStatus struct {
	label  string
	status domain.Feedback
}

// aggregateFeedback counts history per (label, status) for meals and
// workouts independently. Labels are listed in the order they reach the
// threshold.
func aggregateFeedback(history []Feedback) (meals, workouts signals) {
	mealCounts := make(map[labelStatus]int)
	workoutCounts := make(map[labelStatus]int)
	for _, h := range history {
		meals = meals.observe(mealCounts, h.Meal, h.Status)
		workouts = workouts.observe(workoutCounts, h.Workout, h.Status)
	}
	return meals, workouts
}

func (s signals) observe(counts map[labelStatus]int, label string, status domain.Feedback) signals {
	if status != domain.FeedbackFollowed && status != domain.FeedbackSkipped {
		return s
	}
	key := labelStatus{label, status}
	counts[key]++
	if counts[key] != feedbackThreshold {
		return s
	}
	if status == domain.FeedbackFollowed {
		s.proven = s.proven.with(label)
	} else {
		s.disfavored = s.disfavored.with(label)
	}
	return s
}
