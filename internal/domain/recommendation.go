package domain

import (
	"context"
	"time"
)

// Feedback is the user's response to a recommendation.
type Feedback string

// Feedback values. FeedbackUnset is stored until the user responds.
const (
	FeedbackUnset    Feedback = ""
	FeedbackFollowed Feedback = "followed"
	FeedbackSkipped  Feedback = "skipped"
)

// Recommendation is a persisted meal/workout suggestion.
type Recommendation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Meal      string    `json:"meal"`
	Workout   string    `json:"workout"`
	TrendNote string    `json:"trendNote"`
	Feedback  Feedback  `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecommendationRepository is the port for recommendation persistence.
type RecommendationRepository interface {
	AddRecommendation(ctx context.Context, r *Recommendation) (int64, error)
	// LatestRecommendation returns (nil, nil) when the user has none.
	LatestRecommendation(ctx context.Context, userID int64) (*Recommendation, error)
	// ListRecentRecommendations returns up to limit records, newest first.
	ListRecentRecommendations(ctx context.Context, userID int64, limit int) ([]Recommendation, error)
	// ListRecommendations returns every record for the user, newest first.
	ListRecommendations(ctx context.Context, userID int64) ([]Recommendation, error)
	// SetFeedback reports false when no record with id belongs to the user.
	SetFeedback(ctx context.Context, userID, id int64, fb Feedback) (bool, error)
}
