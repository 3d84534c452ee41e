package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate carries the editable profile fields. An empty Password
// leaves the current password unchanged.
type ProfileUpdate struct {
	Username string  `json:"username" validate:"required,min=3,max=32,alphanum"`
	Name     string  `json:"name" validate:"max=100"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Age      int     `json:"age" validate:"gte=13,lte=120"`
	WeightLb float64 `json:"weightLb" validate:"gt=0,lte=1500"`
	HeightIn float64 `json:"heightIn" validate:"gt=0,lte=120"`
	Goal     string  `json:"goal" validate:"goal"`
	Password string  `json:"password" validate:"omitempty,min=8,max=72"`
}

// ProfileService reads and edits the attributes recommendations depend on.
type ProfileService struct {
	users   domain.UserRepository
	weights domain.WeightRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(users domain.UserRepository, weights domain.WeightRepository) *ProfileService {
	return &ProfileService{users: users, weights: weights}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies in to the user's profile. A user without any weight entry
// (for example one provisioned through SSO) gets one seeded from the new
// profile weight.
func (s *ProfileService) Update(ctx context.Context, userID int64, in ProfileUpdate) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkAvailable(ctx, s.users, userID, in.Username, in.Email); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Name = strings.TrimSpace(in.Name)
	user.Email = in.Email
	user.Age = in.Age
	user.WeightLb = in.WeightLb
	user.HeightIn = in.HeightIn
	user.Goal, _ = domain.ParseGoal(in.Goal)
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	n, err := s.weights.CountWeightEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if _, err := s.weights.AddWeightEvent(ctx, userID, in.WeightLb, domain.UnitLb, time.Now()); err != nil {
			return nil, fmt.Errorf("seed weight entry: %w", err)
		}
	}
	return user, nil
}
