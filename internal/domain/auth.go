// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered user together with the physiological
// attributes the recommendation engine reads.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	WeightLb     float64   `json:"weightLb"`
	HeightIn     float64   `json:"heightIn"`
	Goal         Goal      `json:"goal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile returns the snapshot of the user's attributes used for recommendations.
func (u *User) Profile() Profile {
	return Profile{Age: u.Age, WeightLb: u.WeightLb, HeightIn: u.HeightIn, Goal: u.Goal}
}

// ProfileComplete reports whether age, weight and height are all set.
// Accounts provisioned through SSO or forward auth start without them.
func (u *User) ProfileComplete() bool {
	return u.Age > 0 && u.WeightLb > 0 && u.HeightIn > 0
}

// Profile is a point-in-time snapshot of a user's physiological attributes.
type Profile struct {
	Age      int
	WeightLb float64
	HeightIn float64
	Goal     Goal
}

// Session represents an active user session.
type Session struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdateWeight(ctx context.Context, id int64, weightLb float64) error
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
