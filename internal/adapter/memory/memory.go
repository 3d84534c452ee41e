// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"fittrack/internal/domain"
)

// ErrDuplicateUser is returned by Create when the username or email is taken.
var ErrDuplicateUser = errors.New("user already exists")

// DB implements an in-memory database storage.
type DB struct {
	mu              sync.Mutex
	users           []*domain.User
	sessions        map[string]*domain.Session
	weights         []domain.WeightEntry
	meals           []domain.Meal
	workouts        []domain.Workout
	recommendations []domain.Recommendation

	userIDCounter    int64
	weightIDCounter  int64
	mealIDCounter    int64
	workoutIDCounter int64
	recIDCounter     int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var (
	_ domain.UserRepository           = (*DB)(nil)
	_ domain.WeightRepository         = (*DB)(nil)
	_ domain.MealRepository           = (*DB)(nil)
	_ domain.WorkoutRepository        = (*DB)(nil)
	_ domain.RecommendationRepository = (*DB)(nil)
	_ domain.SessionRepository        = (*SessionRepo)(nil)
)

// --- UserRepository ---

func (db *DB) findUser(match func(*domain.User) bool) *domain.User {
	for _, u := range db.users {
		if match(u) {
			c := *u
			return &c
		}
	}
	return nil
}

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findUser(func(u *domain.User) bool { return u.Username == username }), nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if email == "" {
		return nil, nil
	}
	return db.findUser(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findUser(func(u *domain.User) bool { return u.ID == id }), nil
}

func (db *DB) taken(selfID int64, username, email string) bool {
	for _, u := range db.users {
		if u.ID == selfID {
			continue
		}
		if u.Username == username || (email != "" && strings.EqualFold(u.Email, email)) {
			return true
		}
	}
	return false
}

// Create stores a new user and returns it with its assigned ID.
func (db *DB) Create(ctx context.Context, in *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.taken(0, in.Username, in.Email) {
		return nil, ErrDuplicateUser
	}

	db.userIDCounter++
	u := *in
	u.ID = db.userIDCounter
	u.CreatedAt = time.Now().UTC()
	db.users = append(db.users, &u)

	out := u
	return &out, nil
}

// Update replaces the stored profile of u.
func (db *DB) Update(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.taken(u.ID, u.Username, u.Email) {
		return ErrDuplicateUser
	}
	for i, existing := range db.users {
		if existing.ID == u.ID {
			c := *u
			c.CreatedAt = existing.CreatedAt
			db.users[i] = &c
			return nil
		}
	}
	return nil
}

// UpdateWeight sets the user's current weight in pounds.
func (db *DB) UpdateWeight(ctx context.Context, id int64, weightLb float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			u.WeightLb = weightLb
		}
	}
	return nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expired sessions are returned
// as stored; callers decide what to do with them.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// newestFirst sorts s by descending ID.
func newestFirst[T any](s []T, id func(T) int64) {
	slices.SortFunc(s, func(a, b T) int {
		switch ia, ib := id(a), id(b); {
		case ia > ib:
			return -1
		case ia < ib:
			return 1
		}
		return 0
	})
}

func limitTo[T any](s []T, limit int) []T {
	if limit >= 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
