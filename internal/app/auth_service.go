// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/logging"
	"fittrack/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists indicates that the username or email is already taken.
	ErrUserExists = errors.New("username or email already in use")
)

const defaultSessionTTL = 24 * time.Hour

// RegisterInput is the data required to create an account.
type RegisterInput struct {
	Username string  `json:"username" validate:"required,min=3,max=32,alphanum"`
	Name     string  `json:"name" validate:"max=100"`
	Email    string  `json:"email" validate:"required,email,max=254"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Age      int     `json:"age" validate:"gte=13,lte=120"`
	WeightLb float64 `json:"weightLb" validate:"gt=0,lte=1500"`
	HeightIn float64 `json:"heightIn" validate:"gt=0,lte=120"`
	Goal     string  `json:"goal" validate:"goal"`
}

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	weights    domain.WeightRepository
	sessionTTL time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, weights domain.WeightRepository) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		weights:    weights,
		sessionTTL: defaultSessionTTL,
	}
}

// WithSessionTTL sets how long new sessions stay valid.
func (s *AuthService) WithSessionTTL(ttl time.Duration) *AuthService {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
	return s
}

// SessionTTL returns the lifetime of new sessions.
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// Register creates an account and records the registration weight as the
// user's first weight entry.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if err := checkAvailable(ctx, s.users, 0, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	goal, _ := domain.ParseGoal(in.Goal)
	user, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Age:          in.Age,
		WeightLb:     in.WeightLb,
		HeightIn:     in.HeightIn,
		Goal:         goal,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if _, err := s.weights.AddWeightEvent(ctx, user.ID, in.WeightLb, domain.UnitLb, time.Now()); err != nil {
		return nil, fmt.Errorf("seed weight entry: %w", err)
	}

	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Str("goal", string(goal)).Msg("user registered")
	return user, nil
}

// checkAvailable returns ErrUserExists when username or email belongs to a
// user other than selfID.
func checkAvailable(ctx context.Context, users domain.UserRepository, selfID int64, username, email string) error {
	existing, err := users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrUserExists
	}
	if email == "" {
		return nil
	}
	existing, err = users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrUserExists
	}
	return nil
}

// Login authenticates a user by username or email and creates a session.
func (s *AuthService) Login(ctx context.Context, identifier, password, userAgent, ip string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.users.GetByUsername(ctx, identifier)
	if err == nil && user == nil && strings.Contains(identifier, "@") {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(identifier))
	}
	if err != nil || user == nil || user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID, userAgent, ip)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks if a session token is valid and matches the user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateForwardAuth resolves the user named by a trusted Remote-User
// header, creating the account on first sight.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.User, error) {
	if remoteUser == "" {
		return nil, errors.New("no remote user header")
	}
	return s.findOrProvision(ctx, remoteUser)
}

// LoginWithUser creates a session for an already authenticated user (e.g. via SSO).
func (s *AuthService) LoginWithUser(ctx context.Context, username, userAgent, ip string) (string, error) {
	user, err := s.findOrProvision(ctx, username)
	if err != nil {
		return "", err
	}
	return s.createSession(ctx, user.ID, userAgent, ip)
}

// PurgeExpiredSessions deletes every session past its expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

// findOrProvision returns the user with username, creating a password-less
// account with the balanced goal if none exists.
func (s *AuthService) findOrProvision(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = s.users.Create(ctx, &domain.User{Username: username, Goal: domain.GoalBalanced})
	if err != nil {
		// Lost a race with a concurrent first login.
		if again, getErr := s.users.GetByUsername(ctx, username); getErr == nil && again != nil {
			return again, nil
		}
		return nil, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user provisioned from external identity")
	return user, nil
}

func (s *AuthService) createSession(ctx context.Context, userID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessions.Create(ctx, userID, token, userAgent, ip, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
