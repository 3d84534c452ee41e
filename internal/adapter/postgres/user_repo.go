package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/domain"
)

const userColumns = "id, username, name, email, password_hash, age, weight_lb, height_in, goal, created_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var goal string
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash,
		&u.Age, &u.WeightLb, &u.HeightIn, &goal, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Goal = domain.Goal(goal)
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// GetByEmail retrieves a user by email, ignoring case.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, nil
	}
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email <> '' AND lower(email) = lower($1)", email))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// Create inserts u and returns the stored row.
func (d *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created, err := scanUser(d.sql.QueryRowContext(ctx,
		`INSERT INTO users (username, name, email, password_hash, age, weight_lb, height_in, goal, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+userColumns,
		u.Username, u.Name, u.Email, u.PasswordHash, u.Age, u.WeightLb, u.HeightIn, string(u.Goal), time.Now(),
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateUser
	}
	return created, err
}

// Update stores every mutable profile field of u.
func (d *DB) Update(ctx context.Context, u *domain.User) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE users SET username = $2, name = $3, email = $4, password_hash = $5,
		 age = $6, weight_lb = $7, height_in = $8, goal = $9 WHERE id = $1`,
		u.ID, u.Username, u.Name, u.Email, u.PasswordHash, u.Age, u.WeightLb, u.HeightIn, string(u.Goal),
	)
	if isUniqueViolation(err) {
		return ErrDuplicateUser
	}
	return err
}

// UpdateWeight sets the user's current weight in pounds.
func (d *DB) UpdateWeight(ctx context.Context, id int64, weightLb float64) error {
	_, err := d.sql.ExecContext(ctx, "UPDATE users SET weight_lb = $2 WHERE id = $1", id, weightLb)
	return err
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, user_agent, ip, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		userID, token, userAgent, ip, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, user_agent, ip, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
