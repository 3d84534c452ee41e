package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fittrack/internal/app"
	"fittrack/internal/domain"
	"fittrack/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func validRegistration() app.RegisterInput {
	return app.RegisterInput{
		Username: "jordan",
		Name:     "Jordan",
		Email:    "Jordan@Example.com",
		Password: "password123",
		Age:      22,
		WeightLb: 218,
		HeightIn: 75,
		Goal:     "cutting",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()

	var created *domain.User
	users := &mockUserRepo{
		createFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			c := *u
			c.ID = 7
			created = &c
			return &c, nil
		},
	}
	var seeded struct {
		userID int64
		value  float64
		unit   string
	}
	weights := &mockWeightRepo{
		addFn: func(_ context.Context, userID int64, v float64, u string, _ time.Time) (int64, error) {
			seeded.userID, seeded.value, seeded.unit = userID, v, u
			return 1, nil
		},
	}

	svc := app.NewAuthService(users, &mockSessionRepo{}, weights)
	user, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.ID != 7 || created.Email != "jordan@example.com" {
		t.Errorf("unexpected user %+v", created)
	}
	if created.Goal != domain.GoalCutting {
		t.Errorf("expected goal cutting, got %q", created.Goal)
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")) != nil {
		t.Error("password should be stored as a bcrypt hash")
	}
	if seeded.userID != 7 || seeded.value != 218 || seeded.unit != domain.UnitLb {
		t.Errorf("first weight entry not seeded from registration: %+v", seeded)
	}
}

func TestAuthService_Register_LegacyGoalLabel(t *testing.T) {
	var goal domain.Goal
	users := &mockUserRepo{
		createFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			goal = u.Goal
			return &domain.User{ID: 1}, nil
		},
	}
	in := validRegistration()
	in.Goal = "lean muscle"

	if _, err := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{}).Register(context.Background(), in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if goal != domain.GoalLeanMuscle {
		t.Errorf("expected lean_muscle, got %q", goal)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*app.RegisterInput)
	}{
		{"missing username", func(in *app.RegisterInput) { in.Username = "" }},
		{"bad email", func(in *app.RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *app.RegisterInput) { in.Password = "short" }},
		{"zero weight", func(in *app.RegisterInput) { in.WeightLb = 0 }},
		{"zero height", func(in *app.RegisterInput) { in.HeightIn = 0 }},
		{"unknown goal", func(in *app.RegisterInput) { in.Goal = "bulking" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{
				createFn: func(context.Context, *domain.User) (*domain.User, error) {
					t.Fatal("Create must not be called for invalid input")
					return nil, nil
				},
			}
			in := validRegistration()
			tc.mutate(&in)

			_, err := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{}).Register(context.Background(), in)
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	tests := []struct {
		name  string
		users *mockUserRepo
	}{
		{"username taken", &mockUserRepo{
			getByUsernameFn: func(context.Context, string) (*domain.User, error) {
				return &domain.User{ID: 3}, nil
			},
		}},
		{"email taken", &mockUserRepo{
			getByEmailFn: func(context.Context, string) (*domain.User, error) {
				return &domain.User{ID: 4}, nil
			},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := app.NewAuthService(tc.users, &mockSessionRepo{}, &mockWeightRepo{})
			if _, err := svc.Register(context.Background(), validRegistration()); !errors.Is(err, app.ErrUserExists) {
				t.Errorf("expected ErrUserExists, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:           1,
				Username:     "testuser",
				PasswordHash: string(hash),
			}, nil
		},
	}

	var gotUA, gotIP string
	var gotExpiry time.Time
	sessions := &mockSessionRepo{
		createFn: func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
			if userID != 1 {
				t.Errorf("expected userID 1, got %d", userID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			gotUA, gotIP, gotExpiry = userAgent, ip, expiresAt
			return nil
		},
	}

	svc := app.NewAuthService(users, sessions, &mockWeightRepo{}).WithSessionTTL(2 * time.Hour)
	token, err := svc.Login(ctx, "testuser", password, "test-agent", "10.0.0.1")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
	if gotUA != "test-agent" || gotIP != "10.0.0.1" {
		t.Errorf("session should record user agent and ip, got %q %q", gotUA, gotIP)
	}
	if d := time.Until(gotExpiry); d < 119*time.Minute || d > 2*time.Hour {
		t.Errorf("session expiry %v does not match configured ttl", d)
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "sam@example.com" {
				t.Errorf("email should be lower-cased, got %q", email)
			}
			return &domain.User{ID: 2, PasswordHash: string(hash)}, nil
		},
	}

	svc := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{})
	if _, err := svc.Login(context.Background(), "Sam@Example.com", "testpass123", "ua", "ip"); err != nil {
		t.Fatalf("expected login by email to succeed, got %v", err)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.MinCost)

	tests := []struct {
		name  string
		user  *domain.User
		pass  string
		repoE error
	}{
		{"wrong password", &domain.User{ID: 1, PasswordHash: string(hash)}, "wrongpass", nil},
		{"unknown user", nil, "correctpass", nil},
		{"sso-only account", &domain.User{ID: 1}, "", nil},
		{"repository error", nil, "correctpass", errors.New("db down")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{
				getByUsernameFn: func(context.Context, string) (*domain.User, error) {
					return tc.user, tc.repoE
				},
			}
			svc := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{})
			if _, err := svc.Login(context.Background(), "testuser", tc.pass, "ua", "ip"); err != app.ErrInvalidCredentials {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	ctx := context.Background()
	token := "validtoken"

	sessions := &mockSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    1,
				UserAgent: "ua",
				ExpiresAt: time.Now().Add(1 * time.Hour),
			}, nil
		},
	}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{
				ID:       1,
				Username: "testuser",
			}, nil
		},
	}

	svc := app.NewAuthService(users, sessions, &mockWeightRepo{})
	user, err := svc.ValidateSession(ctx, token, "ua")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %s", user.Username)
	}
}

func TestAuthService_ValidateSession_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		session     *domain.Session
		userAgent   string
		wantErr     error
		wantDeleted bool
	}{
		{
			name:        "expired",
			session:     &domain.Session{UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(-time.Hour)},
			userAgent:   "ua",
			wantErr:     app.ErrSessionExpired,
			wantDeleted: true,
		},
		{
			name:        "user agent mismatch",
			session:     &domain.Session{UserID: 1, UserAgent: "ua", ExpiresAt: time.Now().Add(time.Hour)},
			userAgent:   "other",
			wantErr:     app.ErrSessionExpired,
			wantDeleted: true,
		},
		{
			name:      "missing",
			session:   nil,
			userAgent: "ua",
			wantErr:   app.ErrSessionNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deleted := false
			sessions := &mockSessionRepo{
				getByTokenFn: func(context.Context, string) (*domain.Session, error) { return tc.session, nil },
				deleteFn: func(context.Context, string) error {
					deleted = true
					return nil
				},
			}
			svc := app.NewAuthService(&mockUserRepo{}, sessions, &mockWeightRepo{})

			_, err := svc.ValidateSession(context.Background(), "tok", tc.userAgent)
			if err != tc.wantErr {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if deleted != tc.wantDeleted {
				t.Errorf("deleted = %v, want %v", deleted, tc.wantDeleted)
			}
		})
	}
}

func TestAuthService_ValidateForwardAuth_ExistingUser(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:       1,
				Username: "ssouser",
			}, nil
		},
		createFn: func(context.Context, *domain.User) (*domain.User, error) {
			t.Fatal("existing user must not be re-created")
			return nil, nil
		},
	}

	svc := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{})

	user, err := svc.ValidateForwardAuth(ctx, "ssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "ssouser" {
		t.Errorf("expected username 'ssouser', got %s", user.Username)
	}
}

func TestAuthService_ValidateForwardAuth_NewUser(t *testing.T) {
	ctx := context.Background()

	users := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) (*domain.User, error) {
			if u.PasswordHash != "" {
				t.Error("provisioned users have no password")
			}
			if u.Goal != domain.GoalBalanced {
				t.Errorf("provisioned users default to balanced, got %q", u.Goal)
			}
			return &domain.User{ID: 2, Username: u.Username}, nil
		},
	}

	svc := app.NewAuthService(users, &mockSessionRepo{}, &mockWeightRepo{})

	user, err := svc.ValidateForwardAuth(ctx, "newssouser")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "newssouser" {
		t.Errorf("expected username 'newssouser', got %s", user.Username)
	}

	if _, err := svc.ValidateForwardAuth(ctx, ""); err == nil {
		t.Error("expected error for empty header")
	}
}

func TestAuthService_LoginWithUser_CreateRace(t *testing.T) {
	calls := 0
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return &domain.User{ID: 9, Username: username}, nil
		},
		createFn: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, errors.New("duplicate key")
		},
	}
	var sessionUser int64
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, userID int64, _, _, _ string, _ time.Time) error {
			sessionUser = userID
			return nil
		},
	}

	svc := app.NewAuthService(users, sessions, &mockWeightRepo{})
	if _, err := svc.LoginWithUser(context.Background(), "racer", "ua", "ip"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sessionUser != 9 {
		t.Errorf("session should belong to the concurrently created user, got %d", sessionUser)
	}
}

func TestAuthService_PurgeExpiredSessions(t *testing.T) {
	called := false
	sessions := &mockSessionRepo{
		deleteExpiredFn: func(context.Context) error {
			called = true
			return nil
		},
	}
	if err := app.NewAuthService(&mockUserRepo{}, sessions, &mockWeightRepo{}).PurgeExpiredSessions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("expected DeleteExpired to be called")
	}
}

func TestConstantTimeCompare(t *testing.T) {
	if !app.ConstantTimeCompare("state", "state") {
		t.Error("equal strings should compare equal")
	}
	if app.ConstantTimeCompare("state", "other") {
		t.Error("different strings should not compare equal")
	}
}
