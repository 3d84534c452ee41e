package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/adapter/memory"
	"fittrack/internal/adapter/postgres"
	"fittrack/internal/adapter/redis"
	"fittrack/internal/adapter/usda"
	"fittrack/internal/app"
	"fittrack/internal/config"
	"fittrack/internal/domain"
	"fittrack/internal/logging"
	"fittrack/internal/recommend"
	"fittrack/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

// repositories is the storage backend, either Postgres or in-memory.
type repositories interface {
	domain.UserRepository
	domain.WeightRepository
	domain.MealRepository
	domain.WorkoutRepository
	domain.RecommendationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("config load failed")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("fittrack stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	var (
		repos    repositories
		sessions domain.SessionRepository
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		repos, sessions = db, postgres.NewSessionRepo(db)
		logging.Info().Msg("using postgres storage")
	} else {
		db := memory.New()
		repos, sessions = db, db.NewSessionRepo()
		logging.Warn().Msg("DATABASE_URL not set; data is kept in memory only")
	}

	var locker domain.Locker = memory.NewLocker()
	if cfg.Redis.URL != "" {
		rl, err := redis.Connect(ctx, cfg.Redis.URL, redis.WithTTL(cfg.Recommend.LockTTL))
		if err != nil {
			return err
		}
		defer func() { _ = rl.Close() }()
		locker = rl
		logging.Info().Msg("using redis recommendation lock")
	}

	var searcher domain.FoodSearcher
	if cfg.USDA.APIKey != "" {
		searcher = usda.New(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.USDA.Timeout,
			usda.WithRateLimit(cfg.USDA.RequestsPerHour))
	} else {
		logging.Info().Msg("USDA_API_KEY not set; food search disabled")
	}

	engine := recommend.New(recommend.WithPicker(recommend.NewRandPicker(cfg.Recommend.Seed)))

	authSvc := app.NewAuthService(repos, sessions, repos).WithSessionTTL(cfg.Auth.SessionTTL)
	recSvc := app.NewRecommendationService(repos, repos, repos, repos, engine, locker).
		WithMaxAge(cfg.Recommend.MaxAge)
	svc := adapthttp.Services{
		Auth:            authSvc,
		Profile:         app.NewProfileService(repos, repos),
		Weight:          app.NewWeightService(repos, repos),
		Meals:           app.NewMealService(repos),
		Workouts:        app.NewWorkoutService(repos),
		Recommendations: recSvc,
		Progress:        app.NewProgressService(repos, repos, repos),
		Food:            app.NewFoodService(searcher),
	}

	opts := []adapthttp.Option{
		adapthttp.WithAuthRateLimit(cfg.Server.AuthRateLimit),
		adapthttp.WithRegistrationDisabled(cfg.Auth.DisableRegistration),
		adapthttp.WithForwardAuth(cfg.Auth.TrustForwardAuth),
		adapthttp.WithCORS(cfg.Server.CORSOrigins),
	}
	if cfg.Auth.OIDC.Enabled() {
		oidcCfg, err := setupOIDC(ctx, cfg.Auth.OIDC)
		if err != nil {
			return err
		}
		opts = append(opts, adapthttp.WithOIDC(oidcCfg))
		logging.Info().Str("issuer", cfg.Auth.OIDC.Issuer).Msg("SSO enabled")
	}

	cleaner := scheduler.NewSessionCleaner(authSvc, cfg.Auth.SessionCleanupInterval)
	if err := cleaner.Start(); err != nil {
		return err
	}
	defer cleaner.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      adapthttp.New(svc, opts...).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupOIDC(ctx context.Context, c config.OIDCConfig) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, c.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
