package adapthttp

import (
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"

	"fittrack/internal/app"
	"fittrack/internal/domain"
)

const defaultAuthRateLimit = 10

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Auth            *app.AuthService
	Profile         *app.ProfileService
	Weight          *app.WeightService
	Meals           *app.MealService
	Workouts        *app.WorkoutService
	Recommendations *app.RecommendationService
	Progress        *app.ProgressService
	Food            *app.FoodService
}

// OIDCConfig holds the single sign-on provider. SSO routes answer 404
// unless Enabled is set.
type OIDCConfig struct {
	Enabled      bool
	OAuth2Config *oauth2.Config
	Provider     *oidc.Provider
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc                 Services
	oidcConfig          OIDCConfig
	authRateLimit       int
	disableRegistration bool
	trustForwardAuth    bool
	corsOrigins         []string

	// testUser, when set, bypasses authentication.
	testUser *domain.User
}

// Option configures a Server.
type Option func(*Server)

// WithOIDC enables single sign-on.
func WithOIDC(cfg OIDCConfig) Option {
	return func(s *Server) { s.oidcConfig = cfg }
}

// WithAuthRateLimit caps login and registration attempts per client IP per minute.
func WithAuthRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.authRateLimit = perMinute
		}
	}
}

// WithRegistrationDisabled rejects self-service sign-up.
func WithRegistrationDisabled(disabled bool) Option {
	return func(s *Server) { s.disableRegistration = disabled }
}

// WithForwardAuth trusts the Remote-User header from an authenticating proxy.
func WithForwardAuth(trust bool) Option {
	return func(s *Server) { s.trustForwardAuth = trust }
}

// WithCORS allows browser clients served from origins to call the API with
// their session cookie.
func WithCORS(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// New creates a Server wired to the given application services.
func New(svc Services, opts ...Option) *Server {
	s := &Server{svc: svc, authRateLimit: defaultAuthRateLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithoutAuth disables authentication and serves every request as user.
// It exists for tests.
func (s *Server) WithoutAuth(user *domain.User) *Server {
	s.testUser = user
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(withNoCache)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/config", s.handleConfig)
			r.Post("/logout", s.handleLogout)
			r.Get("/sso/login", s.handleSSOLogin)
			r.Get("/sso/callback", s.handleSSOCallback)
			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(s.authRateLimit, time.Minute))
				r.Post("/login", s.handleLogin)
				r.Post("/register", s.handleRegister)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/profile", s.handleProfileGet)
			r.Put("/profile", s.handleProfileUpdate)

			r.Get("/weight/today", s.handleWeightTodayGet)
			r.Put("/weight/today", s.handleWeightTodayPut)
			r.Get("/weight/recent", s.handleWeightRecent)
			r.Post("/weight/undo-last", s.handleWeightUndoLast)

			r.Post("/meals", s.handleMealLog)
			r.Get("/meals/recent", s.handleMealRecent)
			r.Post("/meals/{id}/reuse", s.handleMealReuse)

			r.Post("/workouts", s.handleWorkoutLog)
			r.Get("/workouts", s.handleWorkoutList)

			r.Post("/recommendations", s.handleRecommendationGenerate)
			r.Get("/recommendations", s.handleRecommendationHistory)
			r.Get("/recommendations/current", s.handleRecommendationCurrent)
			r.Post("/recommendations/{id}/feedback", s.handleRecommendationFeedback)

			r.Get("/progress", s.handleProgress)

			r.Get("/food/search", s.handleFoodSearch)
			r.Get("/food/autocomplete", s.handleFoodAutocomplete)
		})
	})

	return r
}
