// Package usda queries the USDA FoodData Central search API.
package usda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"fittrack/internal/domain"
	"fittrack/internal/logging"
)

const (
	// DefaultBaseURL is the public FoodData Central endpoint.
	DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

	breakerName        = "usda-fdc"
	tripAfterFailures  = 5
	breakerOpenTimeout = 30 * time.Second
)

// Nutrient names as reported by FoodData Central.
const (
	nutrientEnergy  = "Energy"
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFat     = "Total lipid (fat)"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("usda: food search temporarily unavailable")

// errAbandoned marks requests whose caller went away. They say nothing about
// upstream health and are not counted against the breaker.
var errAbandoned = errors.New("request abandoned by caller")

// Client searches foods over HTTP behind a circuit breaker.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]domain.FoodItem]
	limiter *rate.Limiter
}

var _ domain.FoodSearcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outbound requests at perHour, allowing short bursts of
// one percent of the hourly quota. Non-positive values leave requests
// unthrottled.
func WithRateLimit(perHour int) Option {
	return func(c *Client) {
		if perHour <= 0 {
			return
		}
		burst := max(perHour/100, 1)
		c.limiter = rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), burst)
	}
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker[[]domain.FoodItem](gobreaker.Settings{
			Name:    breakerName,
			Timeout: breakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= tripAfterFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errAbandoned)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
					Msg("circuit breaker state change")
			},
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// SearchFoods returns up to max foods matching query.
func (c *Client) SearchFoods(ctx context.Context, query string, max int) ([]domain.FoodItem, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("usda search: rate limit: %w", err)
		}
	}
	items, err := c.cb.Execute(func() ([]domain.FoodItem, error) {
		items, err := c.search(ctx, query, max)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("usda search: %w: %w", errAbandoned, ctx.Err())
		}
		return items, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrUnavailable
	}
	return items, err
}

func (c *Client) search(ctx context.Context, query string, max int) ([]domain.FoodItem, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	q.Set("pageSize", strconv.Itoa(max))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usda search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("usda search: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("usda search: decode: %w", err)
	}

	out := make([]domain.FoodItem, 0, len(body.Foods))
	for _, f := range body.Foods {
		if len(out) == max {
			break
		}
		nutrients := make(map[string]float64, len(f.FoodNutrients))
		for _, n := range f.FoodNutrients {
			nutrients[n.NutrientName] = n.Value
		}
		out = append(out, domain.FoodItem{
			Name:     f.Description,
			Calories: nutrients[nutrientEnergy],
			Protein:  nutrients[nutrientProtein],
			Carbs:    nutrients[nutrientCarbs],
			Fat:      nutrients[nutrientFat],
		})
	}
	return out, nil
}
