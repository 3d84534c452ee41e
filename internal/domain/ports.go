package domain

import "context"

// Locker serializes work on a key across callers. The returned function
// releases the lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// FoodItem is a nutrition lookup result, values per serving.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// FoodSearcher is the port for an external nutrition database.
type FoodSearcher interface {
	SearchFoods(ctx context.Context, query string, max int) ([]FoodItem, error)
}
