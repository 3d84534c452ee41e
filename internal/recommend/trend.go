package recommend

import (
	"math"
	"time"
)

// WeightPoint is one weight observation in pounds.
type WeightPoint struct {
	WeightLb float64
	At       time.Time
}

// Trend summarises weight change between the first and last observation.
type Trend struct {
	Change      float64 `json:"change"`
	RatePerWeek float64 `json:"ratePerWeek"`
	Since       string  `json:"since"`
}

// AnalyzeTrend computes the weekly rate of change over points, which must be
// ordered oldest first. It returns nil when fewer than two points exist or
// when they span less than one whole day.
func AnalyzeTrend(points []WeightPoint) *Trend {
	if len(points) < 2 {
		return nil
	}
	first, last := points[0], points[len(points)-1]

	days := int(math.Floor(last.At.Sub(first.At).Hours() / 24))
	if days == 0 {
		return nil
	}

	delta := last.WeightLb - first.WeightLb
	return &Trend{
		Change:      round(delta, 1),
		RatePerWeek: round(delta/float64(days)*7, 2),
		Since:       first.At.Format("Jan 02"),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
