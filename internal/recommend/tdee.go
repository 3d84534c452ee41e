package recommend

import (
	"math"

	"fittrack/internal/domain"
)

const (
	lbToKg = 0.4536
	inToCm = 2.54
)

var activityMultipliers = map[domain.Goal]float64{
	domain.GoalCutting:    1.4,
	domain.GoalLeanMuscle: 1.6,
	domain.GoalEndurance:  1.7,
	domain.GoalBalanced:   1.5,
}

// BMR returns the Mifflin-St Jeor basal metabolic rate for p.
func BMR(p domain.Profile) float64 {
	weightKg := p.WeightLb * lbToKg
	heightCm := p.HeightIn * inToCm
	return 10*weightKg + 6.25*heightCm - 5*float64(p.Age) + 5
}

// EstimateTDEE returns the total daily energy expenditure for p, rounded to
// the nearest calorie. Unknown goals use the balanced multiplier.
func EstimateTDEE(p domain.Profile) int {
	mult, ok := activityMultipliers[p.Goal]
	if !ok {
		mult = activityMultipliers[domain.GoalBalanced]
	}
	return int(math.Round(BMR(p) * mult))
}
