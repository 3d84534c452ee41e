package recommend

import (
	"fmt"
	"math"
)

// trendRule appends candidates and sets the trend note when match holds for
// the weekly rate. Rules are evaluated in slice order and the first match
// is the only one applied.
type trendRule struct {
	name     string
	match    func(rate float64) bool
	meals    []string
	workouts []string
	note     func(t Trend) string
}

// matchRule returns the first rule in rules that matches rate.
func matchRule(rules []trendRule, rate float64) (trendRule, bool) {
	for _, r := range rules {
		if r.match(rate) {
			return r, true
		}
	}
	return trendRule{}, false
}

var cuttingRules = []trendRule{
	{
		name:  "cutting_plateau",
		match: func(r float64) bool { return math.Abs(r) < 0.2 },
		meals: []string{
			"Zucchini Noodle Bowl with Turkey Meatballs",
			"Kale + Grilled Chicken Salad with Olive Oil Vinaigrette",
			"Cauliflower Rice Stir-Fry with Egg Whites",
		},
		workouts: []string{
			"Extra HIIT Session (20-30 min)",
			"Fast-Paced Full-Body Circuit",
			"Incline Walk + Core Finisher",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("Your weight hasn't changed much since %s. "+
				"Try tightening your meal portions or increasing workout intensity.", t.Since)
		},
	},
	{
		name:  "cutting_too_fast",
		match: func(r float64) bool { return r < -2 },
		meals: []string{
			"Maintenance Bowl: Salmon, Quinoa, Avocado, Roasted Veggies",
			"Refeed Meal: Steak, Roasted Sweet Potato, Sautéed Spinach",
			"Protein-Packed Omelet with Whole Eggs and Toast",
		},
		workouts: []string{
			"Mobility Recovery + Light Walk",
			"Yoga Flow + Deep Stretch",
			"Zone 2 Cardio (e.g., 45 min bike or walk)",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're losing weight too quickly (< -2 lbs/week since %s). "+
				"Consider a maintenance day or refeed to preserve muscle and energy.", t.Since)
		},
	},
	{
		name:  "cutting_gaining",
		match: func(r float64) bool { return r > 1 },
		meals: []string{
			"Balanced Bowl with Veggies + Lean Protein",
			"Healthy Salad with Chicken + Balsamic Dressing",
			"Grilled Chicken + Zucchini Noodles",
		},
		workouts: []string{
			"Strength Training (Full Body)",
			"Medium-Intensity Cardio (30-40 mins)",
			"Bodyweight HIIT",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're gaining weight despite a cutting goal since %s. "+
				"Make sure your calorie intake is properly aligned with your goal.", t.Since)
		},
	},
}

// The rate > 1 rule sits before rate >= 0.5 so rapid gains get the
// moderation candidates instead of the reinforcement ones.
var leanMuscleRules = []trendRule{
	{
		name:  "lean_muscle_slowed",
		match: func(r float64) bool { return r < 0.1 },
		meals: []string{
			"Chicken Thighs with Jasmine Rice and Avocado",
			"High-Calorie Protein Shake with Nut Butter & Oats",
			"Ground Beef and Potato Bowl with Veggies",
		},
		workouts: []string{
			"Heavy Strength Training",
			"Push-Pull-Legs Split",
			"Upper/Lower Body Split with Progressive Overload",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("Muscle gain progress has slowed since %s. "+
				"Add more calories and focus on progressive overload in workouts.", t.Since)
		},
	},
	{
		name:  "lean_muscle_too_rapid",
		match: func(r float64) bool { return r > 1 },
		meals: []string{
			"Beef + Potato Bowl with Veggies",
			"Omelet with Eggs and Avocado",
			"High-Calorie Smoothie with Oats and Peanut Butter",
		},
		workouts: []string{
			"Heavy Resistance Training",
			"Upper Body Hypertrophy Focus",
			"Lower Body Strength Training",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're gaining muscle too rapidly since %s. "+
				"Consider adjusting calorie intake for more controlled gains.", t.Since)
		},
	},
	{
		name:  "lean_muscle_gaining_well",
		match: func(r float64) bool { return r >= 0.5 },
		meals: []string{
			"Protein-Packed Chicken & Rice",
			"Tuna Salad with Avocado",
			"High-Protein Smoothie + Nut Butters",
		},
		workouts: []string{
			"Strength Training with Progressive Overload",
			"Legs + Back Day",
			"Push-Pull Routine",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're gaining muscle well since %s. "+
				"Keep up with the strength training and nutrition!", t.Since)
		},
	},
}

var enduranceRules = []trendRule{
	{
		name:  "endurance_stable",
		match: func(r float64) bool { return math.Abs(r) < 0.1 },
		meals: []string{
			"Lean Chicken Wrap with Veggies",
			"Oatmeal with Banana and Almond Butter",
			"Tuna Salad on Whole Grain Toast",
		},
		workouts: []string{
			"Low-Intensity Steady-State Cardio",
			"Active Recovery (Yoga/Stretching)",
			"Moderate-Intensity Running or Cycling",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("Your weight is staying stable since %s. "+
				"Focus on increasing your endurance performance.", t.Since)
		},
	},
	{
		name:  "endurance_fluctuating",
		match: func(r float64) bool { return math.Abs(r) > 1 },
		meals: []string{
			"Healthy Chicken Salad with Quinoa",
			"Roasted Salmon with Sweet Potato",
			"Greek Yogurt with Berries",
		},
		workouts: []string{
			"HIIT or Interval Training",
			"Strength + Endurance Circuit",
			"Long-Distance Running or Cycling",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're seeing larger weight fluctuations since %s. "+
				"This could indicate changes in muscle/fat distribution, "+
				"which is normal for endurance training.", t.Since)
		},
	},
}

var balancedRules = []trendRule{
	{
		name:  "balanced_maintaining",
		match: func(r float64) bool { return math.Abs(r) < 0.2 },
		meals: []string{
			"Grilled Chicken & Veggies",
			"Turkey Sandwich with Avocado",
			"Spinach Salad with Grilled Chicken",
		},
		workouts: []string{
			"Full-Body Strength Workout",
			"Cardio + Core",
			"Yoga + Stretching",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're maintaining weight well since %s. "+
				"Keep it balanced and focus on strength and performance.", t.Since)
		},
	},
	{
		name:  "balanced_muscle_gain",
		match: func(r float64) bool { return r > 0.2 && r < 1 },
		meals: []string{
			"Lean Beef + Sweet Potato",
			"Greek Yogurt with Almonds",
			"High-Protein Smoothie + Nut Butter",
		},
		workouts: []string{
			"Strength Training",
			"Low-Intensity Cardio",
			"Active Recovery",
		},
		note: func(Trend) string {
			return "You're gaining a little weight, but it's likely muscle. " +
				"Stay consistent with your balanced fitness approach."
		},
	},
	{
		name:  "balanced_too_fast",
		match: func(r float64) bool { return r > 1 },
		meals: []string{
			"Grilled Fish + Avocado",
			"Protein Shake with Oats and Almond Butter",
			"Chicken Salad with Olive Oil Dressing",
		},
		workouts: []string{
			"Progressive Resistance Training",
			"High-Intensity Interval Training",
			"Cardio + Core Strengthening",
		},
		note: func(t Trend) string {
			return fmt.Sprintf("You're gaining weight faster than planned since %s. "+
				"Consider re-assessing your calorie intake for a more gradual approach.", t.Since)
		},
	},
}
