package recommend

import "fittrack/internal/domain"

// policy bundles a goal's base catalogs with its ordered trend rules.
type policy struct {
	meals    []string
	workouts []string
	rules    []trendRule
}

var policies = map[domain.Goal]policy{
	domain.GoalCutting: {
		meals: []string{
			"Grilled Chicken & Steamed Broccoli",
			"Turkey Lettuce Wraps",
			"Egg Whites + Oats",
			"Zucchini Noodles + Lean Ground Turkey",
			"Cauliflower Fried Rice + Shrimp",
			"Tuna Salad with Avocado",
			"Greek Yogurt + Berries",
			"Cottage Cheese + Almonds",
			"Steak Salad with Olive Oil",
			"Boiled Eggs + Spinach",
		},
		workouts: []string{
			"30 min HIIT",
			"45 min Fasted Cardio",
			"Full Body Calisthenics Circuit",
			"Tabata Training",
			"Jump Rope + Bodyweight Mix",
			"Outdoor Run (3 miles)",
			"Weighted Circuit Training",
			"Incline Walking",
			"Kickboxing",
		},
		rules: cuttingRules,
	},
	domain.GoalLeanMuscle: {
		meals: []string{
			"Steak + Brown Rice + Veggies",
			"Quinoa + Chicken + Avocado",
			"Salmon + Sweet Potato",
			"Ground Turkey Tacos (Whole Wheat)",
			"Lentil Stew + Grilled Chicken",
			"Greek Yogurt Smoothie + Granola",
			"Tofu + Stir-Fried Vegetables + Rice",
			"Cottage Cheese + Banana + Peanut Butter",
			"High-Protein Pasta Bowl",
		},
		workouts: []string{
			"Push-Pull-Legs Split",
			"Upper/Lower Body Split",
			"Heavy Compound Lifting (Squat/Deadlift)",
			"Chest + Triceps Day",
			"Back + Biceps Routine",
			"Shoulder & Core Superset",
			"Barbell Complexes",
			"Progressive Overload Program",
		},
		rules: leanMuscleRules,
	},
	domain.GoalEndurance: {
		meals: []string{
			"Whole Grain Pasta + Turkey Meatballs",
			"Protein Smoothie + Banana",
			"Oatmeal + Chia Seeds + Almond Butter",
			"Sweet Potato Hash + Eggs",
			"Energy Bars + Protein Yogurt",
			"Salmon + Brown Rice + Greens",
			"Bean & Veggie Burrito Bowl",
			"Trail Mix + Greek Yogurt",
		},
		workouts: []string{
			"5K Training Program",
			"Interval Running (Run/Walk)",
			"Cycling (40 min steady-state)",
			"Swimming Laps (30-60 min)",
			"Rowing Machine Intervals",
			"Hiking with Pack (1 hr+)",
			"Stadium Stairs + Core Superset",
			"Boxing + Jump Rope",
		},
		rules: enduranceRules,
	},
	domain.GoalBalanced: {
		meals: []string{
			"Grilled Chicken + Rice Bowl",
			"Shrimp Stir-Fry + Mixed Veggies",
			"Turkey Sandwich + Sweet Potato",
			"Veggie Omelet + Whole Wheat Toast",
			"Tofu Bowl + Edamame + Brown Rice",
			"Salmon + Couscous + Spinach",
			"Whole Wheat Wrap + Turkey + Hummus",
		},
		workouts: []string{
			"30 min Mixed Cardio",
			"Full Body Dumbbell Routine",
			"Pilates or Yoga Flow",
			"Basic Strength Training (3x/week)",
			"Spin Class + Light Core Work",
			"Bodyweight Supersets",
			"Resistance Band Conditioning",
			"Cardio + Stretching Combo",
		},
		rules: balancedRules,
	},
}

// policyFor returns the policy for g, falling back to balanced.
func policyFor(g domain.Goal) policy {
	if p, ok := policies[g]; ok {
		return p
	}
	return policies[domain.GoalBalanced]
}

// BaseMeals returns a copy of the base meal catalog for g.
func BaseMeals(g domain.Goal) []string {
	return append([]string(nil), policyFor(g).meals...)
}

// BaseWorkouts returns a copy of the base workout catalog for g.
func BaseWorkouts(g domain.Goal) []string {
	return append([]string(nil), policyFor(g).workouts...)
}
