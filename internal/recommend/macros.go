package recommend

import "fittrack/internal/domain"

const (
	recentMealWindow   = 3
	lowProteinGrams    = 20
	highCalorieMargin  = 0.05
	lowProteinAdvisory = "Protein intake is low; adding high-protein meals to support your goal."
	overIntakeAdvisory = "Your average calorie intake is above your estimated needs. " +
		"Try lighter, lower-carb meals to stay in a deficit."
)

// MacroSample is the macronutrient content of one logged meal.
type MacroSample struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

// Macros holds averaged macronutrients, rounded to one decimal.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// AverageMacros averages every sample. It returns nil for an empty slice.
func AverageMacros(samples []MacroSample) *Macros {
	if len(samples) == 0 {
		return nil
	}
	var sum MacroSample
	for _, s := range samples {
		sum.Calories += s.Calories
		sum.Protein += s.Protein
		sum.Carbs += s.Carbs
		sum.Fats += s.Fats
	}
	n := float64(len(samples))
	return &Macros{
		Calories: round(sum.Calories/n, 1),
		Protein:  round(sum.Protein/n, 1),
		Carbs:    round(sum.Carbs/n, 1),
		Fats:     round(sum.Fats/n, 1),
	}
}

type advisory struct {
	name  string
	text  string
	meals []string
}

var (
	lowProtein = advisory{
		name: "low_protein",
		text: lowProteinAdvisory,
		meals: []string{
			"Protein Smoothie with Whey + Greek Yogurt & Berries",
			"Egg White Omelet with Avocado + Spinach",
			"Chicken + Tofu Stir-Fry with Edamame and Quinoa",
		},
	}
	overIntake = advisory{
		name: "over_intake",
		text: overIntakeAdvisory,
		meals: []string{
			"Low-Carb Salad with Lean Chicken + Olive Oil",
			"Zucchini Noodles with Grilled Turkey & Pesto",
			"Grilled Cod or Tilapia with Steamed Broccoli & Cauliflower Mash",
		},
	}
)

// macroAdvisories returns the advisories triggered by m, in the order their
// text is appended to the trend note.
func macroAdvisories(goal domain.Goal, m Macros, tdee int) []advisory {
	var out []advisory
	if m.Protein < lowProteinGrams {
		out = append(out, lowProtein)
	}
	if goal == domain.GoalCutting && m.Calories > float64(tdee)*(1+highCalorieMargin) {
		out = append(out, overIntake)
	}
	return out
}
