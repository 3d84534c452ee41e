package domain

import "strings"

// Goal is a user's stated fitness goal.
type Goal string

// Supported goals.
const (
	GoalCutting    Goal = "cutting"
	GoalLeanMuscle Goal = "lean_muscle"
	GoalEndurance  Goal = "endurance"
	GoalBalanced   Goal = "balanced"
)

// Goals lists every supported goal.
var Goals = []Goal{GoalCutting, GoalLeanMuscle, GoalEndurance, GoalBalanced}

// Valid reports whether g is one of the supported goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalCutting, GoalLeanMuscle, GoalEndurance, GoalBalanced:
		return true
	}
	return false
}

// ParseGoal maps a user-supplied label to a Goal. The legacy label
// "lean muscle" is accepted. Unknown labels yield GoalBalanced and ok=false.
func ParseGoal(s string) (g Goal, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "lean muscle" || s == "lean-muscle" {
		return GoalLeanMuscle, true
	}
	g = Goal(s)
	if !g.Valid() {
		return GoalBalanced, false
	}
	return g, true
}
