// Package recommend selects a meal and a workout suggestion for a user.
//
// The engine is a pure function of the snapshots handed to it: the user's
// profile, weight history, most recent meals, and past recommendations with
// their feedback. It narrows goal-specific candidate pools deterministically
// and only the final draw is random, through an injectable Picker.
//
// Pipeline, in order:
//
//  1. base pools for the goal (unknown goals use the balanced policy)
//  2. TDEE estimate and weekly weight-trend rate
//  3. trend rule: at most one per call appends candidates and sets the note
//  4. recency exclusion against the last three recommendations
//  5. feedback: labels skipped twice are dropped, followed twice are promoted
//  6. macro advisories from the last three meals
//  7. uniform draw from the recency-filtered pool, or the full pool if empty
//
// The package does no I/O and holds no per-user state.
package recommend
