package tracker

import (
	"github.com/fitpulse/fitpulse-backend/internal/config"
	"github.com/fitpulse/fitpulse-backend/internal/models"
)

// Targets are the resolved daily nutrition targets.
type Targets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
}

// ResolveTargets resolves effective daily targets field by field:
// a target already stored on the day's bucket is sticky and wins, then the
// active plan's goal, then the user-level fallback (dailyCaloriesBurn, for
// calories only; there is no per-macro user goal), then the configured
// defaults. Zero means "unset" throughout, matching the documents' schema
// defaults. Resolution always succeeds.
//
// Note defaults.CaloriesTarget is an intake target; the burn-goal default
// (defaults.CaloriesBurnGoal) is a different semantic and is never used
// here.
func ResolveTargets(stored Targets, plan *models.PlanGoals, user *models.UserGoals, defaults config.Defaults) Targets {
	out := stored

	if out.Calories == 0 {
		switch {
		case plan != nil && plan.DailyCalories > 0:
			out.Calories = plan.DailyCalories
		case user != nil && user.DailyCaloriesBurn > 0:
			out.Calories = user.DailyCaloriesBurn
		default:
			out.Calories = defaults.CaloriesTarget
		}
	}
	if out.Protein == 0 {
		if plan != nil && plan.ProteinGrams > 0 {
			out.Protein = plan.ProteinGrams
		} else {
			out.Protein = defaults.ProteinTarget
		}
	}
	if out.Carbs == 0 {
		if plan != nil && plan.CarbsGrams > 0 {
			out.Carbs = plan.CarbsGrams
		} else {
			out.Carbs = defaults.CarbsTarget
		}
	}
	if out.Fats == 0 {
		if plan != nil && plan.FatsGrams > 0 {
			out.Fats = plan.FatsGrams
		} else {
			out.Fats = defaults.FatsTarget
		}
	}

	return out
}

// StoredTargets pulls the sticky targets off an existing bucket, or a zero
// value when the bucket doesn't exist yet.
func StoredTargets(n *models.DailyNutrition) Targets {
	if n == nil {
		return Targets{}
	}
	return Targets{
		Calories: n.CaloriesTarget,
		Protein:  n.ProteinTarget,
		Carbs:    n.CarbsTarget,
		Fats:     n.FatsTarget,
	}
}
