package tracker

import (
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivatePlan flips the active flags so the chosen plan is the only active
// one in the user's set. Plans are mutated in place; the returned slice
// holds the plans whose flag changed and need persisting. The second return
// is false when the chosen plan is not in the set.
//
// Activating an already-active plan is a no-op for that plan but still
// deactivates stray siblings, repairing a violated invariant in place.
func ActivatePlan(plans []models.NutritionPlan, planID primitive.ObjectID, now time.Time) ([]models.NutritionPlan, bool) {
	found := false
	var changed []models.NutritionPlan

	for i := range plans {
		switch {
		case plans[i].ID == planID:
			found = true
			if !plans[i].IsActive {
				plans[i].IsActive = true
				plans[i].UpdatedAt = now
				changed = append(changed, plans[i])
			}
		case plans[i].IsActive:
			plans[i].IsActive = false
			plans[i].UpdatedAt = now
			changed = append(changed, plans[i])
		}
	}

	if !found {
		return nil, false
	}
	return changed, true
}
