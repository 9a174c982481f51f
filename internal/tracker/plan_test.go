package tracker

import (
	"testing"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func plan(active bool) models.NutritionPlan {
	return models.NutritionPlan{ID: primitive.NewObjectID(), IsActive: active}
}

func activeCount(plans []models.NutritionPlan) int {
	n := 0
	for _, p := range plans {
		if p.IsActive {
			n++
		}
	}
	return n
}

func TestActivatePlanDeactivatesSiblings(t *testing.T) {
	plans := []models.NutritionPlan{plan(true), plan(false), plan(false)}
	target := plans[2].ID
	now := time.Now()

	changed, found := ActivatePlan(plans, target, now)
	require.True(t, found)
	require.Len(t, changed, 2, "old active deactivated, target activated")

	require.Equal(t, 1, activeCount(plans))
	require.True(t, plans[2].IsActive)
	require.False(t, plans[0].IsActive)
	require.Equal(t, now, plans[0].UpdatedAt)
	require.Equal(t, now, plans[2].UpdatedAt)
}

func TestActivatePlanAlreadyActive(t *testing.T) {
	plans := []models.NutritionPlan{plan(true), plan(false)}
	target := plans[0].ID

	changed, found := ActivatePlan(plans, target, time.Now())
	require.True(t, found)
	require.Empty(t, changed, "nothing to persist when the state already holds")
	require.Equal(t, 1, activeCount(plans))
}

func TestActivatePlanRepairsMultipleActive(t *testing.T) {
	// Two actives should never exist; activation repairs the set anyway
	plans := []models.NutritionPlan{plan(true), plan(true), plan(false)}
	target := plans[2].ID

	changed, found := ActivatePlan(plans, target, time.Now())
	require.True(t, found)
	require.Len(t, changed, 3)
	require.Equal(t, 1, activeCount(plans))
	require.True(t, plans[2].IsActive)
}

func TestActivatePlanNotFound(t *testing.T) {
	plans := []models.NutritionPlan{plan(true), plan(false)}

	changed, found := ActivatePlan(plans, primitive.NewObjectID(), time.Now())
	require.False(t, found)
	require.Empty(t, changed)
	require.True(t, plans[0].IsActive, "a miss must not touch the set")
}
