package tracker

import (
	"testing"

	"github.com/fitpulse/fitpulse-backend/internal/config"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func testDefaults() config.Defaults {
	return config.Defaults{
		CaloriesTarget:   2500,
		ProteinTarget:    150,
		CarbsTarget:      200,
		FatsTarget:       60,
		CaloriesBurnGoal: 2500,
	}
}

func TestResolveTargetsPlanWinsOverUserGoal(t *testing.T) {
	plan := &models.PlanGoals{DailyCalories: 1800, ProteinGrams: 140, CarbsGrams: 180, FatsGrams: 55}
	user := &models.UserGoals{DailyCaloriesBurn: 2500}

	got := ResolveTargets(Targets{}, plan, user, testDefaults())

	require.Equal(t, 1800.0, got.Calories, "plan goal must win over user burn fallback")
	require.Equal(t, 140.0, got.Protein)
	require.Equal(t, 180.0, got.Carbs)
	require.Equal(t, 55.0, got.Fats)
}

func TestResolveTargetsStoredAreSticky(t *testing.T) {
	stored := Targets{Calories: 2200, Protein: 160, Carbs: 210, Fats: 65}
	plan := &models.PlanGoals{DailyCalories: 1800, ProteinGrams: 140, CarbsGrams: 180, FatsGrams: 55}

	got := ResolveTargets(stored, plan, nil, testDefaults())

	require.Equal(t, stored, got, "targets stored on the day's bucket stay even if the plan changed")
}

func TestResolveTargetsFieldWise(t *testing.T) {
	// Only calories stored; macros fall through to the plan
	stored := Targets{Calories: 2200}
	plan := &models.PlanGoals{DailyCalories: 1800, ProteinGrams: 140}

	got := ResolveTargets(stored, plan, nil, testDefaults())

	require.Equal(t, 2200.0, got.Calories)
	require.Equal(t, 140.0, got.Protein)
	require.Equal(t, 200.0, got.Carbs, "macro with no plan goal falls to default")
	require.Equal(t, 60.0, got.Fats)
}

func TestResolveTargetsUserBurnFallbackForCalories(t *testing.T) {
	user := &models.UserGoals{DailyCaloriesBurn: 2800}

	got := ResolveTargets(Targets{}, nil, user, testDefaults())

	require.Equal(t, 2800.0, got.Calories)
	// No per-macro user goal exists, so macros come from defaults
	require.Equal(t, 150.0, got.Protein)
	require.Equal(t, 200.0, got.Carbs)
	require.Equal(t, 60.0, got.Fats)
}

func TestResolveTargetsAllDefaults(t *testing.T) {
	got := ResolveTargets(Targets{}, nil, nil, testDefaults())

	require.Equal(t, Targets{Calories: 2500, Protein: 150, Carbs: 200, Fats: 60}, got)
}

func TestStoredTargetsNilBucket(t *testing.T) {
	require.Equal(t, Targets{}, StoredTargets(nil))

	n := &models.DailyNutrition{CaloriesTarget: 2000, ProteinTarget: 120}
	require.Equal(t, Targets{Calories: 2000, Protein: 120}, StoredTargets(n))
}
