package services

import (
	"testing"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/config"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func bucketDefaults() config.Defaults {
	return config.Defaults{
		CaloriesTarget: 2500,
		ProteinTarget:  150,
		CarbsTarget:    200,
		FatsTarget:     60,
	}
}

func TestBuildDailyNutritionLinksActivePlan(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	active := &models.NutritionPlan{
		ID:    primitive.NewObjectID(),
		Goals: models.PlanGoals{DailyCalories: 1800, ProteinGrams: 120},
	}

	bucket := buildDailyNutrition(user, time.Now(), bucketDefaults(), active, nil)

	require.NotNil(t, bucket.PlanID)
	require.Equal(t, active.ID, *bucket.PlanID)
	require.Equal(t, 1800.0, bucket.CaloriesTarget)
	require.Equal(t, 120.0, bucket.ProteinTarget)
}

func TestBuildDailyNutritionPlanOverrideWinsLink(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	active := &models.NutritionPlan{
		ID:    primitive.NewObjectID(),
		Goals: models.PlanGoals{DailyCalories: 1800},
	}
	override := primitive.NewObjectID()

	bucket := buildDailyNutrition(user, time.Now(), bucketDefaults(), active, &override)

	require.NotNil(t, bucket.PlanID)
	require.Equal(t, override, *bucket.PlanID, "an explicit plan id replaces the active plan link")
	require.Equal(t, 1800.0, bucket.CaloriesTarget, "targets still come from the active plan")
}

func TestBuildDailyNutritionOverrideWithoutActivePlan(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	override := primitive.NewObjectID()

	bucket := buildDailyNutrition(user, time.Now(), bucketDefaults(), nil, &override)

	require.NotNil(t, bucket.PlanID)
	require.Equal(t, override, *bucket.PlanID)
	require.Equal(t, 2500.0, bucket.CaloriesTarget)
}

func TestBuildDailyNutritionNoPlan(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)

	bucket := buildDailyNutrition(user, now, bucketDefaults(), nil, nil)

	require.Nil(t, bucket.PlanID)
	require.Equal(t, "2026-09-01", bucket.Day)
	require.Equal(t, 2500.0, bucket.CaloriesTarget)
	require.Empty(t, bucket.Meals)
	require.NotNil(t, bucket.Meals)
}
