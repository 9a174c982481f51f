package services

import (
	"context"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/config"
	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Day buckets are found by their (user_id, day) composite key and created
// through upserts against it, so two racing requests for the same day
// resolve to the same document instead of inserting duplicates.

// TodayNutrition returns the user's nutrition bucket for the day containing
// now, or nil when none exists. Read-only; creation is EnsureNutritionBucket.
func TodayNutrition(ctx context.Context, userID primitive.ObjectID, now time.Time) (*models.DailyNutrition, error) {
	var bucket models.DailyNutrition
	err := database.DB.Collection("daily_nutrition").FindOne(
		ctx,
		bson.M{"user_id": userID, "day": tracker.DayKey(now)},
		options.FindOne().SetSort(bson.M{"date": -1}),
	).Decode(&bucket)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// buildDailyNutrition assembles a fresh day bucket. Targets resolve from
// the active plan and user goals; the stored plan link honors an explicit
// override when the request names one, falling back to the active plan.
func buildDailyNutrition(user *models.User, now time.Time, defaults config.Defaults, active *models.NutritionPlan, planOverride *primitive.ObjectID) models.DailyNutrition {
	var planGoals *models.PlanGoals
	var planID *primitive.ObjectID
	if active != nil {
		planGoals = &active.Goals
		planID = &active.ID
	}
	if planOverride != nil {
		planID = planOverride
	}
	targets := tracker.ResolveTargets(tracker.Targets{}, planGoals, &user.Goals, defaults)

	return models.DailyNutrition{
		CreatedAt:      now,
		UpdatedAt:      now,
		UserID:         user.ID,
		Date:           now,
		Day:            tracker.DayKey(now),
		CaloriesTarget: targets.Calories,
		ProteinTarget:  targets.Protein,
		CarbsTarget:    targets.Carbs,
		FatsTarget:     targets.Fats,
		PlanID:         planID,
		Meals:          []models.Meal{},
	}
}

// EnsureNutritionBucket returns today's nutrition bucket, creating it if
// absent. A fresh bucket gets its targets resolved once, from the active
// plan and user goals at creation time; they stay sticky for the day.
// planOverride, when non-nil, is stored as the bucket's plan link instead
// of the active plan's id.
func EnsureNutritionBucket(ctx context.Context, user *models.User, now time.Time, defaults config.Defaults, planOverride *primitive.ObjectID) (*models.DailyNutrition, error) {
	plan, err := ActivePlan(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	fresh := buildDailyNutrition(user, now, defaults, plan, planOverride)

	var bucket models.DailyNutrition
	err = database.DB.Collection("daily_nutrition").FindOneAndUpdate(
		ctx,
		bson.M{"user_id": user.ID, "day": tracker.DayKey(now)},
		bson.M{"$setOnInsert": fresh},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&bucket)
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// SaveNutrition persists a mutated nutrition bucket.
func SaveNutrition(ctx context.Context, bucket *models.DailyNutrition) error {
	bucket.UpdatedAt = time.Now()
	_, err := database.DB.Collection("daily_nutrition").ReplaceOne(
		ctx, bson.M{"_id": bucket.ID}, bucket,
	)
	return err
}

// NutritionByMealID locates the user's bucket containing the given meal.
// The search key is the meal id, not the date: deletes must work even for
// meals logged on past days.
func NutritionByMealID(ctx context.Context, userID, mealID primitive.ObjectID) (*models.DailyNutrition, error) {
	var bucket models.DailyNutrition
	err := database.DB.Collection("daily_nutrition").FindOne(
		ctx,
		bson.M{"user_id": userID, "meals._id": mealID},
	).Decode(&bucket)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// TodayMetric returns the user's metric bucket for the day containing now,
// or nil when none exists.
func TodayMetric(ctx context.Context, userID primitive.ObjectID, now time.Time) (*models.Metric, error) {
	var bucket models.Metric
	err := database.DB.Collection("metrics").FindOne(
		ctx,
		bson.M{"user_id": userID, "day": tracker.DayKey(now)},
		options.FindOne().SetSort(bson.M{"date": -1}),
	).Decode(&bucket)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// EnsureMetricBucket returns today's metric bucket, creating a zeroed one
// if absent.
func EnsureMetricBucket(ctx context.Context, userID primitive.ObjectID, now time.Time) (*models.Metric, error) {
	fresh := models.Metric{
		CreatedAt:        now,
		UpdatedAt:        now,
		UserID:           userID,
		Date:             now,
		Day:              tracker.DayKey(now),
		HeartRateHistory: []models.HeartRateSample{},
	}

	var bucket models.Metric
	err := database.DB.Collection("metrics").FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "day": tracker.DayKey(now)},
		bson.M{"$setOnInsert": fresh},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&bucket)
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// SaveMetric persists a mutated metric bucket.
func SaveMetric(ctx context.Context, bucket *models.Metric) error {
	bucket.UpdatedAt = time.Now()
	_, err := database.DB.Collection("metrics").ReplaceOne(
		ctx, bson.M{"_id": bucket.ID}, bucket,
	)
	return err
}

// ActivePlan returns the user's active nutrition plan, or nil.
func ActivePlan(ctx context.Context, userID primitive.ObjectID) (*models.NutritionPlan, error) {
	var plan models.NutritionPlan
	err := database.DB.Collection("nutrition_plans").FindOne(
		ctx,
		bson.M{"user_id": userID, "is_active": true},
	).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
