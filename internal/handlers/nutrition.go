package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LogMealRequest struct {
	Name     string            `json:"name"`
	MealType string            `json:"mealType"`
	Time     *time.Time        `json:"time,omitempty"`
	Template string            `json:"templateId,omitempty"`
	PlanID   *string           `json:"planId,omitempty"`
	Foods    []LogMealFoodItem `json:"foods"`
}

type LogMealFoodItem struct {
	FoodItemID string  `json:"foodItemId"`
	Servings   float64 `json:"servings"`
}

type UpdateMealRequest struct {
	Name     *string    `json:"name,omitempty"`
	MealType *string    `json:"mealType,omitempty"`
	Time     *time.Time `json:"time,omitempty"`
}

type LogWaterRequest struct {
	Amount float64 `json:"amount"` // liters; 0 means the configured quick increment
}

// GetTodayNutrition returns today's nutrition bucket. When none exists a
// zeroed view with resolved targets is returned without writing anything.
func GetTodayNutrition(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()
	bucket, err := services.TodayNutrition(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load nutrition")
		return
	}

	if bucket == nil {
		plan, err := services.ActivePlan(ctx, user.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load nutrition")
			return
		}
		var planGoals *models.PlanGoals
		var planID *primitive.ObjectID
		if plan != nil {
			planGoals = &plan.Goals
			planID = &plan.ID
		}
		targets := tracker.ResolveTargets(tracker.Targets{}, planGoals, &user.Goals, appConfig.Defaults)

		// Read-only default; the bucket is created on first write
		bucket = &models.DailyNutrition{
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

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"nutrition": bucket,
	})
}

// GetNutritionHistory returns the caller's nutrition buckets for the last N
// days (default 30), newest first.
func GetNutritionHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	since, _ := tracker.DayBounds(time.Now().AddDate(0, 0, -days))
	cursor, err := database.DB.Collection("daily_nutrition").Find(
		ctx,
		bson.M{"user_id": user.ID, "date": bson.M{"$gte": since}},
		options.Find().SetSort(bson.M{"date": -1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load nutrition history")
		return
	}
	var history []models.DailyNutrition
	if err := cursor.All(ctx, &history); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load nutrition history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": history,
	})
}

// LogMeal appends a meal to today's bucket, creating the bucket if needed.
// Food references resolve against the catalog; unresolvable ones are
// skipped, and a meal where nothing resolves is rejected.
func LogMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Foods) == 0 {
		respondError(w, http.StatusBadRequest, "At least one food is required")
		return
	}
	if req.MealType != "" && !validMealType(req.MealType) {
		respondError(w, http.StatusBadRequest, "Invalid meal type")
		return
	}

	cmd := tracker.LogMealCommand{
		Name:     req.Name,
		MealType: req.MealType,
	}
	if req.Time != nil {
		cmd.Time = *req.Time
	}
	if req.Template != "" {
		templateID, err := primitive.ObjectIDFromHex(req.Template)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid template id")
			return
		}
		cmd.TemplateID = &templateID
	}
	for _, f := range req.Foods {
		foodID, err := primitive.ObjectIDFromHex(f.FoodItemID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid food item id")
			return
		}
		cmd.Foods = append(cmd.Foods, tracker.FoodPortion{FoodItemID: foodID, Servings: f.Servings})
	}

	// Optional plan link override for a freshly created bucket
	var planOverride *primitive.ObjectID
	if req.PlanID != nil && *req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(*req.PlanID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid plan id")
			return
		}
		planOverride = &planID
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	lookup := func(id primitive.ObjectID) (*models.FoodItem, bool) {
		var item models.FoodItem
		if err := database.DB.Collection("food_items").FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
			return nil, false
		}
		return &item, true
	}

	now := time.Now()
	meal, err := tracker.BuildMeal(cmd, lookup, now)
	if errors.Is(err, tracker.ErrNoResolvableFoods) {
		respondError(w, http.StatusBadRequest, "None of the provided foods exist")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log meal")
		return
	}

	bucket, err := services.EnsureNutritionBucket(ctx, user, now, appConfig.Defaults, planOverride)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log meal")
		return
	}

	tracker.ApplyMeal(bucket, meal)
	if err := services.SaveNutrition(ctx, bucket); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save meal")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"meal":      meal,
		"nutrition": bucket,
	})
}

// UpdateMeal edits a meal's metadata. Foods and cached nutrition of a
// logged meal are immutable.
func UpdateMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	mealID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "mealId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meal id")
		return
	}

	var req UpdateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MealType != nil && !validMealType(*req.MealType) {
		respondError(w, http.StatusBadRequest, "Invalid meal type")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	bucket, err := services.NutritionByMealID(ctx, user.ID, mealID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update meal")
		return
	}
	if bucket == nil {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	if !tracker.UpdateMealMeta(bucket, mealID, tracker.MealMetaUpdate{
		Name:     req.Name,
		MealType: req.MealType,
		Time:     req.Time,
	}) {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	if err := services.SaveNutrition(ctx, bucket); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save meal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"nutrition": bucket,
	})
}

// DeleteMeal removes a meal and subtracts its totals from the day. Works
// for meals on past days too; the bucket is found by meal id, not date.
func DeleteMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	mealID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "mealId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meal id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	bucket, err := services.NutritionByMealID(ctx, user.ID, mealID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete meal")
		return
	}
	if bucket == nil {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	if _, ok := tracker.RemoveMeal(bucket, mealID); !ok {
		respondError(w, http.StatusNotFound, "Meal not found")
		return
	}

	if err := services.SaveNutrition(ctx, bucket); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete meal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Meal deleted",
		"nutrition": bucket,
	})
}

// LogWater adds a drink to today's water intake. The amount lands on both
// the nutrition and metric buckets; the two writes belong to one logical
// operation.
func LogWater(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req LogWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount := req.Amount
	if amount == 0 {
		amount = appConfig.Defaults.WaterIncrement
	}
	if amount < 0 {
		respondError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()
	nutrition, err := services.EnsureNutritionBucket(ctx, user, now, appConfig.Defaults, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log water")
		return
	}
	metric, err := services.EnsureMetricBucket(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log water")
		return
	}

	event := tracker.WaterLogged{Liters: amount}
	event.ApplyToNutrition(nutrition)
	event.ApplyToMetric(metric)

	if err := services.SaveNutrition(ctx, nutrition); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log water")
		return
	}
	if err := services.SaveMetric(ctx, metric); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to log water")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"waterIntake": nutrition.WaterIntake,
		"nutrition":   nutrition,
	})
}

func validMealType(t string) bool {
	for _, v := range models.MealTypes {
		if v == t {
			return true
		}
	}
	return false
}
