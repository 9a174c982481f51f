package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanRequest struct {
	Name         string             `json:"name"`
	Goals        models.PlanGoals   `json:"goals"`
	MealSchedule []models.MealSlot  `json:"mealSchedule,omitempty"`
}

// GetPlans lists the caller's nutrition plans, active one first.
func GetPlans(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("nutrition_plans").Find(
		ctx,
		bson.M{"user_id": user.ID},
		options.Find().SetSort(bson.D{{Key: "is_active", Value: -1}, {Key: "created_at", Value: -1}}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load plans")
		return
	}
	var plans []models.NutritionPlan
	if err := cursor.All(ctx, &plans); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load plans")
		return
	}
	if plans == nil {
		plans = []models.NutritionPlan{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"plans":   plans,
	})
}

// CreatePlan adds a plan. New plans start inactive; activation is explicit.
func CreatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	schedule := req.MealSchedule
	if len(schedule) == 0 {
		schedule = models.DefaultMealSchedule()
	}

	now := time.Now()
	plan := models.NutritionPlan{
		CreatedAt:    now,
		UpdatedAt:    now,
		UserID:       user.ID,
		Name:         req.Name,
		IsActive:     false,
		Goals:        req.Goals,
		MealSchedule: schedule,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("nutrition_plans").InsertOne(ctx, plan)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"plan":    plan,
	})
}

// UpdatePlan edits a plan's name, goals, and schedule. Changed goals affect
// target resolution only for buckets created after the change; stored
// targets stay sticky.
func UpdatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	planID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "planId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid plan id")
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updated_at": time.Now(), "goals": req.Goals}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.MealSchedule != nil {
		set["meal_schedule"] = req.MealSchedule
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var plan models.NutritionPlan
	err = database.DB.Collection("nutrition_plans").FindOneAndUpdate(
		ctx,
		bson.M{"_id": planID, "user_id": user.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"plan":    plan,
	})
}

// ActivatePlan marks one plan active and deactivates all the caller's
// other plans, keeping the at-most-one-active invariant.
func ActivatePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	planID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "planId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid plan id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	coll := database.DB.Collection("nutrition_plans")

	cursor, err := coll.Find(ctx, bson.M{"user_id": user.ID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to activate plan")
		return
	}
	var plans []models.NutritionPlan
	if err := cursor.All(ctx, &plans); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to activate plan")
		return
	}

	changed, found := tracker.ActivatePlan(plans, planID, time.Now())
	if !found {
		respondError(w, http.StatusNotFound, "Plan not found")
		return
	}

	for _, p := range changed {
		if _, err := coll.UpdateByID(ctx, p.ID, bson.M{
			"$set": bson.M{"is_active": p.IsActive, "updated_at": p.UpdatedAt},
		}); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to activate plan")
			return
		}
	}

	var plan models.NutritionPlan
	for _, p := range plans {
		if p.ID == planID {
			plan = p
			break
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"plan":    plan,
	})
}

// DeletePlan removes a plan owned by the caller.
func DeletePlan(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	planID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "planId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid plan id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("nutrition_plans").DeleteOne(
		ctx, bson.M{"_id": planID, "user_id": user.ID},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Plan not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Plan deleted",
	})
}
