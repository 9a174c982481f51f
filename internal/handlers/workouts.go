package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateWorkoutRequest struct {
	Title     string                   `json:"title"`
	Type      string                   `json:"type"`
	StartTime *time.Time               `json:"startTime,omitempty"`
	EndTime   *time.Time               `json:"endTime,omitempty"`
	Duration  float64                  `json:"duration"` // minutes
	Calories  float64                  `json:"calories"`
	Distance  float64                  `json:"distance"` // km
	Intensity string                   `json:"intensity"`
	Notes     string                   `json:"notes,omitempty"`
	Exercises []models.WorkoutExercise `json:"exercises,omitempty"`
}

// GetWorkouts lists the caller's workouts, newest first.
func GetWorkouts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("workouts").Find(
		ctx,
		bson.M{"user_id": user.ID},
		options.Find().SetSort(bson.M{"start_time": -1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load workouts")
		return
	}
	var workouts []models.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load workouts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"workouts": workouts,
	})
}

// GetWorkout returns one workout owned by the caller.
func GetWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workoutId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var workout models.Workout
	err = database.DB.Collection("workouts").FindOne(
		ctx, bson.M{"_id": workoutID, "user_id": user.ID},
	).Decode(&workout)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Workout not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load workout")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"workout": workout,
	})
}

// CreateWorkout saves a workout session and rolls its duration and calorie
// burn into the day's metric bucket.
func CreateWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Duration < 0 || req.Calories < 0 || req.Distance < 0 {
		respondError(w, http.StatusBadRequest, "Duration, calories, and distance must not be negative")
		return
	}
	if req.Intensity != "" && !validIntensity(req.Intensity) {
		respondError(w, http.StatusBadRequest, "Invalid intensity")
		return
	}

	now := time.Now()
	startTime := now
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	var totalVolume float64
	for _, ex := range req.Exercises {
		for _, set := range ex.Sets {
			totalVolume += float64(set.Reps) * set.Weight
		}
	}
	exercises := req.Exercises
	if exercises == nil {
		exercises = []models.WorkoutExercise{}
	}

	workout := models.Workout{
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      user.ID,
		Title:       req.Title,
		Type:        req.Type,
		StartTime:   startTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		Calories:    req.Calories,
		Distance:    req.Distance,
		Intensity:   req.Intensity,
		TotalVolume: totalVolume,
		Notes:       req.Notes,
		Exercises:   exercises,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("workouts").InsertOne(ctx, workout)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save workout")
		return
	}
	workout.ID = result.InsertedID.(primitive.ObjectID)

	// Side effect on the day's metrics; the workout is already saved, so a
	// metric failure is reported but does not undo the session
	metric, err := services.EnsureMetricBucket(ctx, user.ID, now)
	if err == nil {
		tracker.WorkoutCompleted{Duration: workout.Duration, Calories: workout.Calories}.ApplyToMetric(metric)
		err = services.SaveMetric(ctx, metric)
	}
	if err != nil {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Workout saved, but daily metrics could not be updated",
			"workout": workout,
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"workout": workout,
		"metrics": metric,
	})
}

// DeleteWorkout removes a workout owned by the caller. Past metric rollups
// are intentionally left in place.
func DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workoutId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("workouts").DeleteOne(
		ctx, bson.M{"_id": workoutID, "user_id": user.ID},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Workout not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Workout deleted",
	})
}

func validIntensity(v string) bool {
	for _, i := range models.Intensities {
		if i == v {
			return true
		}
	}
	return false
}
