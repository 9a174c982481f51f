package handlers

import (
	"encoding/json"
	"log"
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

type ProfileResponse struct {
	Success bool          `json:"success"`
	User    *models.User  `json:"user"`
	Stats   tracker.Stats `json:"stats"`
}

type UpdateProfileRequest struct {
	Name           *string           `json:"name,omitempty"`
	ProfilePicture *string           `json:"profilePicture,omitempty"`
	Goals          *models.UserGoals `json:"goals,omitempty"`
}

// resolveTargetUser returns the user addressed by the {userId} path
// parameter. Users can only address themselves; admins can address anyone.
func resolveTargetUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}

	param := chi.URLParam(r, "userId")
	if param == "" || param == "me" {
		return caller, true
	}

	targetID, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return nil, false
	}
	if targetID == caller.ID {
		return caller, true
	}
	if caller.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var target models.User
	err = database.DB.Collection("users").FindOne(ctx, bson.M{"_id": targetID}).Decode(&target)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load user")
		return nil, false
	}
	return &target, true
}

// GetProfile returns a profile with stats recomputed from the full workout
// history. The recomputed stats overwrite the snapshot cached on the user
// document.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveTargetUser(w, r)
	if !ok {
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
		respondError(w, http.StatusInternalServerError, "Failed to load workout history")
		return
	}
	var workouts []models.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load workout history")
		return
	}

	now := time.Now()
	todayMetric, err := services.TodayMetric(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load today's metrics")
		return
	}

	stats := tracker.ComputeStats(workouts, todayMetric, now)

	// Refresh the snapshot; a write failure here only means a stale cache
	snapshot := models.UserStats{
		Level:   stats.Level,
		Badges:  stats.Badges,
		Streak:  stats.Streak,
		TotalKm: stats.TotalKm,
	}
	if snapshot != user.Stats {
		if _, err := database.DB.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{"stats": snapshot, "updated_at": now},
		}); err != nil {
			log.Printf("Failed to refresh stats snapshot for %s: %v", user.ID.Hex(), err)
		}
		user.Stats = snapshot
	}

	respondJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		User:    user,
		Stats:   stats,
	})
}

// UpdateProfile edits a profile's name, picture, and goals. Email,
// password, and role are never editable through this endpoint.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := resolveTargetUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		if *req.Name == "" {
			respondError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		set["name"] = *req.Name
	}
	if req.ProfilePicture != nil {
		set["profile_picture"] = *req.ProfilePicture
	}
	if req.Goals != nil {
		set["goals"] = *req.Goals
	}
	if len(set) == 1 {
		respondError(w, http.StatusBadRequest, "No editable fields provided")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var updated models.User
	err := database.DB.Collection("users").FindOneAndUpdate(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    updated,
	})
}
