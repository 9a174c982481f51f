package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/pkg/utils"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminUpdateUserRequest struct {
	IsActive *bool   `json:"isActive,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type AdminSettingsRequest struct {
	MaintenanceMode      *bool `json:"maintenanceMode,omitempty"`
	RegistrationsEnabled *bool `json:"registrationsEnabled,omitempty"`
}

type UnblockIPRequest struct {
	IPAddress string `json:"ipAddress"`
}

// AdminGetUsers lists all accounts, newest first.
func AdminGetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("users").Find(
		ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

// AdminUpdateUser changes a user's active flag or role.
func AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			respondError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		set["role"] = *req.Role
	}
	if len(set) == 1 {
		respondError(w, http.StatusBadRequest, "No editable fields provided")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	err = database.DB.Collection("users").FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	// Deactivation also kills any live session
	if req.IsActive != nil && !*req.IsActive {
		services.InvalidateUserSessions(userID)
	}

	services.LogAction("USER_UPDATE", "Admin updated user account", admin.ID.Hex(),
		userID.Hex(), "USER", services.GetIPAddress(r), map[string]interface{}{
			"isActive": req.IsActive,
			"role":     req.Role,
		})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// AdminDeleteUser removes an account and all of its tracked data.
func AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	if userID == admin.ID {
		respondError(w, http.StatusBadRequest, "Admins cannot delete their own account")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	services.InvalidateUserSessions(userID)

	// Cascade over the user's documents
	userFilter := bson.M{"user_id": userID}
	for _, coll := range []string{"daily_nutrition", "metrics", "workouts", "nutrition_plans", "meal_templates"} {
		database.DB.Collection(coll).DeleteMany(ctx, userFilter)
	}

	services.LogAction("USER_DELETE", "Admin deleted user account and data", admin.ID.Hex(),
		userID.Hex(), "USER", services.GetIPAddress(r), nil)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User and associated data deleted",
	})
}

// AdminResetUserPassword sets a new password for a user and kills their
// sessions. Used for support cases where the email reset flow is stuck.
func AdminResetUserPassword(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$set":   bson.M{"password": hashed, "updated_at": time.Now()},
		"$unset": bson.M{"reset_password_code": "", "reset_password_expires": ""},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	services.InvalidateUserSessions(userID)

	services.LogAction("USER_PASSWORD_RESET", "Admin reset user password", admin.ID.Hex(),
		userID.Hex(), "USER", services.GetIPAddress(r), nil)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset",
	})
}

// AdminGetSettings returns the app-wide settings singleton.
func AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	settings, err := services.GetSettings(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}

// AdminUpdateSettings flips app-wide switches.
func AdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	var req AdminSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"last_updated_by": admin.ID}
	if req.MaintenanceMode != nil {
		update["maintenance_mode"] = *req.MaintenanceMode
	}
	if req.RegistrationsEnabled != nil {
		update["registrations_enabled"] = *req.RegistrationsEnabled
	}
	if len(update) == 1 {
		respondError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	settings, err := services.UpdateSettings(ctx, update)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	services.LogAction("SETTINGS_CHANGE", "Admin changed app settings", admin.ID.Hex(),
		"", "SETTING", services.GetIPAddress(r), map[string]interface{}{
			"maintenanceMode":      req.MaintenanceMode,
			"registrationsEnabled": req.RegistrationsEnabled,
		})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}

// AdminGetWorkouts lists recent workouts across all users.
func AdminGetWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("workouts").Find(
		ctx, bson.M{},
		options.Find().SetSort(bson.M{"start_time": -1}).SetLimit(200),
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

// AdminGetMetrics lists recent metric buckets across all users.
func AdminGetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("metrics").Find(
		ctx, bson.M{},
		options.Find().SetSort(bson.M{"date": -1}).SetLimit(200),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load metrics")
		return
	}
	var metrics []models.Metric
	if err := cursor.All(ctx, &metrics); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load metrics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"metrics": metrics,
	})
}

// AdminDeleteWorkout removes any user's workout.
func AdminDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	workoutID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "workoutId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid workout id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("workouts").DeleteOne(ctx, bson.M{"_id": workoutID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Workout not found")
		return
	}

	services.LogAction("WORKOUT_DELETE", "Admin deleted workout", admin.ID.Hex(),
		workoutID.Hex(), "WORKOUT", services.GetIPAddress(r), nil)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Workout deleted",
	})
}

// AdminDeleteMetric removes any user's metric bucket.
func AdminDeleteMetric(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	metricID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "metricId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid metric id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("metrics").DeleteOne(ctx, bson.M{"_id": metricID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete metric")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Metric not found")
		return
	}

	services.LogAction("METRIC_DELETE", "Admin deleted metric bucket", admin.ID.Hex(),
		metricID.Hex(), "METRIC", services.GetIPAddress(r), nil)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Metric deleted",
	})
}

// AdminGetActivityLogs returns the Postgres audit trail, newest first.
func AdminGetActivityLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	logs, err := services.RecentActivityLogs(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load activity logs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"logs":    logs,
	})
}

// AdminGetStats returns headline counts for the admin overview.
func AdminGetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	counts := map[string]int64{}
	for key, coll := range map[string]string{
		"users":     "users",
		"workouts":  "workouts",
		"metrics":   "metrics",
		"nutrition": "daily_nutrition",
		"foods":     "food_items",
		"posts":     "posts",
	} {
		n, err := database.DB.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load stats")
			return
		}
		counts[key] = n
	}

	activeUsers, err := database.DB.Collection("users").CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	counts["activeUsers"] = activeUsers

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   counts,
	})
}

// AdminUnblockIP lifts a rate-limit block.
func AdminUnblockIP(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFromContext(r.Context())

	var req UnblockIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IPAddress == "" {
		respondError(w, http.StatusBadRequest, "IP address is required")
		return
	}

	if err := middleware.UnblockIP(req.IPAddress); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to unblock IP")
		return
	}

	services.LogAction("IP_UNBLOCK", "Admin unblocked IP", admin.ID.Hex(),
		req.IPAddress, "IP", services.GetIPAddress(r), nil)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "IP unblocked",
	})
}
