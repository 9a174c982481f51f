package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetExercises lists the exercise catalog, filterable by search term,
// category, and type.
func GetExercises(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter["category"] = category
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		filter["type"] = typ
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("exercises").Find(
		ctx, filter, options.Find().SetSort(bson.M{"name": 1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	var exercises []models.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"exercises": exercises,
	})
}

// GetPopularExercises returns the most popular catalog entries.
func GetPopularExercises(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cursor, err := database.DB.Collection("exercises").Find(
		ctx, bson.M{},
		options.Find().SetSort(bson.M{"popularity": -1}).SetLimit(limit),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	var exercises []models.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"exercises": exercises,
	})
}
