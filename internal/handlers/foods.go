package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateFoodRequest struct {
	Name        string               `json:"name"`
	Brand       string               `json:"brand,omitempty"`
	Category    string               `json:"category"`
	ServingSize string               `json:"servingSize"`
	Nutrition   models.FoodNutrition `json:"nutrition"`
}

// SearchFoods queries the catalog. A search term uses the text index and
// falls back to a prefix-friendly regex when the text search matches
// nothing; without a term the catalog is listed, category-filtered if asked.
func SearchFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	ctx, cancel := requestContext(r)
	defer cancel()

	coll := database.DB.Collection("food_items")
	findOpts := options.Find().SetSort(bson.M{"name": 1}).SetLimit(50)

	baseFilter := bson.M{}
	if category != "" {
		baseFilter["category"] = category
	}

	var foods []models.FoodItem
	if query != "" {
		textFilter := bson.M{"$text": bson.M{"$search": query}}
		for k, v := range baseFilter {
			textFilter[k] = v
		}
		cursor, err := coll.Find(ctx, textFilter, findOpts)
		if err == nil {
			err = cursor.All(ctx, &foods)
		}
		if err != nil || len(foods) == 0 {
			// Text search misses partial words; retry with a regex
			regexFilter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
			for k, v := range baseFilter {
				regexFilter[k] = v
			}
			cursor, err := coll.Find(ctx, regexFilter, findOpts)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to search foods")
				return
			}
			foods = nil
			if err := cursor.All(ctx, &foods); err != nil {
				respondError(w, http.StatusInternalServerError, "Failed to search foods")
				return
			}
		}
	} else {
		cursor, err := coll.Find(ctx, baseFilter, findOpts)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load foods")
			return
		}
		if err := cursor.All(ctx, &foods); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load foods")
			return
		}
	}

	if foods == nil {
		foods = []models.FoodItem{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"foods":   foods,
	})
}

// GetFoodCategories returns the category values present in the catalog.
func GetFoodCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	values, err := database.DB.Collection("food_items").Distinct(ctx, "category", bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	categories := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// GetFood returns one catalog entry.
func GetFood(w http.ResponseWriter, r *http.Request) {
	foodID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "foodId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid food id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var food models.FoodItem
	err = database.DB.Collection("food_items").FindOne(ctx, bson.M{"_id": foodID}).Decode(&food)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Food not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load food")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"food":    food,
	})
}

// CreateFood adds a user-contributed catalog entry. User entries start
// unverified; only admin review flips is_verified.
func CreateFood(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.ServingSize == "" {
		respondError(w, http.StatusBadRequest, "Name and serving size are required")
		return
	}
	if req.Category == "" {
		req.Category = "other"
	}
	if !validFoodCategory(req.Category) {
		respondError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if req.Nutrition.Calories < 0 || req.Nutrition.Protein < 0 || req.Nutrition.Carbs < 0 || req.Nutrition.Fats < 0 {
		respondError(w, http.StatusBadRequest, "Nutrition values must not be negative")
		return
	}

	now := time.Now()
	food := models.FoodItem{
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		ServingSize: req.ServingSize,
		Nutrition:   req.Nutrition,
		IsVerified:  false,
		CreatedBy:   &user.ID,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("food_items").InsertOne(ctx, food)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create food")
		return
	}
	food.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"food":    food,
	})
}

func validFoodCategory(c string) bool {
	for _, v := range models.FoodCategories {
		if v == c {
			return true
		}
	}
	return false
}
