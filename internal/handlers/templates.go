package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
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

type TemplateRequest struct {
	Name         string                `json:"name"`
	Category     string                `json:"category,omitempty"`
	IsPublic     bool                  `json:"isPublic"`
	Foods        []models.TemplateFood `json:"foods"`
	Instructions string                `json:"instructions,omitempty"`
}

// templateTotals recomputes a template's total nutrition from the catalog.
// Unlike logged meals, template totals track catalog edits: they are
// recalculated on every create and update.
func templateTotals(ctx context.Context, foods []models.TemplateFood) (models.TemplateNutrition, error) {
	var total models.TemplateNutrition
	coll := database.DB.Collection("food_items")

	for _, f := range foods {
		var item models.FoodItem
		err := coll.FindOne(ctx, bson.M{"_id": f.FoodItemID}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return total, err
		}
		servings := f.Servings
		if servings <= 0 {
			servings = 1
		}
		total.Calories += item.Nutrition.Calories * servings
		total.Protein += item.Nutrition.Protein * servings
		total.Carbs += item.Nutrition.Carbs * servings
		total.Fats += item.Nutrition.Fats * servings
	}

	total.Calories = math.Round(total.Calories)
	total.Protein = math.Round(total.Protein*10) / 10
	total.Carbs = math.Round(total.Carbs*10) / 10
	total.Fats = math.Round(total.Fats*10) / 10
	return total, nil
}

// GetTemplates lists templates visible to the caller: their own plus
// public and system templates.
func GetTemplates(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"user_id": user.ID},
		{"is_public": true},
		{"user_id": nil},
	}}
	cursor, err := database.DB.Collection("meal_templates").Find(
		ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	var templates []models.MealTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	if templates == nil {
		templates = []models.MealTemplate{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"templates": templates,
	})
}

// CreateTemplate saves a reusable meal with its totals computed from the
// current catalog.
func CreateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || len(req.Foods) == 0 {
		respondError(w, http.StatusBadRequest, "Name and at least one food are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	totals, err := templateTotals(ctx, req.Foods)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute template nutrition")
		return
	}

	now := time.Now()
	template := models.MealTemplate{
		CreatedAt:      now,
		UpdatedAt:      now,
		UserID:         &user.ID,
		Name:           req.Name,
		Category:       req.Category,
		IsPublic:       req.IsPublic,
		Foods:          req.Foods,
		TotalNutrition: totals,
		Instructions:   req.Instructions,
	}

	result, err := database.DB.Collection("meal_templates").InsertOne(ctx, template)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}
	template.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"template": template,
	})
}

// UpdateTemplate edits one of the caller's templates and recomputes its
// totals.
func UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	templateID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "templateId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template id")
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	set := bson.M{"updated_at": time.Now(), "is_public": req.IsPublic}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Category != "" {
		set["category"] = req.Category
	}
	if req.Instructions != "" {
		set["instructions"] = req.Instructions
	}
	if len(req.Foods) > 0 {
		totals, err := templateTotals(ctx, req.Foods)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to compute template nutrition")
			return
		}
		set["foods"] = req.Foods
		set["total_nutrition"] = totals
	}

	var template models.MealTemplate
	err = database.DB.Collection("meal_templates").FindOneAndUpdate(
		ctx,
		bson.M{"_id": templateID, "user_id": user.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&template)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"template": template,
	})
}

// DeleteTemplate removes one of the caller's templates. Meals already
// logged from it keep their cached values.
func DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	templateID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "templateId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template id")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("meal_templates").DeleteOne(
		ctx, bson.M{"_id": templateID, "user_id": user.ID},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Template not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Template deleted",
	})
}
