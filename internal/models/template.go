package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateFood references a food item with a serving count; unlike MealFood
// it caches no nutrition, the template total is recomputed on edit.
type TemplateFood struct {
	FoodItemID primitive.ObjectID `bson:"food_item_id" json:"foodItemId"`
	Servings   float64            `bson:"servings" json:"servings"`
}

type TemplateNutrition struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
}

// MealTemplate is a reusable meal. UserID is nil for system templates;
// public templates are visible to everyone.
type MealTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID   *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	Name     string              `bson:"name" json:"name"`
	Category string              `bson:"category" json:"category"`
	IsPublic bool                `bson:"is_public" json:"isPublic"`

	Foods          []TemplateFood    `bson:"foods" json:"foods"`
	TotalNutrition TemplateNutrition `bson:"total_nutrition" json:"totalNutrition"`
	Instructions   string            `bson:"instructions,omitempty" json:"instructions,omitempty"`
}
