package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodCategories are the accepted values for FoodItem.Category.
var FoodCategories = []string{"protein", "carbs", "fats", "vegetables", "fruits", "dairy", "grains", "other"}

// FoodNutrition is the per-serving nutrition snapshot of a food item.
type FoodNutrition struct {
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"` // grams
	Carbs    float64 `bson:"carbs" json:"carbs"`     // grams
	Fats     float64 `bson:"fats" json:"fats"`       // grams
	Fiber    float64 `bson:"fiber" json:"fiber"`     // grams
	Sugar    float64 `bson:"sugar" json:"sugar"`     // grams
}

// FoodItem is a catalog entry. Logged meals cache their own computed values,
// so editing a food item never retroactively changes past meals.
type FoodItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name        string        `bson:"name" json:"name"`
	Brand       string        `bson:"brand,omitempty" json:"brand,omitempty"`
	Category    string        `bson:"category" json:"category"`
	ServingSize string        `bson:"serving_size" json:"servingSize"` // e.g. "100g"
	Nutrition   FoodNutrition `bson:"nutrition" json:"nutrition"`

	IsVerified bool                `bson:"is_verified" json:"isVerified"` // true for admin-verified foods
	CreatedBy  *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
}
