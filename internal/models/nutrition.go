package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealTypes are the accepted values for Meal.MealType.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack", "other"}

// MealFood is one food entry inside a logged meal. Nutrition values are
// computed once at log time and cached here.
type MealFood struct {
	FoodItemID primitive.ObjectID `bson:"food_item_id" json:"foodItemId"`
	Servings   float64            `bson:"servings" json:"servings"`
	Name       string             `bson:"name" json:"name"` // cached for display
	Calories   float64            `bson:"calories" json:"calories"`
	Protein    float64            `bson:"protein" json:"protein"`
	Carbs      float64            `bson:"carbs" json:"carbs"`
	Fats       float64            `bson:"fats" json:"fats"`
}

// Meal is a logged meal inside a daily nutrition bucket. The meal-level
// totals are the sum of the cached food values.
type Meal struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	Name       string              `bson:"name" json:"name"`
	MealType   string              `bson:"meal_type" json:"mealType"`
	Time       time.Time           `bson:"time" json:"time"`
	TemplateID *primitive.ObjectID `bson:"template_id,omitempty" json:"templateId,omitempty"`
	Foods      []MealFood          `bson:"foods" json:"foods"`

	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
}

// DailyNutrition is the per-user, per-calendar-day nutrition bucket.
// Invariant: the running totals equal the sum of the contained meals'
// totals after every mutation.
//
// Day is the explicit "2006-01-02" composite key; together with UserID it
// carries a unique index so concurrent find-or-create upserts cannot
// produce duplicate buckets.
type DailyNutrition struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Date   time.Time          `bson:"date" json:"date"`
	Day    string             `bson:"day" json:"day"`

	CaloriesConsumed float64 `bson:"calories_consumed" json:"caloriesConsumed"`
	CaloriesTarget   float64 `bson:"calories_target" json:"caloriesTarget"`
	Protein          float64 `bson:"protein" json:"protein"` // grams
	ProteinTarget    float64 `bson:"protein_target" json:"proteinTarget"`
	Carbs            float64 `bson:"carbs" json:"carbs"`
	CarbsTarget      float64 `bson:"carbs_target" json:"carbsTarget"`
	Fats             float64 `bson:"fats" json:"fats"`
	FatsTarget       float64 `bson:"fats_target" json:"fatsTarget"`

	PlanID      *primitive.ObjectID `bson:"plan_id,omitempty" json:"planId,omitempty"`
	WaterIntake float64             `bson:"water_intake" json:"waterIntake"` // liters

	Meals []Meal `bson:"meals" json:"meals"`
}
