package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanGoals are the daily targets a nutrition plan prescribes.
type PlanGoals struct {
	DailyCalories float64 `bson:"daily_calories" json:"dailyCalories"`
	ProteinGrams  float64 `bson:"protein_grams" json:"proteinGrams"`
	CarbsGrams    float64 `bson:"carbs_grams" json:"carbsGrams"`
	FatsGrams     float64 `bson:"fats_grams" json:"fatsGrams"`
}

// MealSlot is one scheduled meal in a plan.
type MealSlot struct {
	Name           string  `bson:"name" json:"name"`                 // e.g. "Breakfast"
	TargetTime     string  `bson:"target_time" json:"targetTime"`    // e.g. "08:00"
	TargetCalories float64 `bson:"target_calories" json:"targetCalories"`
}

// NutritionPlan governs target resolution while active. At most one plan
// per user has IsActive set; activating a plan deactivates its siblings.
type NutritionPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Name     string             `bson:"name" json:"name"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	Goals        PlanGoals  `bson:"goals" json:"goals"`
	MealSchedule []MealSlot `bson:"meal_schedule" json:"mealSchedule"`
}

// DefaultMealSchedule is applied when a plan is created without one.
func DefaultMealSchedule() []MealSlot {
	return []MealSlot{
		{Name: "Breakfast", TargetTime: "08:00", TargetCalories: 500},
		{Name: "Lunch", TargetTime: "12:00", TargetCalories: 600},
		{Name: "Dinner", TargetTime: "18:00", TargetCalories: 700},
		{Name: "Snack", TargetTime: "15:00", TargetCalories: 200},
	}
}
