package tracker

import (
	"errors"
	"math"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoResolvableFoods is returned when none of the food references in a
// log-meal command resolve to catalog entries.
var ErrNoResolvableFoods = errors.New("no resolvable foods in meal")

// FoodPortion references a catalog food with a serving multiplier.
type FoodPortion struct {
	FoodItemID primitive.ObjectID
	Servings   float64
}

// LogMealCommand is the typed log-meal request.
type LogMealCommand struct {
	Name       string
	MealType   string
	Time       time.Time
	TemplateID *primitive.ObjectID
	Foods      []FoodPortion
}

// FoodLookup resolves a food item by id. A false return means the
// reference is stale or bad and the portion is skipped.
type FoodLookup func(id primitive.ObjectID) (*models.FoodItem, bool)

// BuildMeal resolves the command's food references and computes the cached
// per-food and meal-level nutrition. Unresolvable foods are skipped
// silently, so a partially-resolvable meal still logs with the foods that
// exist; if nothing resolves the meal is rejected. Calories round to the
// nearest integer, macros to one decimal place.
func BuildMeal(cmd LogMealCommand, lookup FoodLookup, now time.Time) (models.Meal, error) {
	var calories, protein, carbs, fats float64
	foods := make([]models.MealFood, 0, len(cmd.Foods))

	for _, portion := range cmd.Foods {
		item, ok := lookup(portion.FoodItemID)
		if !ok {
			continue
		}
		servings := portion.Servings
		if servings <= 0 {
			servings = 1
		}

		foodCalories := item.Nutrition.Calories * servings
		foodProtein := item.Nutrition.Protein * servings
		foodCarbs := item.Nutrition.Carbs * servings
		foodFats := item.Nutrition.Fats * servings

		calories += foodCalories
		protein += foodProtein
		carbs += foodCarbs
		fats += foodFats

		foods = append(foods, models.MealFood{
			FoodItemID: portion.FoodItemID,
			Servings:   servings,
			Name:       item.Name,
			Calories:   math.Round(foodCalories),
			Protein:    roundMacro(foodProtein),
			Carbs:      roundMacro(foodCarbs),
			Fats:       roundMacro(foodFats),
		})
	}

	if len(foods) == 0 {
		return models.Meal{}, ErrNoResolvableFoods
	}

	name := cmd.Name
	if name == "" {
		name = "Meal"
	}
	mealType := cmd.MealType
	if mealType == "" {
		mealType = "other"
	}
	mealTime := cmd.Time
	if mealTime.IsZero() {
		mealTime = now
	}

	return models.Meal{
		ID:         primitive.NewObjectID(),
		Name:       name,
		MealType:   mealType,
		Time:       mealTime,
		TemplateID: cmd.TemplateID,
		Foods:      foods,
		Calories:   math.Round(calories),
		Protein:    roundMacro(protein),
		Carbs:      roundMacro(carbs),
		Fats:       roundMacro(fats),
	}, nil
}

// ApplyMeal appends the meal to the bucket and adds its totals to the
// daily running totals in lockstep.
func ApplyMeal(n *models.DailyNutrition, meal models.Meal) {
	n.Meals = append(n.Meals, meal)
	n.CaloriesConsumed += meal.Calories
	n.Protein += meal.Protein
	n.Carbs += meal.Carbs
	n.Fats += meal.Fats
}

// RemoveMeal deletes the meal with the given id from the bucket,
// subtracting its cached totals from the daily totals. Subtraction floors
// at zero so rounding drift can never drive a total negative.
func RemoveMeal(n *models.DailyNutrition, mealID primitive.ObjectID) (models.Meal, bool) {
	for i, meal := range n.Meals {
		if meal.ID != mealID {
			continue
		}
		n.CaloriesConsumed = math.Max(0, n.CaloriesConsumed-meal.Calories)
		n.Protein = math.Max(0, n.Protein-meal.Protein)
		n.Carbs = math.Max(0, n.Carbs-meal.Carbs)
		n.Fats = math.Max(0, n.Fats-meal.Fats)
		n.Meals = append(n.Meals[:i], n.Meals[i+1:]...)
		return meal, true
	}
	return models.Meal{}, false
}

// MealMetaUpdate carries the editable meal metadata. The foods and cached
// nutrition of a logged meal are immutable; nothing here triggers a
// recompute.
type MealMetaUpdate struct {
	Name     *string
	MealType *string
	Time     *time.Time
}

// UpdateMealMeta applies a metadata-only edit to the meal with the given
// id. Returns false if the meal is not in the bucket.
func UpdateMealMeta(n *models.DailyNutrition, mealID primitive.ObjectID, update MealMetaUpdate) bool {
	for i := range n.Meals {
		if n.Meals[i].ID != mealID {
			continue
		}
		if update.Name != nil {
			n.Meals[i].Name = *update.Name
		}
		if update.MealType != nil {
			n.Meals[i].MealType = *update.MealType
		}
		if update.Time != nil {
			n.Meals[i].Time = *update.Time
		}
		return true
	}
	return false
}

func roundMacro(v float64) float64 {
	return math.Round(v*10) / 10
}
