package tracker

import (
	"testing"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func catalogLookup(items ...models.FoodItem) FoodLookup {
	byID := make(map[primitive.ObjectID]models.FoodItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return func(id primitive.ObjectID) (*models.FoodItem, bool) {
		item, ok := byID[id]
		if !ok {
			return nil, false
		}
		return &item, true
	}
}

func foodItem(name string, calories, protein, carbs, fats float64) models.FoodItem {
	return models.FoodItem{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Nutrition: models.FoodNutrition{Calories: calories, Protein: protein, Carbs: carbs, Fats: fats},
	}
}

// requireInvariant checks that the daily totals equal the sum of the
// contained meals' totals.
func requireInvariant(t *testing.T, n *models.DailyNutrition) {
	t.Helper()
	var calories, protein, carbs, fats float64
	for _, m := range n.Meals {
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fats += m.Fats
	}
	require.Equal(t, calories, n.CaloriesConsumed)
	require.Equal(t, protein, n.Protein)
	require.Equal(t, carbs, n.Carbs)
	require.Equal(t, fats, n.Fats)
}

func TestLogThenDeleteMeal(t *testing.T) {
	now := time.Now()
	oats := foodItem("Oats", 100, 3.5, 17, 2)
	banana := foodItem("Banana", 100, 1.1, 23, 0.3)
	lookup := catalogLookup(oats, banana)

	meal, err := BuildMeal(LogMealCommand{
		MealType: "breakfast",
		Foods: []FoodPortion{
			{FoodItemID: oats.ID, Servings: 1},
			{FoodItemID: banana.ID, Servings: 1},
		},
	}, lookup, now)
	require.NoError(t, err)
	require.Equal(t, 200.0, meal.Calories)
	require.Len(t, meal.Foods, 2)

	n := &models.DailyNutrition{}
	ApplyMeal(n, meal)
	require.Equal(t, 200.0, n.CaloriesConsumed)
	requireInvariant(t, n)

	removed, ok := RemoveMeal(n, meal.ID)
	require.True(t, ok)
	require.Equal(t, meal.ID, removed.ID)
	require.Equal(t, 0.0, n.CaloriesConsumed)
	require.Empty(t, n.Meals)
	requireInvariant(t, n)
}

func TestPartialFoodResolution(t *testing.T) {
	valid := foodItem("Chicken Breast", 150, 31, 0, 3.6)
	lookup := catalogLookup(valid)

	meal, err := BuildMeal(LogMealCommand{
		Foods: []FoodPortion{
			{FoodItemID: valid.ID, Servings: 1},
			{FoodItemID: primitive.NewObjectID(), Servings: 2}, // stale reference
		},
	}, lookup, time.Now())

	require.NoError(t, err, "a stale food reference must not fail the request")
	require.Len(t, meal.Foods, 1)
	require.Equal(t, 150.0, meal.Calories)
}

func TestZeroResolvableFoodsRejected(t *testing.T) {
	lookup := catalogLookup()

	_, err := BuildMeal(LogMealCommand{
		Foods: []FoodPortion{{FoodItemID: primitive.NewObjectID()}},
	}, lookup, time.Now())
	require.ErrorIs(t, err, ErrNoResolvableFoods)

	_, err = BuildMeal(LogMealCommand{}, lookup, time.Now())
	require.ErrorIs(t, err, ErrNoResolvableFoods)
}

func TestBuildMealDefaults(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 30, 0, 0, time.Local)
	rice := foodItem("Rice", 130, 2.7, 28, 0.3)
	lookup := catalogLookup(rice)

	meal, err := BuildMeal(LogMealCommand{
		Foods: []FoodPortion{{FoodItemID: rice.ID}}, // servings absent
	}, lookup, now)
	require.NoError(t, err)

	require.Equal(t, "Meal", meal.Name)
	require.Equal(t, "other", meal.MealType)
	require.Equal(t, now, meal.Time)
	require.Equal(t, 1.0, meal.Foods[0].Servings, "absent servings defaults to 1")
	require.False(t, meal.ID.IsZero())
}

func TestBuildMealRounding(t *testing.T) {
	item := foodItem("Almonds", 57.9, 2.12, 2.16, 4.98)
	lookup := catalogLookup(item)

	meal, err := BuildMeal(LogMealCommand{
		Foods: []FoodPortion{{FoodItemID: item.ID, Servings: 3}},
	}, lookup, time.Now())
	require.NoError(t, err)

	// 57.9*3=173.7 → 174; 2.12*3=6.36 → 6.4
	require.Equal(t, 174.0, meal.Foods[0].Calories)
	require.Equal(t, 6.4, meal.Foods[0].Protein)
	require.Equal(t, 6.5, meal.Foods[0].Carbs)  // 6.48
	require.Equal(t, 14.9, meal.Foods[0].Fats)  // 14.94
	require.Equal(t, 174.0, meal.Calories)
}

func TestDeletionFloorsAtZero(t *testing.T) {
	meal := models.Meal{ID: primitive.NewObjectID(), Calories: 200, Protein: 10.5, Carbs: 20, Fats: 5}
	// Totals drifted below the meal's cached values
	n := &models.DailyNutrition{
		CaloriesConsumed: 150,
		Protein:          10.4,
		Carbs:            20,
		Fats:             4,
		Meals:            []models.Meal{meal},
	}

	_, ok := RemoveMeal(n, meal.ID)
	require.True(t, ok)
	require.Equal(t, 0.0, n.CaloriesConsumed)
	require.Equal(t, 0.0, n.Protein)
	require.Equal(t, 0.0, n.Carbs)
	require.Equal(t, 0.0, n.Fats)
}

func TestRemoveMealNotFound(t *testing.T) {
	n := &models.DailyNutrition{Meals: []models.Meal{{ID: primitive.NewObjectID(), Calories: 300}}}
	n.CaloriesConsumed = 300

	_, ok := RemoveMeal(n, primitive.NewObjectID())
	require.False(t, ok)
	require.Equal(t, 300.0, n.CaloriesConsumed, "a miss must not touch the totals")
	require.Len(t, n.Meals, 1)
}

func TestUpdateMealMetaDoesNotTouchNutrition(t *testing.T) {
	mealID := primitive.NewObjectID()
	n := &models.DailyNutrition{
		CaloriesConsumed: 420,
		Meals: []models.Meal{{
			ID: mealID, Name: "Meal", MealType: "other", Calories: 420,
			Foods: []models.MealFood{{Name: "Pasta", Calories: 420, Servings: 1}},
		}},
	}

	name := "Post-run dinner"
	mealType := "dinner"
	ok := UpdateMealMeta(n, mealID, MealMetaUpdate{Name: &name, MealType: &mealType})
	require.True(t, ok)

	require.Equal(t, "Post-run dinner", n.Meals[0].Name)
	require.Equal(t, "dinner", n.Meals[0].MealType)
	require.Equal(t, 420.0, n.Meals[0].Calories)
	require.Equal(t, 420.0, n.CaloriesConsumed)

	require.False(t, UpdateMealMeta(n, primitive.NewObjectID(), MealMetaUpdate{Name: &name}))
}

func TestInvariantAcrossMixedOperations(t *testing.T) {
	now := time.Now()
	a := foodItem("Eggs", 155, 13, 1.1, 11)
	b := foodItem("Toast", 75, 2.6, 13, 1)
	lookup := catalogLookup(a, b)

	n := &models.DailyNutrition{}

	first, err := BuildMeal(LogMealCommand{MealType: "breakfast", Foods: []FoodPortion{
		{FoodItemID: a.ID, Servings: 2}, {FoodItemID: b.ID, Servings: 1},
	}}, lookup, now)
	require.NoError(t, err)
	ApplyMeal(n, first)
	requireInvariant(t, n)

	second, err := BuildMeal(LogMealCommand{MealType: "lunch", Foods: []FoodPortion{
		{FoodItemID: b.ID, Servings: 2},
	}}, lookup, now)
	require.NoError(t, err)
	ApplyMeal(n, second)
	requireInvariant(t, n)

	_, ok := RemoveMeal(n, first.ID)
	require.True(t, ok)
	requireInvariant(t, n)

	_, ok = RemoveMeal(n, second.ID)
	require.True(t, ok)
	requireInvariant(t, n)
	require.Zero(t, n.CaloriesConsumed)
}
