package services

import (
	"context"
	"log"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedCatalogs populates the food and exercise catalogs on first boot.
// Both seeds are idempotent: a non-empty collection is left alone.
func SeedCatalogs(ctx context.Context) error {
	if err := seedFoods(ctx); err != nil {
		return err
	}
	return seedExercises(ctx)
}

func seedFoods(ctx context.Context) error {
	coll := database.DB.Collection("food_items")
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type food struct {
		name, category, serving                    string
		calories, protein, carbs, fats, fiber, sugar float64
	}
	foods := []food{
		// Proteins
		{"Chicken Breast", "protein", "100g", 165, 31, 0, 3.6, 0, 0},
		{"Ground Beef (90% lean)", "protein", "100g", 176, 20, 0, 10, 0, 0},
		{"Salmon", "protein", "100g", 208, 20, 0, 13, 0, 0},
		{"Eggs", "protein", "1 large", 78, 6, 0.6, 5, 0, 0.6},
		{"Whey Protein Powder", "protein", "1 scoop (30g)", 120, 24, 3, 1.5, 0, 1},
		{"Greek Yogurt (non-fat)", "dairy", "100g", 59, 10, 3.6, 0.4, 0, 3.2},

		// Carbs
		{"White Rice (cooked)", "grains", "100g", 130, 2.7, 28, 0.3, 0.4, 0.1},
		{"Brown Rice (cooked)", "grains", "100g", 112, 2.6, 24, 0.9, 1.8, 0.4},
		{"Pasta (cooked)", "grains", "100g", 131, 5, 25, 1.1, 1.8, 0.6},
		{"Whole Wheat Bread", "grains", "1 slice (28g)", 69, 3.6, 12, 0.9, 1.9, 1.4},
		{"Oats (dry)", "grains", "100g", 389, 17, 66, 7, 11, 0.9},
		{"Sweet Potato (baked)", "carbs", "100g", 90, 2, 21, 0.2, 3.3, 6.5},

		// Fats
		{"Olive Oil", "fats", "1 tbsp (14g)", 119, 0, 0, 13.5, 0, 0},
		{"Avocado", "fats", "100g", 160, 2, 8.5, 15, 6.7, 0.7},
		{"Almonds", "fats", "28g (1 oz)", 164, 6, 6, 14, 3.5, 1.2},
		{"Peanut Butter", "fats", "2 tbsp (32g)", 188, 8, 7, 16, 2, 3},

		// Vegetables
		{"Broccoli", "vegetables", "100g", 34, 2.8, 7, 0.4, 2.6, 1.7},
		{"Spinach", "vegetables", "100g", 23, 2.9, 3.6, 0.4, 2.2, 0.4},
		{"Carrots", "vegetables", "100g", 41, 0.9, 10, 0.2, 2.8, 4.7},
		{"Tomatoes", "vegetables", "100g", 18, 0.9, 3.9, 0.2, 1.2, 2.6},

		// Fruits
		{"Banana", "fruits", "1 medium (118g)", 105, 1.3, 27, 0.4, 3.1, 14},
		{"Apple", "fruits", "1 medium (182g)", 95, 0.5, 25, 0.3, 4.4, 19},
		{"Blueberries", "fruits", "100g", 57, 0.7, 14, 0.3, 2.4, 10},
		{"Orange", "fruits", "1 medium (131g)", 62, 1.2, 15, 0.2, 3.1, 12},
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(foods))
	for _, entry := range foods {
		docs = append(docs, models.FoodItem{
			CreatedAt:   now,
			UpdatedAt:   now,
			Name:        entry.name,
			Category:    entry.category,
			ServingSize: entry.serving,
			Nutrition: models.FoodNutrition{
				Calories: entry.calories,
				Protein:  entry.protein,
				Carbs:    entry.carbs,
				Fats:     entry.fats,
				Fiber:    entry.fiber,
				Sugar:    entry.sugar,
			},
			IsVerified: true,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("Seeded %d food items", len(docs))
	return nil
}

func seedExercises(ctx context.Context) error {
	coll := database.DB.Collection("exercises")
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type exercise struct {
		name, category, typ, icon string
		popularity                int
		muscles                   []string
	}
	exercises := []exercise{
		{"Bench Press", "Chest", "Strength", "fitness_center", 100, []string{"Pectorals", "Triceps", "Shoulders"}},
		{"Incline Bench Press", "Chest", "Strength", "fitness_center", 80, []string{"Upper Pectorals", "Triceps", "Shoulders"}},
		{"Deadlift", "Full Body", "Strength", "fitness_center", 95, []string{"Back", "Glutes", "Hamstrings"}},
		{"Squat", "Legs", "Strength", "fitness_center", 98, []string{"Quads", "Glutes", "Hamstrings"}},
		{"Overhead Press", "Shoulders", "Strength", "fitness_center", 85, []string{"Shoulders", "Triceps"}},
		{"Pull-Ups", "Back", "Strength", "fitness_center", 90, []string{"Lats", "Biceps"}},
		{"Barbell Row", "Back", "Strength", "fitness_center", 82, []string{"Back", "Biceps"}},
		{"Bicep Curls", "Arms", "Strength", "fitness_center", 88, []string{"Bicep"}},
		{"Tricep Extensions", "Arms", "Strength", "fitness_center", 84, []string{"Tricep"}},
		{"Plank", "Core", "Strength", "timer", 75, []string{"Abs"}},
		{"Running", "Cardio", "Cardio", "directions_run", 92, []string{"Legs", "Heart"}},
		{"Cycling", "Cardio", "Cardio", "directions_bike", 80, []string{"Legs", "Heart"}},
		{"Leg Press", "Legs", "Strength", "fitness_center", 78, []string{"Quads", "Glutes"}},
		{"Lat Pulldown", "Back", "Strength", "fitness_center", 86, []string{"Lats", "Biceps"}},
		{"Push-Ups", "Chest", "Strength", "fitness_center", 88, []string{"Chest", "Triceps", "Shoulders"}},
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(exercises))
	for _, entry := range exercises {
		docs = append(docs, models.Exercise{
			CreatedAt:   now,
			UpdatedAt:   now,
			Name:        entry.name,
			Category:    entry.category,
			MuscleGroup: entry.muscles,
			Type:        entry.typ,
			Popularity:  entry.popularity,
			Icon:        entry.icon,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("Seeded %d exercises", len(docs))
	return nil
}
