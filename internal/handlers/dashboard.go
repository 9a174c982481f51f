package handlers

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ringProgress converts a value/goal pair to a 0-100 percentage.
func ringProgress(value, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(math.Min(100, value/goal*100)))
}

// GetDashboard aggregates today's metrics, nutrition, progress rings, and
// recent workouts into one home-screen payload.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()

	todayMetric, err := services.TodayMetric(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	todayNutrition, err := services.TodayNutrition(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	activePlan, err := services.ActivePlan(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	var planGoals *models.PlanGoals
	if activePlan != nil {
		planGoals = &activePlan.Goals
	}
	targets := tracker.ResolveTargets(tracker.StoredTargets(todayNutrition), planGoals, &user.Goals, appConfig.Defaults)

	metric := todayMetric
	if metric == nil {
		metric = &models.Metric{HeartRateHistory: []models.HeartRateSample{}}
	}

	var caloriesConsumed, protein, carbs, fats, nutritionWater float64
	mealSummaries := []map[string]interface{}{}
	if todayNutrition != nil {
		caloriesConsumed = todayNutrition.CaloriesConsumed
		protein = todayNutrition.Protein
		carbs = todayNutrition.Carbs
		fats = todayNutrition.Fats
		nutritionWater = todayNutrition.WaterIntake
		for _, meal := range todayNutrition.Meals {
			mealSummaries = append(mealSummaries, map[string]interface{}{
				"name":     meal.Name,
				"mealType": meal.MealType,
				"calories": meal.Calories,
			})
		}
	}
	caloriesRemaining := math.Max(0, targets.Calories-caloriesConsumed)

	stepsGoal := user.Goals.DailySteps
	if stepsGoal == 0 {
		stepsGoal = appConfig.Defaults.StepsGoal
	}

	cursor, err := database.DB.Collection("workouts").Find(
		ctx,
		bson.M{"user_id": user.ID},
		options.Find().SetSort(bson.M{"start_time": -1}).SetLimit(3),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	var recentWorkouts []models.Workout
	if err := cursor.All(ctx, &recentWorkouts); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	if recentWorkouts == nil {
		recentWorkouts = []models.Workout{}
	}

	firstName := "Member"
	if parts := strings.Fields(user.Name); len(parts) > 0 {
		firstName = parts[0]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,

		"currentDate": now.Format("Monday, Jan 2"),
		"currentTime": now.Format("3:04"),

		"user": map[string]interface{}{
			"name":           user.Name,
			"firstName":      firstName,
			"profilePicture": user.ProfilePicture,
		},

		"metrics": map[string]interface{}{
			"steps":            metric.Steps,
			"calories":         metric.Calories,
			"activeMinutes":    metric.ActiveMinutes,
			"heartRateAvg":     metric.HeartRateAvg,
			"heartRateHistory": metric.HeartRateHistory,
			"sleepHours":       metric.SleepHours,
			"sleepQuality":     metric.SleepQuality,
			"waterIntake":      metric.WaterIntake,
		},

		"progress": map[string]interface{}{
			"steps":         ringProgress(metric.Steps, stepsGoal),
			"calories":      ringProgress(metric.Calories, targets.Calories),
			"activeMinutes": ringProgress(metric.ActiveMinutes, appConfig.Defaults.ActiveMinutesGoal),
		},

		"nutrition": map[string]interface{}{
			"caloriesConsumed":  caloriesConsumed,
			"caloriesTarget":    targets.Calories,
			"caloriesRemaining": caloriesRemaining,
			"protein":           protein,
			"carbs":             carbs,
			"fats":              fats,
			"waterIntake":       nutritionWater,
			"mealsLoggedToday":  len(mealSummaries),
			"meals":             mealSummaries,
		},

		"recentWorkouts": recentWorkouts,

		"goals": user.Goals,
	})
}
