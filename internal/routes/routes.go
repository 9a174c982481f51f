package routes

import (
	"github.com/fitpulse/fitpulse-backend/internal/handlers"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Public auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/forgot-password", handlers.ForgotPassword)
	r.Post("/api/auth/verify-reset-code", handlers.VerifyResetCode)
	r.Post("/api/auth/reset-password", handlers.ResetPassword)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/api/auth/logout", handlers.Logout)
		r.Post("/api/auth/change-password", handlers.ChangePassword)

		r.Get("/api/users/{userId}", handlers.GetProfile)
		r.Put("/api/users/{userId}", handlers.UpdateProfile)

		r.Get("/api/dashboard", handlers.GetDashboard)

		r.Get("/api/nutrition/latest", handlers.GetTodayNutrition)
		r.Get("/api/nutrition/history", handlers.GetNutritionHistory)
		r.Post("/api/nutrition/log-meal", handlers.LogMeal)
		r.Put("/api/nutrition/meals/{mealId}", handlers.UpdateMeal)
		r.Delete("/api/nutrition/meals/{mealId}", handlers.DeleteMeal)
		r.Post("/api/nutrition/water", handlers.LogWater)

		r.Get("/api/metrics/latest", handlers.GetLatestMetrics)
		r.Get("/api/metrics/history", handlers.GetMetricsHistory)
		r.Post("/api/metrics", handlers.SubmitMetrics)

		r.Get("/api/workouts", handlers.GetWorkouts)
		r.Post("/api/workouts", handlers.CreateWorkout)
		r.Get("/api/workouts/{workoutId}", handlers.GetWorkout)
		r.Delete("/api/workouts/{workoutId}", handlers.DeleteWorkout)

		r.Get("/api/food-items/search", handlers.SearchFoods)
		r.Get("/api/food-items/categories", handlers.GetFoodCategories)
		r.Get("/api/food-items/{foodId}", handlers.GetFood)
		r.Post("/api/food-items", handlers.CreateFood)

		r.Get("/api/nutrition-plans", handlers.GetPlans)
		r.Post("/api/nutrition-plans", handlers.CreatePlan)
		r.Put("/api/nutrition-plans/{planId}", handlers.UpdatePlan)
		r.Put("/api/nutrition-plans/{planId}/activate", handlers.ActivatePlan)
		r.Delete("/api/nutrition-plans/{planId}", handlers.DeletePlan)

		r.Get("/api/meal-templates", handlers.GetTemplates)
		r.Post("/api/meal-templates", handlers.CreateTemplate)
		r.Put("/api/meal-templates/{templateId}", handlers.UpdateTemplate)
		r.Delete("/api/meal-templates/{templateId}", handlers.DeleteTemplate)

		r.Get("/api/exercises", handlers.GetExercises)
		r.Get("/api/exercises/popular", handlers.GetPopularExercises)

		r.Get("/api/posts", handlers.GetPosts)
		r.Post("/api/posts", handlers.CreatePost)

		r.Post("/api/upload", handlers.UploadImage)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/api/admin/users", handlers.AdminGetUsers)
			r.Put("/api/admin/users/{userId}", handlers.AdminUpdateUser)
			r.Delete("/api/admin/users/{userId}", handlers.AdminDeleteUser)
			r.Post("/api/admin/users/{userId}/reset-password", handlers.AdminResetUserPassword)
			r.Get("/api/admin/settings", handlers.AdminGetSettings)
			r.Put("/api/admin/settings", handlers.AdminUpdateSettings)
			r.Get("/api/admin/workouts", handlers.AdminGetWorkouts)
			r.Delete("/api/admin/workouts/{workoutId}", handlers.AdminDeleteWorkout)
			r.Get("/api/admin/metrics", handlers.AdminGetMetrics)
			r.Delete("/api/admin/metrics/{metricId}", handlers.AdminDeleteMetric)
			r.Get("/api/admin/logs", handlers.AdminGetActivityLogs)
			r.Get("/api/admin/stats", handlers.AdminGetStats)
			r.Put("/api/admin/unblock-ip", handlers.AdminUnblockIP)
		})
	})
}
