package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// UserGoals are targets the user sets for themselves, not measurements.
type UserGoals struct {
	DailySteps       float64 `bson:"daily_steps" json:"dailySteps"`
	WeeklyCardioDays float64 `bson:"weekly_cardio_days" json:"weeklyCardioDays"`
	DailyCaloriesBurn float64 `bson:"daily_calories_burn" json:"dailyCaloriesBurn"`
	DailyWaterLiters float64 `bson:"daily_water_liters" json:"dailyWaterLiters"`
	DailySleepHours  float64 `bson:"daily_sleep_hours" json:"dailySleepHours"`
}

// UserStats is a snapshot cache of derived stats. The profile read path
// recomputes these from workout history and overwrites the snapshot; it is
// never treated as the source of truth.
type UserStats struct {
	Level   int     `bson:"level" json:"level"`
	Badges  int     `bson:"badges" json:"badges"`
	Streak  int     `bson:"streak" json:"streak"`
	TotalKm float64 `bson:"total_km" json:"totalKm"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name           string `bson:"name" json:"name"`
	Email          string `bson:"email" json:"email"`
	Password       string `bson:"password" json:"-"` // Don't return password in JSON
	Role           string `bson:"role" json:"role"`
	IsActive       bool   `bson:"is_active" json:"isActive"`
	ProfilePicture string `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`

	Goals UserGoals `bson:"goals" json:"goals"`
	Stats UserStats `bson:"stats" json:"stats"`

	ResetPasswordCode    string    `bson:"reset_password_code,omitempty" json:"-"`
	ResetPasswordExpires time.Time `bson:"reset_password_expires,omitempty" json:"-"`
}

// DefaultGoals are applied at registration.
func DefaultGoals() UserGoals {
	return UserGoals{
		DailySteps:        10000,
		WeeklyCardioDays:  3,
		DailyCaloriesBurn: 2500,
		DailyWaterLiters:  2.5,
		DailySleepHours:   8,
	}
}
