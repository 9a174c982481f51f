package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Intensities are the accepted values for Workout.Intensity.
var Intensities = []string{"Low", "Moderate", "High", "Extreme"}

type WorkoutSet struct {
	Reps        int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight      float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Distance    float64 `bson:"distance,omitempty" json:"distance,omitempty"` // km
	Time        float64 `bson:"time,omitempty" json:"time,omitempty"`         // seconds
	IsCompleted bool    `bson:"is_completed" json:"isCompleted"`
}

type WorkoutExercise struct {
	ExerciseID *primitive.ObjectID `bson:"exercise_id,omitempty" json:"exerciseId,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Sets       []WorkoutSet        `bson:"sets" json:"sets"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is an append-only session log; unlike the day buckets it is not
// keyed by calendar day.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Type      string             `bson:"type" json:"type"`
	StartTime time.Time          `bson:"start_time" json:"startTime"`
	EndTime   *time.Time         `bson:"end_time,omitempty" json:"endTime,omitempty"`

	Duration    float64 `bson:"duration" json:"duration"` // minutes
	Calories    float64 `bson:"calories" json:"calories"`
	Distance    float64 `bson:"distance" json:"distance"` // km
	Intensity   string  `bson:"intensity" json:"intensity"`
	TotalVolume float64 `bson:"total_volume" json:"totalVolume"` // sum of reps×weight
	Notes       string  `bson:"notes,omitempty" json:"notes,omitempty"`

	Exercises []WorkoutExercise `bson:"exercises" json:"exercises"`
}
