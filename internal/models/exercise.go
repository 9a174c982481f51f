package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategories are the accepted values for Exercise.Category.
var ExerciseCategories = []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core", "Cardio", "Full Body"}

// Exercise is a catalog entry for workout building.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name        string   `bson:"name" json:"name"`
	Category    string   `bson:"category" json:"category"`
	MuscleGroup []string `bson:"muscle_group" json:"muscleGroup"`
	Type        string   `bson:"type" json:"type"` // Strength, Cardio, Flexibility
	Popularity  int      `bson:"popularity" json:"popularity"`
	Icon        string   `bson:"icon,omitempty" json:"icon,omitempty"`
}
