package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SleepQualities are the accepted values for Metric.SleepQuality.
var SleepQualities = []string{"Poor", "Fair", "Good", "Excellent"}

// HeartRateSample is one point of the day's heart-rate chart.
type HeartRateSample struct {
	Time  time.Time `bson:"time" json:"time"`
	Value float64   `bson:"value" json:"value"`
}

// Metric is the per-user, per-calendar-day health metrics bucket.
// Submissions merge into the existing bucket: present fields overwrite,
// heartRateHistory appends. Same (user_id, day) keying as DailyNutrition.
type Metric struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Date   time.Time          `bson:"date" json:"date"`
	Day    string             `bson:"day" json:"day"`

	Weight        *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Steps         float64  `bson:"steps" json:"steps"`
	Calories      float64  `bson:"calories" json:"calories"`             // calories burned
	ActiveMinutes float64  `bson:"active_minutes" json:"activeMinutes"`
	WaterIntake   float64  `bson:"water_intake" json:"waterIntake"` // liters
	SleepHours    *float64 `bson:"sleep_hours,omitempty" json:"sleepHours,omitempty"`
	SleepQuality  string   `bson:"sleep_quality,omitempty" json:"sleepQuality,omitempty"`
	HeartRateAvg  *float64 `bson:"heart_rate_avg,omitempty" json:"heartRateAvg,omitempty"`

	HeartRateHistory []HeartRateSample `bson:"heart_rate_history" json:"heartRateHistory"`
}
