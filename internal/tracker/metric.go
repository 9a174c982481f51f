package tracker

import (
	"github.com/fitpulse/fitpulse-backend/internal/models"
)

// MetricUpdate is the typed metric submission. Nil fields are absent from
// the request and leave the bucket untouched.
type MetricUpdate struct {
	Weight        *float64
	Steps         *float64
	Calories      *float64
	ActiveMinutes *float64
	WaterIntake   *float64
	SleepHours    *float64
	SleepQuality  *string
	HeartRateAvg  *float64

	HeartRateHistory []models.HeartRateSample
}

// MergeMetric folds a submission into an existing day bucket. Present
// fields overwrite (a new steps reading replaces the old one, it is not
// summed), except heartRateHistory, which appends to the existing sample
// sequence. This is an upsert-with-merge, unlike the meal engine's
// append-only model.
func MergeMetric(m *models.Metric, update MetricUpdate) {
	if update.Weight != nil {
		m.Weight = update.Weight
	}
	if update.Steps != nil {
		m.Steps = *update.Steps
	}
	if update.Calories != nil {
		m.Calories = *update.Calories
	}
	if update.ActiveMinutes != nil {
		m.ActiveMinutes = *update.ActiveMinutes
	}
	if update.WaterIntake != nil {
		m.WaterIntake = *update.WaterIntake
	}
	if update.SleepHours != nil {
		m.SleepHours = update.SleepHours
	}
	if update.SleepQuality != nil {
		m.SleepQuality = *update.SleepQuality
	}
	if update.HeartRateAvg != nil {
		m.HeartRateAvg = update.HeartRateAvg
	}
	if len(update.HeartRateHistory) > 0 {
		m.HeartRateHistory = append(m.HeartRateHistory, update.HeartRateHistory...)
	}
}
