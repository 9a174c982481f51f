package tracker

import "github.com/fitpulse/fitpulse-backend/internal/models"

// Domain events make the cross-entity writes explicit: one user action can
// touch two aggregates (nutrition + metric), and each aggregate has its own
// apply function. The handler emits the event and persists both documents;
// the storage layer gives no transactional guarantee, so the two writes
// must be issued together as a single logical operation.

// WaterLogged is emitted when the user logs a drink. Water intake is
// tracked additively on both the nutrition and metric buckets.
type WaterLogged struct {
	Liters float64
}

// ApplyToNutrition adds the logged amount to the nutrition bucket.
func (ev WaterLogged) ApplyToNutrition(n *models.DailyNutrition) {
	n.WaterIntake += ev.Liters
}

// ApplyToMetric adds the logged amount to the metric bucket.
func (ev WaterLogged) ApplyToMetric(m *models.Metric) {
	m.WaterIntake += ev.Liters
}

// WorkoutCompleted is emitted when a workout session is saved; the day's
// metric bucket absorbs its duration and calorie burn.
type WorkoutCompleted struct {
	Duration float64 // minutes
	Calories float64
}

// ApplyToMetric rolls the completed workout into the metric bucket.
func (ev WorkoutCompleted) ApplyToMetric(m *models.Metric) {
	m.ActiveMinutes += ev.Duration
	m.Calories += ev.Calories
}
