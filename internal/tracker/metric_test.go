package tracker

import (
	"testing"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestMergeMetricOverwritesAndAppends(t *testing.T) {
	existing := &models.Metric{
		Steps: 1000,
		HeartRateHistory: []models.HeartRateSample{
			{Time: time.Date(2026, 5, 2, 8, 0, 0, 0, time.Local), Value: 62},
		},
	}

	sample := models.HeartRateSample{Time: time.Date(2026, 5, 2, 12, 0, 0, 0, time.Local), Value: 118}
	MergeMetric(existing, MetricUpdate{
		Steps:            f(1500),
		HeartRateHistory: []models.HeartRateSample{sample},
	})

	require.Equal(t, 1500.0, existing.Steps, "steps overwrite, not sum")
	require.Len(t, existing.HeartRateHistory, 2, "heart-rate history appends, old samples retained")
	require.Equal(t, sample, existing.HeartRateHistory[1])
}

func TestMergeMetricLeavesAbsentFieldsAlone(t *testing.T) {
	sleep := 7.5
	existing := &models.Metric{
		Steps:         4000,
		Calories:      320,
		ActiveMinutes: 25,
		WaterIntake:   1.5,
		SleepHours:    &sleep,
		SleepQuality:  "Good",
	}

	MergeMetric(existing, MetricUpdate{Calories: f(410)})

	require.Equal(t, 410.0, existing.Calories)
	require.Equal(t, 4000.0, existing.Steps)
	require.Equal(t, 25.0, existing.ActiveMinutes)
	require.Equal(t, 1.5, existing.WaterIntake)
	require.Equal(t, 7.5, *existing.SleepHours)
	require.Equal(t, "Good", existing.SleepQuality)
}

func TestMergeMetricOptionalFields(t *testing.T) {
	existing := &models.Metric{}
	quality := "Excellent"

	MergeMetric(existing, MetricUpdate{
		Weight:       f(81.2),
		SleepHours:   f(8),
		SleepQuality: &quality,
		HeartRateAvg: f(64),
	})

	require.Equal(t, 81.2, *existing.Weight)
	require.Equal(t, 8.0, *existing.SleepHours)
	require.Equal(t, "Excellent", existing.SleepQuality)
	require.Equal(t, 64.0, *existing.HeartRateAvg)
}

func TestWorkoutCompletedRollsIntoMetric(t *testing.T) {
	m := &models.Metric{ActiveMinutes: 10, Calories: 100}

	WorkoutCompleted{Duration: 45, Calories: 380}.ApplyToMetric(m)

	require.Equal(t, 55.0, m.ActiveMinutes)
	require.Equal(t, 480.0, m.Calories)
}

func TestWaterLoggedUpdatesBothAggregates(t *testing.T) {
	n := &models.DailyNutrition{WaterIntake: 1.0}
	m := &models.Metric{WaterIntake: 1.0}

	ev := WaterLogged{Liters: 0.25}
	ev.ApplyToNutrition(n)
	ev.ApplyToMetric(m)

	require.Equal(t, 1.25, n.WaterIntake)
	require.Equal(t, 1.25, m.WaterIntake, "both aggregates move in sync")
}
