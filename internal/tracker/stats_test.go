package tracker

import (
	"testing"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func workoutAt(t time.Time, distance, calories float64) models.Workout {
	return models.Workout{StartTime: t, Distance: distance, Calories: calories}
}

func at(now time.Time, daysAgo int, hour int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}

func TestStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 9), 0, 0),
		workoutAt(at(now, 1, 9), 0, 0),
		workoutAt(at(now, 2, 9), 0, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 3, stats.Streak)
}

func TestStreakBrokenByGap(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 9), 0, 0),
		workoutAt(at(now, 2, 9), 0, 0), // gap: no workout yesterday
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 1, stats.Streak)
}

func TestStreakZeroWhenStale(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 2, 9), 0, 0),
		workoutAt(at(now, 3, 9), 0, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 0, stats.Streak, "most recent workout older than yesterday kills the streak")
}

func TestStreakAliveFromYesterday(t *testing.T) {
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 1, 19), 0, 0),
		workoutAt(at(now, 2, 19), 0, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 2, stats.Streak)
}

func TestStreakCountsDayOnce(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 7), 0, 0),
		workoutAt(at(now, 0, 19), 0, 0), // second session same day
		workoutAt(at(now, 1, 9), 0, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 2, stats.Streak)
}

func TestNoHistoryDegradesToZero(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now())

	require.Equal(t, 0, stats.Streak)
	require.Equal(t, 0.0, stats.TotalKm)
	require.Equal(t, 0, stats.Badges)
	require.Empty(t, stats.Achievements)
	require.Equal(t, 1, stats.Level, "level floors at 1")
	require.Equal(t, 0, stats.WeeklyCardioDays)
	require.Equal(t, 0.0, stats.TodaySteps)
	require.Equal(t, 0.0, stats.TodayCaloriesBurn)
}

func TestLevelFromDistance(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 9), 25, 0),
		workoutAt(at(now, 1, 9), 20, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 45.0, stats.TotalKm)
	require.Equal(t, 3, stats.Level) // floor(45/20)+1
}

func TestAchievementRules(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)

	var workouts []models.Workout
	// 7-day streak with early sessions, enough distance for Marathoner
	for day := 0; day < 7; day++ {
		workouts = append(workouts, workoutAt(at(now, day, 6), 7, 200))
	}

	stats := ComputeStats(workouts, nil, now)

	require.Equal(t, 3, stats.Badges)
	ids := make([]string, 0, len(stats.Achievements))
	for _, a := range stats.Achievements {
		ids = append(ids, a.ID)
	}
	require.ElementsMatch(t, []string{"early_bird", "marathoner", "consistency"}, ids)
}

func TestAchievementThresholdsNotMet(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 6), 5, 0), // only 1 early workout, 5 km
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 0, stats.Badges)
}

func TestWeeklyCardioDaysDistinct(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 7), 0, 0),
		workoutAt(at(now, 0, 19), 0, 0), // same day, counts once
		workoutAt(at(now, 3, 9), 0, 0),
		workoutAt(at(now, 10, 9), 0, 0), // outside the trailing window
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 2, stats.WeeklyCardioDays)
}

func TestTodayNumbersFromMetricBucket(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	metric := &models.Metric{Steps: 8200, Calories: 540}

	stats := ComputeStats(nil, metric, now)
	require.Equal(t, 8200.0, stats.TodaySteps)
	require.Equal(t, 540.0, stats.TodayCaloriesBurn)
}

func TestTodayBurnApproximatedWithoutMetric(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 9), 0, 300),
		workoutAt(at(now, 0, 17), 0, 150),
		workoutAt(at(now, 1, 9), 0, 999), // yesterday, excluded
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 0.0, stats.TodaySteps)
	require.Equal(t, 450.0, stats.TodayCaloriesBurn)
}

func TestTotalKmRounded(t *testing.T) {
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.Local)
	workouts := []models.Workout{
		workoutAt(at(now, 0, 9), 5.25, 0),
		workoutAt(at(now, 1, 9), 3.11, 0),
	}

	stats := ComputeStats(workouts, nil, now)
	require.Equal(t, 8.4, stats.TotalKm)
}
