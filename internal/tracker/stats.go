package tracker

import (
	"math"
	"sort"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/models"
)

// Achievement is an unlocked badge.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Stats are the derived user statistics, computed fresh from the full
// workout history on every profile read. The stats snapshot stored on the
// user document is only a cache.
type Stats struct {
	TotalKm           float64       `json:"totalKm"`
	Streak            int           `json:"streak"`
	Badges            int           `json:"badges"`
	Achievements      []Achievement `json:"achievements"`
	Level             int           `json:"level"`
	WeeklyCardioDays  int           `json:"weeklyCardioDays"`
	TodaySteps        float64       `json:"todaySteps"`
	TodayCaloriesBurn float64       `json:"todayCaloriesBurn"`
}

// ComputeStats derives stats from the user's workouts and today's metric
// bucket (nil when none exists). Absent history degrades to zeroed stats,
// never an error.
func ComputeStats(workouts []models.Workout, todayMetric *models.Metric, now time.Time) Stats {
	var totalKm float64
	for _, w := range workouts {
		totalKm += w.Distance
	}

	streak := computeStreak(workouts, now)
	achievements := computeAchievements(workouts, totalKm, streak)

	// Distinct workout days in the trailing 7 days, today inclusive
	weekStart, _ := DayBounds(now.AddDate(0, 0, -7))
	cardioDays := make(map[string]struct{})
	for _, w := range workouts {
		if !w.StartTime.Before(weekStart) {
			cardioDays[DayKey(w.StartTime)] = struct{}{}
		}
	}

	var todaySteps, todayBurn float64
	if todayMetric != nil {
		todaySteps = todayMetric.Steps
		todayBurn = todayMetric.Calories
	} else {
		// No metric bucket yet: approximate burn from steps (none) plus
		// today's workout calories
		todayBurn = todaySteps * 0.04
		for _, w := range workouts {
			if SameDay(w.StartTime, now) {
				todayBurn += w.Calories
			}
		}
	}

	return Stats{
		TotalKm:           math.Round(totalKm*10) / 10,
		Streak:            streak,
		Badges:            len(achievements),
		Achievements:      achievements,
		Level:             int(totalKm/20) + 1,
		WeeklyCardioDays:  len(cardioDays),
		TodaySteps:        todaySteps,
		TodayCaloriesBurn: math.Round(todayBurn),
	}
}

// computeStreak walks backward from the most recent workout day counting
// consecutive calendar days with at least one workout. The streak is alive
// only if the most recent workout was today or yesterday; the walk stops
// at the first gap larger than one day.
func computeStreak(workouts []models.Workout, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}

	// Distinct workout days, descending
	seen := make(map[string]time.Time)
	for _, w := range workouts {
		day, _ := DayBounds(w.StartTime)
		seen[DayKey(day)] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today, _ := DayBounds(now)
	if gapDays(today, days[0]) > 1 {
		return 0
	}

	streak := 1
	current := days[0]
	for _, prev := range days[1:] {
		if gapDays(current, prev) != 1 {
			break
		}
		streak++
		current = prev
	}
	return streak
}

// gapDays returns the number of calendar days between two midnights.
func gapDays(later, earlier time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}

func computeAchievements(workouts []models.Workout, totalKm float64, streak int) []Achievement {
	achievements := []Achievement{}

	earlyBird := 0
	for _, w := range workouts {
		if w.StartTime.Hour() < 7 {
			earlyBird++
		}
	}
	if earlyBird >= 5 {
		achievements = append(achievements, Achievement{
			ID:          "early_bird",
			Name:        "Early Bird",
			Description: "5 Workouts before 7am",
			Icon:        "wb_sunny",
		})
	}

	if totalKm >= 42 {
		achievements = append(achievements, Achievement{
			ID:          "marathoner",
			Name:        "Marathoner",
			Description: "Ran 42km in total",
			Icon:        "directions_run",
		})
	}

	if streak >= 7 {
		achievements = append(achievements, Achievement{
			ID:          "consistency",
			Name:        "Consistency King",
			Description: "7 Day Workout Streak",
			Icon:        "local_fire_department",
		})
	}

	return achievements
}
