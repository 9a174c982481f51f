package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/internal/tracker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmitMetricsRequest struct {
	Weight        *float64 `json:"weight,omitempty"`
	Steps         *float64 `json:"steps,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
	ActiveMinutes *float64 `json:"activeMinutes,omitempty"`
	WaterIntake   *float64 `json:"waterIntake,omitempty"`
	SleepHours    *float64 `json:"sleepHours,omitempty"`
	SleepQuality  *string  `json:"sleepQuality,omitempty"`
	HeartRateAvg  *float64 `json:"heartRateAvg,omitempty"`

	HeartRateHistory []models.HeartRateSample `json:"heartRateHistory,omitempty"`
}

// metricRanges maps the history range parameter to a day count.
var metricRanges = map[string]int{
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"6M": 180,
	"1Y": 365,
}

// MetricRangeDays resolves a range parameter to its day count, defaulting
// to 30 days for empty or unknown values.
func MetricRangeDays(rangeParam string) int {
	if days, ok := metricRanges[rangeParam]; ok {
		return days
	}
	return 30
}

// GetLatestMetrics returns today's metric bucket, or a zeroed view for the
// day when none exists. Yesterday's numbers never leak into today.
func GetLatestMetrics(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now()
	bucket, err := services.TodayMetric(ctx, user.ID, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load metrics")
		return
	}
	if bucket == nil {
		bucket = &models.Metric{
			UserID:           user.ID,
			Date:             now,
			Day:              tracker.DayKey(now),
			HeartRateHistory: []models.HeartRateSample{},
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"metrics": bucket,
	})
}

// GetMetricsHistory returns the caller's metric buckets for a range
// (1W, 1M, 3M, 6M, 1Y; default 30 days), newest first.
func GetMetricsHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	days := MetricRangeDays(r.URL.Query().Get("range"))

	ctx, cancel := requestContext(r)
	defer cancel()

	since, _ := tracker.DayBounds(time.Now().AddDate(0, 0, -days))
	cursor, err := database.DB.Collection("metrics").Find(
		ctx,
		bson.M{"user_id": user.ID, "date": bson.M{"$gte": since}},
		options.Find().SetSort(bson.M{"date": -1}),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load metrics history")
		return
	}
	var history []models.Metric
	if err := cursor.All(ctx, &history); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load metrics history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": history,
	})
}

// SubmitMetrics merges a submission into today's bucket: present fields
// overwrite, heartRateHistory appends, absent fields are left alone.
func SubmitMetrics(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req SubmitMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SleepQuality != nil && !validSleepQuality(*req.SleepQuality) {
		respondError(w, http.StatusBadRequest, "Invalid sleep quality")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	bucket, err := services.EnsureMetricBucket(ctx, user.ID, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save metrics")
		return
	}

	tracker.MergeMetric(bucket, tracker.MetricUpdate{
		Weight:           req.Weight,
		Steps:            req.Steps,
		Calories:         req.Calories,
		ActiveMinutes:    req.ActiveMinutes,
		WaterIntake:      req.WaterIntake,
		SleepHours:       req.SleepHours,
		SleepQuality:     req.SleepQuality,
		HeartRateAvg:     req.HeartRateAvg,
		HeartRateHistory: req.HeartRateHistory,
	})

	if err := services.SaveMetric(ctx, bucket); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save metrics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"metrics": bucket,
	})
}

func validSleepQuality(q string) bool {
	for _, v := range models.SleepQualities {
		if v == q {
			return true
		}
	}
	return false
}
