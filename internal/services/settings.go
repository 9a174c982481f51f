package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	settingsCacheKey = "cache:app_settings"
	settingsCacheTTL = 5 * time.Minute
)

// GetSettings returns the singleton app settings, creating it with defaults
// on first access. Reads go through a short Redis cache because the auth
// middleware consults maintenance mode on every request.
func GetSettings(ctx context.Context) (*models.AppSettings, error) {
	if val, err := database.RedisClient.Get(ctx, settingsCacheKey).Result(); err == nil {
		var cached models.AppSettings
		if json.Unmarshal([]byte(val), &cached) == nil {
			return &cached, nil
		}
	}

	var settings models.AppSettings
	err := database.DB.Collection("app_settings").FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.AppSettings{
			MaintenanceMode:      false,
			RegistrationsEnabled: true,
			UpdatedAt:            time.Now(),
		}
		if _, insertErr := database.DB.Collection("app_settings").InsertOne(ctx, settings); insertErr != nil {
			return nil, insertErr
		}
	} else if err != nil {
		return nil, err
	}

	cacheSettings(ctx, &settings)
	return &settings, nil
}

// UpdateSettings applies a partial update to the singleton and refreshes
// the cache.
func UpdateSettings(ctx context.Context, update bson.M) (*models.AppSettings, error) {
	update["updated_at"] = time.Now()

	var settings models.AppSettings
	err := database.DB.Collection("app_settings").FindOneAndUpdate(
		ctx,
		bson.M{},
		bson.M{"$set": update},
	).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		if _, err := database.DB.Collection("app_settings").InsertOne(ctx, update); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := database.DB.Collection("app_settings").FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		return nil, err
	}

	cacheSettings(ctx, &settings)
	return &settings, nil
}

func cacheSettings(ctx context.Context, settings *models.AppSettings) {
	if data, err := json.Marshal(settings); err == nil {
		database.RedisClient.Set(ctx, settingsCacheKey, data, settingsCacheTTL)
	}
}
