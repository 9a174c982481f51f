package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MongoURI       string
	PostgresURI    string
	RedisURI       string
	Port           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	Environment string // ENV: production, development, etc.

	Defaults Defaults
}

// Defaults holds the fallback nutrition/metric constants that used to live
// inline in the route handlers. They are the last step of target resolution
// and can be overridden per-deployment via env vars.
type Defaults struct {
	CaloriesTarget    float64 // daily intake target when no plan/stored target exists
	ProteinTarget     float64 // grams
	CarbsTarget       float64 // grams
	FatsTarget        float64 // grams
	CaloriesBurnGoal  float64 // daily burn goal; NOT the same semantic as CaloriesTarget
	StepsGoal         float64
	WaterIncrement    float64 // liters added per quick water log
	ActiveMinutesGoal float64
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/fitpulse")),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/fitpulse?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		Environment: env,

		Defaults: Defaults{
			CaloriesTarget:    getEnvFloat("DEFAULT_CALORIES_TARGET", 2500),
			ProteinTarget:     getEnvFloat("DEFAULT_PROTEIN_TARGET", 150),
			CarbsTarget:       getEnvFloat("DEFAULT_CARBS_TARGET", 200),
			FatsTarget:        getEnvFloat("DEFAULT_FATS_TARGET", 60),
			CaloriesBurnGoal:  getEnvFloat("DEFAULT_CALORIES_BURN_GOAL", 2500),
			StepsGoal:         getEnvFloat("DEFAULT_STEPS_GOAL", 10000),
			WaterIncrement:    getEnvFloat("DEFAULT_WATER_INCREMENT", 0.25),
			ActiveMinutesGoal: getEnvFloat("DEFAULT_ACTIVE_MINUTES_GOAL", 30),
		},
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
