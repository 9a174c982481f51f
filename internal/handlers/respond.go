package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/config"
)

var appConfig *config.Config

// Init wires the loaded configuration into the handler package.
func Init(cfg *config.Config) {
	appConfig = cfg
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// requestContext caps handler database work at 10 seconds.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}
