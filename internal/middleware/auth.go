package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson"
)

type contextKey string

const userContextKey contextKey = "authenticated_user"

// UserFromContext returns the authenticated user injected by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(header)
}

// RequireAuth validates the session token, loads the user, and injects it
// into the request context. Inactive accounts are rejected; maintenance
// mode locks out everyone but admins.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		userID, ok, err := services.ValidateSession(token)
		if err != nil || !ok {
			writeAuthError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := database.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			writeAuthError(w, http.StatusUnauthorized, "User account is inactive or not found")
			return
		}
		if !user.IsActive && user.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusUnauthorized, "User account is inactive or not found")
			return
		}

		if settings, err := services.GetSettings(ctx); err == nil {
			if settings.MaintenanceMode && user.Role != models.RoleAdmin {
				writeAuthError(w, http.StatusServiceUnavailable, "System is currently under maintenance. Please try again later.")
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, &user)))
	})
}

// RequireAdmin rejects non-admin users. Must run inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Access denied: Admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
