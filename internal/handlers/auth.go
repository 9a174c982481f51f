package handlers

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"github.com/fitpulse/fitpulse-backend/internal/services"
	"github.com/fitpulse/fitpulse-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// defaultAvatarURL builds a generated avatar for users without an uploaded
// profile picture.
func defaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// Register creates a new account and opens a session for it.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if settings, err := services.GetSettings(ctx); err == nil && !settings.RegistrationsEnabled {
		respondError(w, http.StatusForbidden, "Registrations are currently disabled")
		return
	}

	users := database.DB.Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		respondError(w, http.StatusConflict, "User with this email already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := models.User{
		CreatedAt:      now,
		UpdatedAt:      now,
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashed,
		Role:           models.RoleUser,
		IsActive:       true,
		ProfilePicture: defaultAvatarURL(req.Name),
		Goals:          models.DefaultGoals(),
	}

	result, err := users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "User with this email already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := services.CreateSession(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created",
		Token:   token,
		User:    &user,
	})
}

// Login verifies credentials and opens a fresh session.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || !utils.VerifyPassword(req.Password, user.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive && user.Role != models.RoleAdmin {
		respondError(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	token, err := services.CreateSession(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Token:   token,
		User:    &user,
	})
}

// Logout invalidates the caller's session.
func Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	services.InvalidateUserSessions(user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logged out"})
}

// ChangePassword updates the caller's password after verifying the current
// one, then invalidates all existing sessions.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !utils.VerifyPassword(req.CurrentPassword, user.Password) {
		respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	_, err = database.DB.Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"password": hashed, "updated_at": time.Now()},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	services.InvalidateUserSessions(user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed. Please log in again.",
	})
}

// generateResetCode returns a 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ForgotPassword issues a 6-digit reset code valid for 10 minutes. The
// response never reveals whether the email exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	neutral := map[string]interface{}{
		"success": true,
		"message": "If that email is registered, a reset code has been sent",
	}

	var user models.User
	if err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		respondJSON(w, http.StatusOK, neutral)
		return
	}

	code, err := generateResetCode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate reset code")
		return
	}

	_, err = database.DB.Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{
			"reset_password_code":    code,
			"reset_password_expires": time.Now().Add(10 * time.Minute),
			"updated_at":             time.Now(),
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue reset code")
		return
	}

	// Mail delivery is handled out of band; in non-production the code is
	// logged so local testing works without an SMTP setup.
	if appConfig == nil || !appConfig.IsProduction() {
		log.Printf("Password reset code for %s: %s", user.Email, code)
	}

	respondJSON(w, http.StatusOK, neutral)
}

// VerifyResetCode checks a reset code without consuming it.
func VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Email and code are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || user.ResetPasswordCode == "" || user.ResetPasswordCode != req.Code ||
		time.Now().After(user.ResetPasswordExpires) {
		respondError(w, http.StatusBadRequest, "Invalid or expired reset code")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Code verified"})
}

// ResetPassword consumes a valid reset code, sets the new password, and
// invalidates existing sessions.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "Email, code, and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || user.ResetPasswordCode == "" || user.ResetPasswordCode != req.Code ||
		time.Now().After(user.ResetPasswordExpires) {
		respondError(w, http.StatusBadRequest, "Invalid or expired reset code")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	_, err = database.DB.Collection("users").UpdateByID(ctx, user.ID, bson.M{
		"$set":   bson.M{"password": hashed, "updated_at": time.Now()},
		"$unset": bson.M{"reset_password_code": "", "reset_password_expires": ""},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	services.InvalidateUserSessions(user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset. Please log in with your new password.",
	})
}
