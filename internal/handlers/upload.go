package handlers

import (
	"net/http"

	"github.com/fitpulse/fitpulse-backend/internal/config"
	"github.com/fitpulse/fitpulse-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// UploadImage accepts a multipart image and returns its Cloudinary URL.
// Used for profile pictures and post images.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if cloudinaryService == nil {
		respondError(w, http.StatusInternalServerError, "Upload service not configured")
		return
	}

	// 10MB cap
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	switch folder {
	case "avatars", "posts":
	default:
		folder = "fitpulse"
	}

	url, err := cloudinaryService.UploadFile(r.Context(), file, folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
