package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fitpulse/fitpulse-backend/internal/database"
	"github.com/fitpulse/fitpulse-backend/internal/middleware"
	"github.com/fitpulse/fitpulse-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreatePostRequest struct {
	Content  string              `json:"content"`
	Image    string              `json:"image,omitempty"`
	Type     string              `json:"type"`
	Metadata models.PostMetadata `json:"metadata,omitempty"`
}

// GetPosts returns the social feed, newest first. An empty feed is seeded
// with a few demo posts so the screen is never blank on a fresh install.
func GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	coll := database.DB.Collection("posts")
	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100)

	cursor, err := coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	if len(posts) == 0 {
		if err := seedPosts(ctx); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to seed posts")
			return
		}
		cursor, err := coll.Find(ctx, bson.M{}, findOpts)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load posts")
			return
		}
		if err := cursor.All(ctx, &posts); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load posts")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

// CreatePost publishes a feed entry attributed to the caller.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if req.Type == "" {
		req.Type = "activity"
	}

	now := time.Now()
	post := models.Post{
		CreatedAt:  now,
		UpdatedAt:  now,
		UserID:     user.ID.Hex(),
		UserName:   user.Name,
		UserAvatar: user.ProfilePicture,
		Content:    req.Content,
		Image:      req.Image,
		Type:       req.Type,
		Metadata:   req.Metadata,
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := database.DB.Collection("posts").InsertOne(ctx, post)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	post.ID = result.InsertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"post":    post,
	})
}

func seedPosts(ctx context.Context) error {
	now := time.Now()
	seeds := []interface{}{
		models.Post{
			CreatedAt:  now.Add(-24 * time.Minute),
			UpdatedAt:  now.Add(-24 * time.Minute),
			UserID:     "user_2",
			UserName:   "Sarah Jenkins",
			UserAvatar: defaultAvatarURL("Sarah Jenkins"),
			Content:    "finished a 10k!",
			Type:       "activity",
			Likes:      12,
			Comments:   3,
			Metadata: models.PostMetadata{
				Distance: "10.0",
				Duration: "52:14",
				Pace:     "5'13\"/km",
				BPM:      164,
			},
		},
		models.Post{
			CreatedAt:  now.Add(-time.Hour),
			UpdatedAt:  now.Add(-time.Hour),
			UserID:     "user_3",
			UserName:   "Mike Ross",
			UserAvatar: defaultAvatarURL("Mike Ross"),
			Content:    "hit his step goal!",
			Type:       "activity",
			Likes:      24,
			Comments:   8,
			Metadata: models.PostMetadata{
				Steps: 12540,
			},
		},
		models.Post{
			CreatedAt:  now.Add(-3 * time.Hour),
			UpdatedAt:  now.Add(-3 * time.Hour),
			UserID:     "user_4",
			UserName:   "Emma Watson",
			UserAvatar: defaultAvatarURL("Emma Watson"),
			Content:    "earned a new badge!",
			Type:       "achievement",
			Likes:      42,
			Comments:   1,
			Metadata: models.PostMetadata{
				Badge: "Early Bird",
			},
		},
	}

	_, err := database.DB.Collection("posts").InsertMany(ctx, seeds)
	return err
}
