package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostMetadata carries the activity details shown on a feed card.
type PostMetadata struct {
	Distance string  `bson:"distance,omitempty" json:"distance,omitempty"`
	Duration string  `bson:"duration,omitempty" json:"duration,omitempty"`
	Pace     string  `bson:"pace,omitempty" json:"pace,omitempty"`
	BPM      float64 `bson:"bpm,omitempty" json:"bpm,omitempty"`
	Steps    float64 `bson:"steps,omitempty" json:"steps,omitempty"`
	Badge    string  `bson:"badge,omitempty" json:"badge,omitempty"`
}

// Post is a social feed entry.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID     string `bson:"user_id" json:"userId"`
	UserName   string `bson:"user_name" json:"userName"`
	UserAvatar string `bson:"user_avatar,omitempty" json:"userAvatar,omitempty"`
	Content    string `bson:"content" json:"content"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
	Type       string `bson:"type" json:"type"` // achievement, activity, challenge

	Likes    int `bson:"likes" json:"likes"`
	Comments int `bson:"comments" json:"comments"`

	Metadata PostMetadata `bson:"metadata" json:"metadata"`
}
