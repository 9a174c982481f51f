package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppSettings is a singleton document controlling app-wide switches.
type AppSettings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	MaintenanceMode      bool                `bson:"maintenance_mode" json:"maintenanceMode"`
	RegistrationsEnabled bool                `bson:"registrations_enabled" json:"registrationsEnabled"`
	LastUpdatedBy        *primitive.ObjectID `bson:"last_updated_by,omitempty" json:"lastUpdatedBy,omitempty"`
}
