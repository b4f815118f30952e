// internal/domain/models/schedule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is a dated, time-boxed club activity.
// StartTime and EndTime are wall-clock "HH:MM" strings in school local time.
type Schedule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	StartTime   string             `bson:"start_time" json:"startTime"`
	EndTime     string             `bson:"end_time" json:"endTime"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	EkskulType  string             `bson:"ekskul_type" json:"ekskulType"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
