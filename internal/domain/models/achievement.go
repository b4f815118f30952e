// internal/domain/models/achievement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Achievement levels, ordered from smallest to largest scope.
const (
	LevelSekolah       = "Sekolah"
	LevelKecamatan     = "Kecamatan"
	LevelKabupatenKota = "Kabupaten/Kota"
	LevelProvinsi      = "Provinsi"
	LevelNasional      = "Nasional"
	LevelInternasional = "Internasional"
)

// AchievementLevels lists every valid level in ascending order.
var AchievementLevels = []string{
	LevelSekolah,
	LevelKecamatan,
	LevelKabupatenKota,
	LevelProvinsi,
	LevelNasional,
	LevelInternasional,
}

// IsAchievementLevel reports whether s is one of AchievementLevels.
func IsAchievementLevel(s string) bool {
	for _, l := range AchievementLevels {
		if l == s {
			return true
		}
	}
	return false
}

// Achievement is a dated award won by a club or its members.
type Achievement struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Date         time.Time          `bson:"date" json:"date"`
	Level        string             `bson:"level" json:"level"`
	Rank         string             `bson:"rank,omitempty" json:"rank,omitempty"` // e.g. "Juara 1"
	Participants string             `bson:"participants,omitempty" json:"participants,omitempty"`
	PhotoURL     string             `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	EkskulType   string             `bson:"ekskul_type" json:"ekskulType"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
