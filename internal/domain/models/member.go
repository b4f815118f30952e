// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member status values.
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
)

// IsMemberStatus reports whether s is active or inactive.
func IsMemberStatus(s string) bool {
	return s == MemberActive || s == MemberInactive
}

// Member is a student enrolled in one extracurricular club.
//
// NOTE:
//   - StudentID is not unique; the same student may appear in several clubs
//     (one record per club) and nothing prevents duplicates within a club.
type Member struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"`
	StudentID  string             `bson:"student_id" json:"studentId"`
	ClassName  string             `bson:"class_name" json:"className"`
	EkskulType string             `bson:"ekskul_type" json:"ekskulType"`
	Status     string             `bson:"status" json:"status"` // active | inactive
	JoinDate   time.Time          `bson:"join_date" json:"joinDate"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL   string             `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
