// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance status values.
const (
	AttendancePresent = "Hadir"
	AttendanceAbsent  = "Tidak Hadir"
	AttendanceExcused = "Izin"
	AttendanceSick    = "Sakit"
)

// AttendanceStatuses lists every valid attendance status.
var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceExcused,
	AttendanceSick,
}

// IsAttendanceStatus reports whether s is one of AttendanceStatuses.
func IsAttendanceStatus(s string) bool {
	for _, v := range AttendanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Attendance is one member's status on one activity day.
// Date is stored at UTC midnight. MemberID is not checked against members;
// deleting a member leaves its attendance rows in place.
type Attendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   primitive.ObjectID `bson:"member_id" json:"memberId"`
	MemberName string             `bson:"member_name" json:"memberName"`
	EkskulType string             `bson:"ekskul_type" json:"ekskulType"`
	Date       time.Time          `bson:"date" json:"date"`
	Status     string             `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
