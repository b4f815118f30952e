// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test records directly into a test database.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Day returns the UTC-midnight date for y-m-d.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateUser creates a backoffice user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		UID:       "uid-" + primitive.NewObjectID().Hex(),
		Email:     normalize.Email(email),
		Name:      name,
		NameCI:    normalize.Fold(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateMember creates an active member of slug's club.
func (f *Fixtures) CreateMember(ctx context.Context, name, slug string) models.Member {
	f.t.Helper()
	return f.CreateMemberWithStatus(ctx, name, slug, models.MemberActive)
}

// CreateMemberWithStatus creates a member with an explicit status.
func (f *Fixtures) CreateMemberWithStatus(ctx context.Context, name, slug, status string) models.Member {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Member{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     normalize.Fold(name),
		StudentID:  primitive.NewObjectID().Hex()[:8],
		ClassName:  "XI IPA 1",
		EkskulType: slug,
		Status:     status,
		JoinDate:   Day(2024, 7, 15),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "members", m)
	return m
}

// CreateDocumentation creates a gallery entry dated date.
func (f *Fixtures) CreateDocumentation(ctx context.Context, title, slug string, date time.Time) models.Documentation {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Documentation{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Dokumentasi " + title,
		Date:        date,
		Location:    "Lapangan sekolah",
		Photos:      []string{"https://res.cloudinary.com/demo/image/upload/sample.jpg"},
		EkskulType:  slug,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "documentation", d)
	return d
}

// CreateAchievement creates an achievement at the given level.
func (f *Fixtures) CreateAchievement(ctx context.Context, title, slug, level string, date time.Time) models.Achievement {
	f.t.Helper()
	now := time.Now().UTC()
	a := models.Achievement{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Date:       date,
		Level:      level,
		Rank:       "Juara 1",
		EkskulType: slug,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "achievements", a)
	return a
}

// CreateSchedule creates a schedule entry.
func (f *Fixtures) CreateSchedule(ctx context.Context, title, slug string, date time.Time, start, end string) models.Schedule {
	f.t.Helper()
	now := time.Now().UTC()
	s := models.Schedule{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Location:   "Aula",
		EkskulType: slug,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "schedules", s)
	return s
}

// CreateAttendance records one member's status on date.
func (f *Fixtures) CreateAttendance(ctx context.Context, m models.Member, date time.Time, status string) models.Attendance {
	f.t.Helper()
	now := time.Now().UTC()
	a := models.Attendance{
		ID:         primitive.NewObjectID(),
		MemberID:   m.ID,
		MemberName: m.Name,
		EkskulType: m.EkskulType,
		Date:       date,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "attendance", a)
	return a
}
