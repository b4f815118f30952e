// internal/app/store/attendance/attendancestore.go
package attendancestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("attendance not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance")}
}

// Filter narrows List and Summary. Date selects a single day; From/To select
// the half-open range [From, To). A zero time is ignored.
type Filter struct {
	Ekskul   string
	MemberID primitive.ObjectID
	Date     time.Time
	From     time.Time
	To       time.Time
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Ekskul != "" {
		q["ekskul_type"] = f.Ekskul
	}
	if !f.MemberID.IsZero() {
		q["member_id"] = f.MemberID
	}
	switch {
	case !f.Date.IsZero():
		q["date"] = f.Date
	case !f.From.IsZero() || !f.To.IsZero():
		r := bson.M{}
		if !f.From.IsZero() {
			r["$gte"] = f.From
		}
		if !f.To.IsZero() {
			r["$lt"] = f.To
		}
		q["date"] = r
	}
	return q
}

// List returns records newest day first, then by member name.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "member_name", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, f.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Attendance{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.bson())
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Attendance, error) {
	var a models.Attendance
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Attendance{}, ErrNotFound
		}
		return models.Attendance{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a models.Attendance) (models.Attendance, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Attendance{}, err
	}
	return a, nil
}

// Update changes status, notes and date of a record. Member and club are fixed
// once recorded.
func (s *Store) Update(ctx context.Context, a models.Attendance) (models.Attendance, error) {
	set := bson.M{
		"status":     a.Status,
		"notes":      a.Notes,
		"date":       a.Date,
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, a.ID, bson.M{"$set": set})
	if err != nil {
		return models.Attendance{}, err
	}
	if res.MatchedCount == 0 {
		return models.Attendance{}, ErrNotFound
	}
	return s.GetByID(ctx, a.ID)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// UpsertDay records a whole day of attendance in one round trip. Each entry
// replaces any existing record for the same member and date, so re-submitting
// a day edits it instead of duplicating rows.
func (s *Store) UpsertDay(ctx context.Context, date time.Time, entries []models.Attendance) (upserted, modified int64, err error) {
	if len(entries) == 0 {
		return 0, 0, nil
	}
	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"member_id": e.MemberID, "date": date}).
			SetUpdate(bson.M{
				"$set": bson.M{
					"member_name": e.MemberName,
					"ekskul_type": e.EkskulType,
					"status":      e.Status,
					"notes":       e.Notes,
					"updated_at":  now,
				},
				"$setOnInsert": bson.M{"created_at": now},
			}).
			SetUpsert(true))
	}
	res, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, 0, err
	}
	return res.UpsertedCount, res.ModifiedCount, nil
}

// MemberSummary counts one member's statuses over a filter window.
type MemberSummary struct {
	MemberID   primitive.ObjectID `bson:"_id" json:"memberId"`
	MemberName string             `bson:"member_name" json:"memberName"`
	Total      int64              `bson:"total" json:"total"`
	Present    int64              `bson:"present" json:"present"`
	Absent     int64              `bson:"absent" json:"absent"`
	Excused    int64              `bson:"excused" json:"excused"`
	Sick       int64              `bson:"sick" json:"sick"`
}

// Rate is the share of Present over Total, in percent.
func (m MemberSummary) Rate() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Present) * 100 / float64(m.Total)
}

func countIf(status string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
}

// Summary aggregates per-member status counts, ordered by member name.
func (s *Store) Summary(ctx context.Context, f Filter) ([]MemberSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.bson()}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$member_id",
			"member_name": bson.M{"$first": "$member_name"},
			"total":       bson.M{"$sum": 1},
			"present":     countIf(models.AttendancePresent),
			"absent":      countIf(models.AttendanceAbsent),
			"excused":     countIf(models.AttendanceExcused),
			"sick":        countIf(models.AttendanceSick),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "member_name", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []MemberSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
