// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("member not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Ekskul string
	Status string
	IDs    []primitive.ObjectID // when non-nil, only these members
	Query  string               // prefix of the name (folded) or student id
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Ekskul != "" {
		q["ekskul_type"] = f.Ekskul
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.IDs != nil {
		q["_id"] = bson.M{"$in": f.IDs}
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		q["$or"] = bson.A{
			bson.M{"name_ci": bson.M{"$regex": "^" + regexp.QuoteMeta(normalize.Fold(term))}},
			bson.M{"student_id": bson.M{"$regex": "^" + regexp.QuoteMeta(term)}},
		}
	}
	return q
}

// List returns members ordered by name.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, f.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Member{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns how many members match f.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.bson())
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Member{}, ErrNotFound
		}
		return models.Member{}, err
	}
	return m, nil
}

// Create inserts m with a new ID. Status defaults to active.
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = normalize.Fold(m.Name)
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// CreateMany inserts a roster in one round trip, applying the same defaults
// as Create.
func (s *Store) CreateMany(ctx context.Context, ms []models.Member) ([]models.Member, error) {
	if len(ms) == 0 {
		return []models.Member{}, nil
	}
	now := time.Now().UTC()
	docs := make([]any, len(ms))
	for i := range ms {
		ms[i].ID = primitive.NewObjectID()
		ms[i].NameCI = normalize.Fold(ms[i].Name)
		if ms[i].Status == "" {
			ms[i].Status = models.MemberActive
		}
		ms[i].CreatedAt = now
		ms[i].UpdatedAt = now
		docs[i] = ms[i]
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return ms, nil
}

// Update replaces the editable fields of the member with m.ID.
func (s *Store) Update(ctx context.Context, m models.Member) (models.Member, error) {
	m.NameCI = normalize.Fold(m.Name)
	m.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":        m.Name,
		"name_ci":     m.NameCI,
		"student_id":  m.StudentID,
		"class_name":  m.ClassName,
		"ekskul_type": m.EkskulType,
		"status":      m.Status,
		"join_date":   m.JoinDate,
		"phone":       m.Phone,
		"photo_url":   m.PhotoURL,
		"updated_at":  m.UpdatedAt,
	}
	res, err := s.c.UpdateByID(ctx, m.ID, bson.M{"$set": set})
	if err != nil {
		return models.Member{}, err
	}
	if res.MatchedCount == 0 {
		return models.Member{}, ErrNotFound
	}
	return s.GetByID(ctx, m.ID)
}

// Delete removes a member. Attendance rows referencing it are left alone.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
