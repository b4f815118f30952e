// internal/app/store/achievements/achievementstore.go
package achievementstore

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

var ErrNotFound = errors.New("achievement not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("achievements")}
}

// Filter narrows List. Empty fields match everything; Limit <= 0 means no limit.
type Filter struct {
	Ekskul string
	Level  string
	Limit  int64
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Ekskul != "" {
		q["ekskul_type"] = f.Ekskul
	}
	if f.Level != "" {
		q["level"] = f.Level
	}
	return q
}

// List returns achievements newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Achievement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := s.c.Find(ctx, f.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Achievement{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.bson())
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Achievement, error) {
	var a models.Achievement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Achievement{}, ErrNotFound
		}
		return models.Achievement{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a models.Achievement) (models.Achievement, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Achievement{}, err
	}
	return a, nil
}

func (s *Store) Update(ctx context.Context, a models.Achievement) (models.Achievement, error) {
	set := bson.M{
		"title":        a.Title,
		"description":  a.Description,
		"date":         a.Date,
		"level":        a.Level,
		"rank":         a.Rank,
		"participants": a.Participants,
		"photo_url":    a.PhotoURL,
		"ekskul_type":  a.EkskulType,
		"updated_at":   time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, a.ID, bson.M{"$set": set})
	if err != nil {
		return models.Achievement{}, err
	}
	if res.MatchedCount == 0 {
		return models.Achievement{}, ErrNotFound
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
