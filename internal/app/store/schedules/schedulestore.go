// internal/app/store/schedules/schedulestore.go
package schedulestore

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

var ErrNotFound = errors.New("schedule not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

// Filter narrows List to one club and the half-open date range [From, To).
type Filter struct {
	Ekskul string
	From   time.Time
	To     time.Time
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Ekskul != "" {
		q["ekskul_type"] = f.Ekskul
	}
	if !f.From.IsZero() || !f.To.IsZero() {
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

// List returns schedules in calendar order.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Schedule, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "start_time", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, f.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Schedule{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.bson())
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Schedule, error) {
	var sc models.Schedule
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Schedule{}, ErrNotFound
		}
		return models.Schedule{}, err
	}
	return sc, nil
}

func (s *Store) Create(ctx context.Context, sc models.Schedule) (models.Schedule, error) {
	now := time.Now().UTC()
	sc.ID = primitive.NewObjectID()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sc); err != nil {
		return models.Schedule{}, err
	}
	return sc, nil
}

func (s *Store) Update(ctx context.Context, sc models.Schedule) (models.Schedule, error) {
	set := bson.M{
		"title":       sc.Title,
		"description": sc.Description,
		"date":        sc.Date,
		"start_time":  sc.StartTime,
		"end_time":    sc.EndTime,
		"location":    sc.Location,
		"ekskul_type": sc.EkskulType,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, sc.ID, bson.M{"$set": set})
	if err != nil {
		return models.Schedule{}, err
	}
	if res.MatchedCount == 0 {
		return models.Schedule{}, ErrNotFound
	}
	return s.GetByID(ctx, sc.ID)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
