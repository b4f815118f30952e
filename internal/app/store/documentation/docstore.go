// internal/app/store/documentation/docstore.go
package docstore

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

var ErrNotFound = errors.New("documentation not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documentation")}
}

func ekskulFilter(ekskul string) bson.M {
	if ekskul == "" {
		return bson.M{}
	}
	return bson.M{"ekskul_type": ekskul}
}

// List returns entries newest first. ekskul "" lists every club; limit <= 0
// means no limit.
func (s *Store) List(ctx context.Context, ekskul string, limit int64) ([]models.Documentation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, ekskulFilter(ekskul), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Documentation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, ekskul string) (int64, error) {
	return s.c.CountDocuments(ctx, ekskulFilter(ekskul))
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Documentation, error) {
	var d models.Documentation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Documentation{}, ErrNotFound
		}
		return models.Documentation{}, err
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, d models.Documentation) (models.Documentation, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	if d.Photos == nil {
		d.Photos = []string{}
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Documentation{}, err
	}
	return d, nil
}

// Update replaces the editable fields of the entry with d.ID.
func (s *Store) Update(ctx context.Context, d models.Documentation) (models.Documentation, error) {
	if d.Photos == nil {
		d.Photos = []string{}
	}
	set := bson.M{
		"title":       d.Title,
		"description": d.Description,
		"date":        d.Date,
		"location":    d.Location,
		"photos":      d.Photos,
		"ekskul_type": d.EkskulType,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, d.ID, bson.M{"$set": set})
	if err != nil {
		return models.Documentation{}, err
	}
	if res.MatchedCount == 0 {
		return models.Documentation{}, ErrNotFound
	}
	return s.GetByID(ctx, d.ID)
}

// Delete removes an entry. Photos stay on the media host.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
