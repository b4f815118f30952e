// internal/app/system/indexes/indexes.go

// Package indexes reconciles the MongoDB indexes every collection needs.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's set is reconciled
idempotently; problems are aggregated so startup fails with the full list.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	var problems []string
	for _, set := range desired() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models, log); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func desired() []indexSet {
	return []indexSet{
		{"users", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
			},
			// Only provider-linked users carry a uid.
			{
				Keys: bson.D{{Key: "uid", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_users_uid").
					SetPartialFilterExpression(bson.M{"uid": bson.M{"$type": "string"}}),
			},
			{
				Keys:    bson.D{{Key: "role", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_users_role_nameci_id"),
			},
		}},
		{"members", []mongo.IndexModel{
			// Club lists with optional status filter, ordered by folded name.
			{
				Keys: bson.D{
					{Key: "ekskul_type", Value: 1},
					{Key: "status", Value: 1},
					{Key: "name_ci", Value: 1},
					{Key: "_id", Value: 1},
				},
				Options: options.Index().SetName("idx_members_ekskul_status_nameci_id"),
			},
			{
				Keys:    bson.D{{Key: "ekskul_type", Value: 1}, {Key: "name_ci", Value: 1}},
				Options: options.Index().SetName("idx_members_ekskul_nameci"),
			},
			// Not unique: two members may share a student id.
			{
				Keys:    bson.D{{Key: "student_id", Value: 1}},
				Options: options.Index().SetName("idx_members_student_id"),
			},
		}},
		{"documentation", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ekskul_type", Value: 1}, {Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_documentation_ekskul_date"),
			},
		}},
		{"achievements", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ekskul_type", Value: 1}, {Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_achievements_ekskul_date"),
			},
			{
				Keys:    bson.D{{Key: "level", Value: 1}, {Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_achievements_level_date"),
			},
			{
				Keys:    bson.D{{Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_achievements_date"),
			},
		}},
		{"attendance", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ekskul_type", Value: 1}, {Key: "date", Value: -1}, {Key: "member_name", Value: 1}},
				Options: options.Index().SetName("idx_attendance_ekskul_date_member"),
			},
			// Batch upserts match on (member_id, date); single creates may
			// still add duplicates, so this is not unique.
			{
				Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetName("idx_attendance_member_date"),
			},
		}},
		{"schedules", []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "ekskul_type", Value: 1}, {Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
				Options: options.Index().SetName("idx_schedules_ekskul_date_start"),
			},
			{
				Keys:    bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}},
				Options: options.Index().SetName("idx_schedules_date_start"),
			},
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile one collection's desired indexes                                 */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func listExisting(ctx context.Context, coll *mongo.Collection, log *zap.Logger) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			log.Warn("failed to decode existing index", zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// ensureIndexSet creates missing indexes, reuses matching ones, and drops
// and recreates an index whose name or uniqueness differs from the desired.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, log *zap.Logger) error {
	var errs []string
	existing := listExisting(ctx, coll, log)

	for _, m := range models {
		name := ""
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", boolVal(unique)),
		}

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == boolVal(unique) && (name == "" || ex.Name == name) {
				log.Debug("reusing existing index", fields...)
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
			log.Info("dropped index to realign name/options", append(fields, zap.String("old_name", ex.Name))...)
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if wafflemongo.IsDup(err) && boolVal(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed", append(fields, zap.Error(err))...)
			continue
		}
		log.Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
