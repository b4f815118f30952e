// internal/app/store/metrics/metricsstore.go
package metricsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Counts is the set of totals shown on a dashboard, one per sidebar tab.
// Users is only filled for the super admin overview.
type Counts struct {
	Members       int64 `json:"members"`
	ActiveMembers int64 `json:"activeMembers"`
	Documentation int64 `json:"documentation"`
	Schedules     int64 `json:"schedules"`
	Attendance    int64 `json:"attendance"`
	Achievements  int64 `json:"achievements"`
	Users         int64 `json:"users,omitempty"`
}

// FetchDashboardCounts counts every collection in parallel for one club, or
// for every club when ekskul is "". The first failing count aborts the rest.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database, ekskul string, withUsers bool) (Counts, error) {
	var out Counts
	g, gctx := errgroup.WithContext(ctx)

	scoped := func(extra bson.M) bson.M {
		q := bson.M{}
		if ekskul != "" {
			q["ekskul_type"] = ekskul
		}
		for k, v := range extra {
			q[k] = v
		}
		return q
	}
	count := func(dst *int64, coll string, filter bson.M) {
		g.Go(func() error {
			n, err := db.Collection(coll).CountDocuments(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&out.Members, "members", scoped(nil))
	count(&out.ActiveMembers, "members", scoped(bson.M{"status": "active"}))
	count(&out.Documentation, "documentation", scoped(nil))
	count(&out.Schedules, "schedules", scoped(nil))
	count(&out.Attendance, "attendance", scoped(nil))
	count(&out.Achievements, "achievements", scoped(nil))
	if withUsers {
		count(&out.Users, "users", bson.M{})
	}

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return out, nil
}
