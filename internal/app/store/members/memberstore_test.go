package memberstore_test

import (
	"errors"
	"testing"

	memberstore "github.com/dalemusser/ekskulhub/internal/app/store/members"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Member{
		Name:       "Ádi Nugroho",
		StudentID:  "2024001",
		ClassName:  "X-2",
		EkskulType: "pramuka",
		JoinDate:   testutil.Day(2024, 7, 15),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI != "adi nugroho" {
		t.Errorf("NameCI = %q, want folded name", created.NameCI)
	}
	if created.Status != models.MemberActive {
		t.Errorf("expected default status active, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateStudentIDAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, models.Member{Name: "Sari", StudentID: "777", EkskulType: "tari"}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	n, _ := store.Count(ctx, memberstore.Filter{Ekskul: "tari"})
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestStore_List_ScopedAndOrdered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMember(ctx, "Citra", "robotik")
	fx.CreateMember(ctx, "andi", "robotik")
	fx.CreateMemberWithStatus(ctx, "Bima", "robotik", models.MemberInactive)
	fx.CreateMember(ctx, "Zaki", "futsal")

	all, err := store.List(ctx, memberstore.Filter{Ekskul: "robotik"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d members, want 3", len(all))
	}
	want := []string{"andi", "Bima", "Citra"}
	for i, m := range all {
		if m.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, m.Name, want[i])
		}
	}

	active, err := store.List(ctx, memberstore.Filter{Ekskul: "robotik", Status: models.MemberActive})
	if err != nil {
		t.Fatalf("List active failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active members, want 2", len(active))
	}

	everyone, _ := store.List(ctx, memberstore.Filter{})
	if len(everyone) != 4 {
		t.Errorf("unscoped list = %d, want 4", len(everyone))
	}
}

func TestStore_List_ByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateMember(ctx, "Ayu", "tari")
	fx.CreateMember(ctx, "Bayu", "tari")
	c := fx.CreateMember(ctx, "Cahya", "futsal")

	got, err := store.List(ctx, memberstore.Filter{IDs: []primitive.ObjectID{a.ID, c.ID}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Errorf("got %+v", got)
	}

	none, _ := store.List(ctx, memberstore.Filter{IDs: []primitive.ObjectID{}})
	if len(none) != 0 {
		t.Errorf("empty id list matched %d members", len(none))
	}
}

func TestStore_List_Query(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ayu := fx.CreateMember(ctx, "Ayu Lestari", "tari")
	fx.CreateMember(ctx, "Bayu", "tari")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"name prefix, any case", "AYU", 1},
		{"not a substring match", "yu", 0},
		{"student id", ayu.StudentID, 1},
		{"regex metacharacters are literal", "a.*", 0},
		{"blank matches all", "  ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, memberstore.Filter{Ekskul: "tari", Query: tt.query})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d members, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStore_List_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	out, err := store.List(ctx, memberstore.Filter{Ekskul: "voli"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fx.CreateMember(ctx, "Dewi", "pmr")
	m.Name = "Dewi Lestari"
	m.Status = models.MemberInactive

	updated, err := store.Update(ctx, m)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Dewi Lestari" || updated.NameCI != "dewi lestari" || updated.Status != models.MemberInactive {
		t.Errorf("unexpected update result %+v", updated)
	}

	m.ID = primitive.NewObjectID()
	if _, err := store.Update(ctx, m); !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete_LeavesAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fx.CreateMember(ctx, "Eko", "basket")
	fx.CreateAttendance(ctx, m, testutil.Day(2024, 3, 11), models.AttendancePresent)

	n, err := store.Delete(ctx, m.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if _, err := store.GetByID(ctx, m.ID); !errors.Is(err, memberstore.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v", err)
	}

	left, _ := db.Collection("attendance").CountDocuments(ctx, bson.M{"member_id": m.ID})
	if left != 1 {
		t.Errorf("attendance rows = %d, want 1 (no cascade)", left)
	}
}

func TestStore_CreateMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateMany(ctx, []models.Member{
		{Name: "Eka", EkskulType: "pmr"},
		{Name: "Fajar", EkskulType: "pmr", Status: models.MemberInactive},
	})
	if err != nil {
		t.Fatalf("CreateMany failed: %v", err)
	}
	if len(created) != 2 || created[0].Status != models.MemberActive || created[1].Status != models.MemberInactive {
		t.Errorf("created = %+v", created)
	}
	n, _ := store.Count(ctx, memberstore.Filter{Ekskul: "pmr"})
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	empty, err := store.CreateMany(ctx, nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty CreateMany = %v, %v", empty, err)
	}
}
