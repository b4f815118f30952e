package achievements_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/ekskulhub/internal/app/features/achievements"
	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"github.com/dalemusser/ekskulhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*achievements.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return achievements.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestCreate_WritesDocument(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/api/admin/achievements", map[string]any{
		"title":        "Lomba Robot Line Follower",
		"date":         "2024-10-05",
		"level":        "Nasional",
		"rank":         "Juara 1",
		"participants": "Andi, Budi",
	})
	req = testutil.WithUser(req, testutil.ClubAdmin("robotik"))
	rec := testutil.NewRecorder()
	handler.Create(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var stored models.Achievement
	if err := fx.DB().Collection("achievements").FindOne(ctx, map[string]any{"title": "Lomba Robot Line Follower"}).Decode(&stored); err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.EkskulType != "robotik" || stored.Level != models.LevelNasional || stored.Participants != "Andi, Budi" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestCreate_RejectsUnknownLevel(t *testing.T) {
	handler, _ := newTestHandler(t)
	req := testutil.NewJSONRequest(t, "POST", "/api/admin/achievements", map[string]any{
		"title": "X", "date": "2024-10-05", "level": "Dunia",
	})
	req = testutil.WithUser(req, testutil.ClubAdmin("robotik"))
	rec := testutil.NewRecorder()
	handler.Create(rec, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "level")
}

func TestList_LevelFilterAndScope(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAchievement(ctx, "A", "voli", models.LevelProvinsi, testutil.Day(2024, 1, 1))
	fx.CreateAchievement(ctx, "B", "voli", models.LevelSekolah, testutil.Day(2024, 2, 1))
	fx.CreateAchievement(ctx, "C", "basket", models.LevelProvinsi, testutil.Day(2024, 3, 1))

	req := testutil.WithUser(httptest.NewRequest("GET", "/api/admin/achievements?level=Provinsi", nil), testutil.SuperAdmin())
	rec := testutil.NewRecorder()
	handler.List(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Items []models.Achievement `json:"items"`
	}
	rec.DecodeJSON(t, &body)
	if len(body.Items) != 2 || body.Items[0].Title != "C" {
		t.Errorf("items = %+v", body.Items)
	}

	req = testutil.WithUser(httptest.NewRequest("GET", "/api/admin/achievements?ekskul=basket", nil), testutil.ClubAdmin("voli"))
	rec = testutil.NewRecorder()
	handler.List(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestDelete_OtherClubNotFound(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateAchievement(ctx, "A", "voli", models.LevelProvinsi, testutil.Day(2024, 1, 1))
	req := httptest.NewRequest("DELETE", "/api/admin/achievements/"+a.ID.Hex(), nil)
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.ClubAdmin("basket")), "id", a.ID.Hex())
	rec := testutil.NewRecorder()
	handler.Delete(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	if n, _ := fx.DB().Collection("achievements").CountDocuments(ctx, map[string]any{}); n != 1 {
		t.Errorf("record deleted across clubs")
	}
}

func TestServePublic_Filters(t *testing.T) {
	testutil.BootTemplates(t)

	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateAchievement(ctx, "Juara Futsal Cup", "futsal", models.LevelKecamatan, testutil.Day(2024, 4, 1))
	fx.CreateAchievement(ctx, "Festival Tari", "tari", models.LevelNasional, testutil.Day(2024, 5, 1))

	rec := testutil.NewRecorder()
	handler.ServePublic(rec, httptest.NewRequest("GET", "/achievements?ekskul=tari&level=bogus", nil))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Festival Tari")
	if strings.Contains(rec.Body.String(), "Juara Futsal Cup") {
		t.Error("filtered page should not list futsal")
	}
}
