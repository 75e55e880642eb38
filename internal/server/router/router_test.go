package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karangnongko/goatherd/internal/demo"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/internal/server/handlers"
	"github.com/karangnongko/goatherd/internal/service/feedlogs"
	"github.com/karangnongko/goatherd/internal/service/goats"
	"github.com/karangnongko/goatherd/internal/session"
)

type testApp struct {
	engine *gin.Engine
	store  *session.Store
	repo   *session.MemoryRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	client := demo.NewClient()
	repo := session.NewMemoryRepository()
	store := session.NewStore(client, repo, nil)

	goatSvc := goats.NewService(client, nil)
	feedingSvc := feedlogs.NewService(client, nil)

	engine := New(
		store,
		handlers.NewAuthHandler(store, nil),
		handlers.NewGoatHandler(goatSvc, store, nil),
		handlers.NewFeedingHandler(feedingSvc, store, nil),
		nil,
	)

	return &testApp{engine: engine, store: store, repo: repo}
}

func (app *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) login(t *testing.T, username, password string) {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type goatRow struct {
	models.Goat
	CanManage bool `json:"can_manage"`
}

type logRow struct {
	models.FeedingLog
	CanManage bool `json:"can_manage"`
}

type calendarResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Days  []struct {
		Date string   `json:"date"`
		Logs []logRow `json:"logs"`
	} `json:"days"`
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/goats", "/goats/stats", "/feed-logs", "/me"} {
		rec := app.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/login", map[string]string{
		"username": "wati",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, ok := app.store.Current()
	assert.False(t, ok)
}

func TestHandlerSeesAllGoatsButManagesOwnBarn(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "wati", "barat123")

	rec := app.do(t, http.MethodGet, "/goats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rows := decode[[]goatRow](t, rec)
	require.NotEmpty(t, rows)

	sawWest, sawEast := false, false
	for _, row := range rows {
		switch row.Barn {
		case models.BarnWest:
			sawWest = true
			assert.True(t, row.CanManage, "west handler must manage west goats")
		case models.BarnEast:
			sawEast = true
			assert.False(t, row.CanManage, "west handler must not manage east goats")
		}
	}
	assert.True(t, sawWest)
	assert.True(t, sawEast, "list view is never restricted by role")
}

func TestAdminCreateGoatMovesStats(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "admin", "admin123")

	before := decode[models.GoatStats](t, app.do(t, http.MethodGet, "/goats/stats", nil))
	require.Equal(t, before.Total, before.West+before.East)

	rec := app.do(t, http.MethodPost, "/goats", map[string]any{
		"tag": "G010", "weight": 40, "age": 6,
		"gender": "male", "status": "healthy", "barn": "timur",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	after := decode[models.GoatStats](t, app.do(t, http.MethodGet, "/goats/stats", nil))
	assert.Equal(t, before.East+1, after.East)
	assert.Equal(t, before.Total+1, after.Total)
}

func TestHandlerCannotTouchOtherBarn(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "wati", "barat123")

	// Creating into the east barn is refused outright.
	rec := app.do(t, http.MethodPost, "/goats", map[string]any{
		"tag": "G020", "weight": 30, "age": 4,
		"gender": "female", "status": "healthy", "barn": "timur",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// So is deleting an east-barn goat.
	rows := decode[[]goatRow](t, app.do(t, http.MethodGet, "/goats", nil))
	var eastID string
	for _, row := range rows {
		if row.Barn == models.BarnEast {
			eastID = row.ID
			break
		}
	}
	require.NotEmpty(t, eastID)

	rec = app.do(t, http.MethodDelete, "/goats/"+eastID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateGoatDefaultsToHandlersBarn(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "tono", "timur123")

	rec := app.do(t, http.MethodPost, "/goats", map[string]any{
		"tag": "G021", "weight": 25, "age": 3,
		"gender": "female", "status": "healthy",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	goat := decode[models.Goat](t, rec)
	assert.Equal(t, models.BarnEast, goat.Barn)
}

func TestFeedingLogValidationRejectedLocally(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "wati", "barat123")

	rec := app.do(t, http.MethodPost, "/feed-logs", map[string]any{
		"date": "2025-03-10", "feed_time": "", "barn": "barat",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.NotEmpty(t, body["fields"])
}

func TestCalendarFebruaryNonLeap(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "wati", "barat123")

	rec := app.do(t, http.MethodPost, "/feed-logs", map[string]any{
		"date": "2025-02-14", "feed_time": "07:00", "barn": "barat", "note": "hay",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cal := decode[calendarResponse](t, app.do(t, http.MethodGet, "/feed-logs/calendar?year=2025&month=2", nil))
	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, 2, cal.Month)
	require.Len(t, cal.Days, 28)
	assert.Equal(t, "2025-02-01", cal.Days[0].Date)
	assert.Equal(t, "2025-02-28", cal.Days[27].Date)

	require.Len(t, cal.Days[13].Logs, 1)
	assert.True(t, cal.Days[13].Logs[0].CanManage)
}

func TestStaleTokenForcesLogout(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	// Simulate a restored snapshot whose token the API no longer accepts.
	stale := session.Session{
		Token: "stale-token",
		Actor: models.Actor{ID: "u2", Username: "wati", Role: models.HandlerRole(models.BarnWest)},
	}
	require.NoError(t, app.repo.Save(ctx, stale))
	require.NoError(t, app.store.Restore(ctx))

	rec := app.do(t, http.MethodGet, "/goats", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Both the in-memory session and the persisted snapshot are gone.
	_, ok := app.store.Current()
	assert.False(t, ok)

	persisted, err := app.repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestLogoutThenMe(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "admin", "admin123")

	rec := app.do(t, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestFeedingLogLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "admin", "admin123")

	created := decode[models.FeedingLog](t, app.do(t, http.MethodPost, "/feed-logs", map[string]any{
		"date": "2025-06-01", "feed_time": "06:30", "barn": "barat", "note": "silage",
	}))
	require.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.UserID)

	updated := decode[models.FeedingLog](t, app.do(t, http.MethodPut, fmt.Sprintf("/feed-logs/%s", created.ID), map[string]any{
		"date": "2025-06-02", "feed_time": "07:00", "barn": "barat", "note": "silage again",
	}))
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, "2025-06-02", updated.Date)

	rec := app.do(t, http.MethodDelete, "/feed-logs/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rows := decode[[]logRow](t, app.do(t, http.MethodGet, "/feed-logs?year=2025&month=06", nil))
	for _, row := range rows {
		assert.NotEqual(t, created.ID, row.ID)
	}
}
