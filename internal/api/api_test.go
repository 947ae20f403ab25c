package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shared-calendar/internal/model"
	"shared-calendar/internal/notify"
	"shared-calendar/internal/repository"
	"shared-calendar/internal/service"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, []notify.Recipient, notify.Kind, notify.Payload) {}

type apiEnv struct {
	router http.Handler
	db     *gorm.DB
	users  *repository.UserRepository
	events *service.EventService
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Event{}, &model.SharedEvent{}, &model.Invite{}))

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sharedRepo := repository.NewSharedEventRepository(db)
	eventSvc := service.NewEventService(eventRepo)
	sharedSvc := service.NewSharedEventService(sharedRepo, eventRepo, userRepo, eventSvc, nopNotifier{}, zerolog.Nop())

	return &apiEnv{
		router: NewRouter(db, userRepo, eventSvc, sharedSvc),
		db:     db,
		users:  userRepo,
		events: eventSvc,
	}
}

func (e *apiEnv) do(t *testing.T, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != 0 {
		req.Header.Set("X-User-ID", fmt.Sprint(userID))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *apiEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func sharedEventBody() map[string]interface{} {
	return map[string]interface{}{
		"title":           "Workshop",
		"startDate":       "2025-06-04",
		"endDate":         "2025-06-10",
		"dailyStartMin":   9 * 60,
		"dailyEndMin":     17 * 60,
		"durationMinutes": 60,
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", 0, map[string]string{"email": "a@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/users", 0, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSharedEventRequiresIdentity(t *testing.T) {
	env := newAPIEnv(t)

	rec := env.do(t, http.MethodPost, "/api/shared-events", 0, sharedEventBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSharedEventValidationIsBadRequest(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.createUser(t, "owner@example.com")

	body := sharedEventBody()
	body["dailyStartMin"] = 17 * 60
	body["dailyEndMin"] = 9 * 60
	rec := env.do(t, http.MethodPost, "/api/shared-events", owner.ID, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArrangeConflictIsConflictNotBadRequest(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.createUser(t, "owner@example.com")

	// Block the whole window for every day of the range.
	base := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		day := base.AddDate(0, 0, d)
		_, err := env.events.Create(context.Background(), owner, service.EventInput{
			Title:     "Busy",
			StartTime: day.Add(8 * time.Hour),
			EndTime:   day.Add(18 * time.Hour),
		})
		require.NoError(t, err)
	}

	rec := env.do(t, http.MethodPost, "/api/shared-events", owner.ID, sharedEventBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = env.do(t, http.MethodPost, "/api/shared-events/"+created.ID+"/arrange", owner.ID, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestArrangeThenSaveHappyPath(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.createUser(t, "owner@example.com")

	rec := env.do(t, http.MethodPost, "/api/shared-events", owner.ID, sharedEventBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodPost, "/api/shared-events/"+created.ID+"/arrange", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/shared-events/"+created.ID+"/save", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Arranging a saved event is a bad request, not a conflict.
	rec = env.do(t, http.MethodPost, "/api/shared-events/"+created.ID+"/arrange", owner.ID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSharedEventIsNotFound(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.createUser(t, "owner@example.com")

	rec := env.do(t, http.MethodGet, "/api/shared-events/nope", owner.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventCRUDAndFeed(t *testing.T) {
	env := newAPIEnv(t)
	owner := env.createUser(t, "owner@example.com")
	prefix := fmt.Sprintf("/api/users/%d", owner.ID)

	start := time.Date(2025, time.June, 4, 9, 0, 0, 0, time.UTC)
	rec := env.do(t, http.MethodPost, prefix+"/events", 0, map[string]interface{}{
		"title":     "Standup",
		"startTime": start.Format(time.RFC3339),
		"endTime":   start.Add(30 * time.Minute).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, prefix+"/events", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, prefix+"/calendar.ics", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	require.Contains(t, rec.Body.String(), "SUMMARY:Standup")
}
