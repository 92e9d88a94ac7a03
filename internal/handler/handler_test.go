package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

type handlerFixture struct {
	store  store.Store
	api    *API
	router *gin.Engine
	owner  *db.User
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewJSONStore("")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	owner, err := service.NewAuthService(s).EnsureOwner(context.Background(), "alperen", "secret")
	if err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}

	api := NewAPI(s, owner.ID)

	router := gin.New()
	router.Use(sessions.Sessions("roadmap_session", cookie.NewStore([]byte("test-secret"))))
	router.GET("/api/roadmap", api.GetRoadmap)
	router.GET("/api/roadmap/weeks", api.GetRoadmapWeeks)
	router.GET("/api/curriculum", api.GetCurriculum)
	router.POST("/admin/login", api.Login)
	router.POST("/admin/logout", api.Logout)

	auth := router.Group("/admin/api")
	auth.Use(AuthRequired())
	auth.GET("/roadmap", api.AdminRoadmap)
	auth.POST("/roadmap-items", api.CreateRoadmapItem)
	auth.GET("/roadmap-items/:id", api.GetRoadmapItem)
	auth.PUT("/roadmap-items/:id", api.UpdateRoadmapItem)
	auth.DELETE("/roadmap-items/:id", api.DeleteRoadmapItem)
	auth.POST("/daily-logs", api.CreateDailyLog)
	auth.POST("/tags", api.CreateTag)
	auth.GET("/curriculum/days/:dayId/draft", api.GetCurriculumDraft)
	auth.POST("/curriculum/days/:dayId/start", api.StartCurriculumDay)

	return &handlerFixture{store: s, api: api, router: router, owner: owner}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func (f *handlerFixture) login(t *testing.T) []*http.Cookie {
	t.Helper()

	recorder := f.do(t, http.MethodPost, "/admin/login", gin.H{"username": "alperen", "password": "secret"}, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d: %s", recorder.Code, recorder.Body.String())
	}
	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}
	return cookies
}

func (f *handlerFixture) seedItem(t *testing.T, item db.RoadmapItem) db.RoadmapItem {
	t.Helper()
	item.UserID = f.owner.ID
	if err := f.store.CreateRoadmapItem(context.Background(), &item); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}

func TestGetRoadmapHidesPrivateRows(t *testing.T) {
	f := setupHandlerFixture(t)
	ctx := context.Background()

	planned := 9.0
	public := f.seedItem(t, db.RoadmapItem{Title: "Python Foundations", Phase: "Foundations", Status: db.StatusInProgress, StartDate: "2026-02-16", PlannedHours: &planned, IsPublic: true})
	f.seedItem(t, db.RoadmapItem{Title: "Secret plan", Phase: "Hidden", Status: db.StatusPlanned, StartDate: "2026-02-16"})

	for _, entry := range []db.DailyLog{
		{RoadmapItemID: public.ID, UserID: f.owner.ID, LogDate: "2026-02-16", Title: "W1D1 - Setup", Notes: "**bold** <script>alert(1)</script>", IsPublic: true},
		{RoadmapItemID: public.ID, UserID: f.owner.ID, LogDate: "2026-02-17", Title: "Private notes"},
	} {
		entry := entry
		if err := f.store.CreateDailyLog(ctx, &entry); err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	recorder := f.do(t, http.MethodGet, "/api/roadmap?lang=tr", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var payload struct {
		Items []struct {
			ID          string `json:"id"`
			StatusLabel string `json:"status_label"`
			DailyLogs   []struct {
				Title     string `json:"title"`
				NotesHTML string `json:"notes_html"`
			} `json:"daily_logs"`
		} `json:"items"`
		Phases   []string `json:"phases"`
		Language string   `json:"language"`
	}
	decodeBody(t, recorder, &payload)

	if len(payload.Items) != 1 || payload.Items[0].ID != public.ID {
		t.Fatalf("expected only the public item, got %+v", payload.Items)
	}
	if payload.Language != "tr" || payload.Items[0].StatusLabel != "Devam ediyor" {
		t.Fatalf("expected turkish labels, got %s / %s", payload.Language, payload.Items[0].StatusLabel)
	}
	if len(payload.Phases) != 1 || payload.Phases[0] != "Foundations" {
		t.Fatalf("unexpected phases %v", payload.Phases)
	}
	logs := payload.Items[0].DailyLogs
	if len(logs) != 1 || logs[0].Title != "W1D1 - Setup" {
		t.Fatalf("expected only the public log, got %+v", logs)
	}
	if !strings.Contains(logs[0].NotesHTML, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown, got %q", logs[0].NotesHTML)
	}
	if strings.Contains(logs[0].NotesHTML, "<script>") {
		t.Fatalf("expected sanitized html, got %q", logs[0].NotesHTML)
	}
}

func TestGetRoadmapWeeks(t *testing.T) {
	f := setupHandlerFixture(t)
	f.seedItem(t, db.RoadmapItem{Title: "Python Foundations", Status: db.StatusPlanned, StartDate: "2026-02-16", IsPublic: true})

	recorder := f.do(t, http.MethodGet, "/api/roadmap/weeks", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var payload struct {
		Weeks []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
			Items []struct {
				Title string `json:"title"`
			} `json:"items"`
		} `json:"weeks"`
	}
	decodeBody(t, recorder, &payload)

	if len(payload.Weeks) != 1 {
		t.Fatalf("expected one week, got %d", len(payload.Weeks))
	}
	if payload.Weeks[0].Key != "2026-W08" || payload.Weeks[0].Label != "2026-02-16 - 2026-02-22" {
		t.Fatalf("unexpected week %+v", payload.Weeks[0])
	}
}

func TestAdminRequiresSession(t *testing.T) {
	f := setupHandlerFixture(t)

	recorder := f.do(t, http.MethodGet, "/admin/api/roadmap", nil, nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", recorder.Code)
	}

	bad := f.do(t, http.MethodPost, "/admin/login", gin.H{"username": "alperen", "password": "nope"}, nil)
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected wrong password to be rejected, got %d", bad.Code)
	}
}

func TestAdminRoadmapItemCRUD(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	invalid := f.do(t, http.MethodPost, "/admin/api/roadmap-items", gin.H{"title": "x", "start_date": "2026-02-16", "end_date": "2026-02-01"}, cookies)
	if invalid.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", invalid.Code)
	}

	created := f.do(t, http.MethodPost, "/admin/api/roadmap-items", gin.H{"title": "Data Work", "phase": "Data", "start_date": "2026-02-23"}, cookies)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", created.Code, created.Body.String())
	}
	var body struct {
		Item db.RoadmapItem `json:"item"`
	}
	decodeBody(t, created, &body)
	if body.Item.UserID != f.owner.ID {
		t.Fatalf("expected item owned by session user, got %q", body.Item.UserID)
	}

	updated := f.do(t, http.MethodPut, "/admin/api/roadmap-items/"+body.Item.ID, gin.H{"title": "Data Work", "status": "done", "start_date": "2026-02-23"}, cookies)
	if updated.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", updated.Code, updated.Body.String())
	}

	if rec := f.do(t, http.MethodGet, "/admin/api/roadmap-items/not-a-uuid", nil, cookies); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed id, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/admin/api/roadmap-items/"+body.Item.ID, nil, cookies); rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, "/admin/api/roadmap-items/"+body.Item.ID, nil, cookies); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateDailyLogUnknownParent(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	rec := f.do(t, http.MethodPost, "/admin/api/daily-logs", gin.H{
		"roadmap_item_id": "2b6f0cc9-0000-4000-8000-000000000000",
		"log_date":        "2026-02-16",
		"title":           "W1D1 - Setup",
	}, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateTagConflict(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	if rec := f.do(t, http.MethodPost, "/admin/api/tags", gin.H{"name": "python"}, cookies); rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/admin/api/tags", gin.H{"name": "Python"}, cookies); rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestStartCurriculumDay(t *testing.T) {
	f := setupHandlerFixture(t)
	cookies := f.login(t)

	draft := f.do(t, http.MethodGet, "/admin/api/curriculum/days/w1d1/draft", nil, cookies)
	if draft.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", draft.Code)
	}

	first := f.do(t, http.MethodPost, "/admin/api/curriculum/days/W1D1/start", nil, cookies)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", first.Code, first.Body.String())
	}
	var result service.StartDayResult
	decodeBody(t, first, &result)
	if !result.MilestoneCreated || result.Log.CurriculumDayID == nil || *result.Log.CurriculumDayID != "W1D1" {
		t.Fatalf("unexpected start result %+v", result)
	}

	again := f.do(t, http.MethodPost, "/admin/api/curriculum/days/W1D1/start", nil, cookies)
	if again.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", again.Code)
	}

	unknown := f.do(t, http.MethodPost, "/admin/api/curriculum/days/W7D1/start", nil, cookies)
	if unknown.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", unknown.Code)
	}

	progress := f.do(t, http.MethodGet, "/api/curriculum", nil, nil)
	var overview struct {
		Progress struct {
			CompletedDays int `json:"completed_days"`
		} `json:"progress"`
	}
	decodeBody(t, progress, &overview)
	if overview.Progress.CompletedDays != 0 {
		t.Fatalf("expected private curriculum logs to stay hidden, got %d", overview.Progress.CompletedDays)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	html, err := renderMarkdown("")
	if err != nil || html != "" {
		t.Fatalf("expected empty output, got %q, %v", html, err)
	}
}
