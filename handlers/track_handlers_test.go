package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cristalclean/api/models"
	"cristalclean/api/storage"
	"cristalclean/api/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *TrackingHandlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files, err := storage.NewClient(t.TempDir())
	if err != nil {
		t.Fatalf("storage client: %v", err)
	}
	events := store.NewEventStore(files)
	events.Load()
	clicks := store.NewContactClickLedger(files)
	clicks.Load()
	chats := store.NewChatStore(files)
	chats.Load()

	h := NewTrackingHandlers(events, clicks, chats)
	r := gin.New()
	r.POST("/api/track", h.Track)
	r.GET("/api/admin/insights", h.GetInsights)
	r.GET("/api/admin/visitors/:id", h.GetVisitorDetail)
	r.GET("/api/admin/leads", h.GetLeads)
	return r, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackPageview(t *testing.T) {
	r, h := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/track",
		`{"type":"pageview","visitorId":"v1","sessionId":"s1","path":"/services","browser":"Firefox"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	if resp["visitorId"] == "" || resp["sessionId"] == "" {
		t.Fatalf("expected record ids in response: %v", resp)
	}

	v, ok := h.Events.Visitor("v1")
	if !ok {
		t.Fatal("visitor not recorded")
	}
	if v.IP != "203.0.113.7" {
		t.Fatalf("forwarded IP not used: %q", v.IP)
	}
	if v.Browser != "Firefox" {
		t.Fatalf("browser not recorded: %q", v.Browser)
	}
}

func TestTrackPageviewMissingVisitorID(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/track", `{"type":"pageview","path":"/"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTrackUnknownTypeIsAcknowledged(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/track", `{"type":"rage_click","visitorId":"v1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown type, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Fatalf("expected success ack: %s", w.Body.String())
	}
}

func TestTrackContactClickValidation(t *testing.T) {
	r, h := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/track", `{"type":"contact_click","visitorId":"v1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/track",
		`{"type":"contact_click","visitorId":"v1","contactType":"whatsapp","value":"+41795550000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := h.Clicks.Count(); got != 1 {
		t.Fatalf("click not recorded: %d", got)
	}
}

func TestTrackSessionEndWithoutIDIsNoop(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/track", `{"type":"session_end"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 no-op, got %d", w.Code)
	}
}

func TestGetLeadsEmptyShape(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/admin/leads", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Leads   []models.Lead      `json:"leads"`
		Summary models.LeadSummary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Leads == nil {
		t.Fatal("leads must be an empty array, not null")
	}
	if resp.Summary.Total != 0 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
}

func TestGetVisitorDetail(t *testing.T) {
	r, h := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/track", `{"type":"pageview","visitorId":"v1","path":"/"}`)
	h.Chats.Upsert(models.ChatSession{
		ID:        "c1",
		VisitorID: "v1",
		UserName:  "Marie",
		Intent:    "randevu",
		Messages: []models.ChatMessage{
			{Sender: "user", Message: "je veux un rendez-vous, mon tel 076 123 45 67", Timestamp: time.Now()},
		},
		StartTime: time.Now(),
	})

	w := doJSON(t, r, http.MethodGet, "/api/admin/visitors/v1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var detail models.VisitorDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.UserName != "Marie" {
		t.Fatalf("userName not derived: %q", detail.UserName)
	}
	if detail.UserPhone != "0761234567" {
		t.Fatalf("phone not extracted: %q", detail.UserPhone)
	}
	if !detail.BookingDetected {
		t.Fatal("booking not detected despite randevu intent")
	}
	if len(detail.PageViews) != 1 {
		t.Fatalf("expected 1 page view, got %d", len(detail.PageViews))
	}
}

func TestGetVisitorDetailUnknown(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/admin/visitors/ghost", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTimeOnSite(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	pvs := []models.PageView{
		{Timestamp: base},
		{Timestamp: base.Add(5 * time.Minute)},
		{Timestamp: base.Add(10 * time.Minute)},
		// New visit after a 2h gap.
		{Timestamp: base.Add(2*time.Hour + 10*time.Minute)},
		{Timestamp: base.Add(2*time.Hour + 25*time.Minute)},
	}
	// 10 minutes + 15 minutes = 1500 seconds.
	if got := timeOnSite(pvs); got != 1500 {
		t.Fatalf("timeOnSite = %d, want 1500", got)
	}
}
