// api/models/analytics.go
package models

import "time"

// Visitor is a stable client identity across visits. The analytics store
// keys visitors by the client-generated visitor id; ID is the internal
// record id assigned on first sight.
type Visitor struct {
	ID             string    `json:"id"`
	IP             string    `json:"ip"`
	Device         string    `json:"device"`
	Browser        string    `json:"browser"`
	BrowserVersion string    `json:"browserVersion"`
	OS             string    `json:"os"`
	ScreenWidth    int       `json:"screenWidth"`
	ScreenHeight   int       `json:"screenHeight"`
	Language       string    `json:"language"`
	Referrer       string    `json:"referrer"`
	FirstVisit     time.Time `json:"firstVisit"`
	LastVisit      time.Time `json:"lastVisit"`
	TotalVisits    int       `json:"totalVisits"`
	HasChatted     bool      `json:"hasChatted"`
}

// Session is one continuous browsing visit, opened by the first pageview
// carrying its sessionId and closed by an explicit session_end event.
// EndTime and Duration stay nil until the session is closed.
type Session struct {
	ID        string     `json:"id"`
	VisitorID string     `json:"visitorId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int64     `json:"duration,omitempty"` // whole seconds
	IsActive  bool       `json:"isActive"`
}

type PageView struct {
	ID        string    `json:"id"`
	VisitorID string    `json:"visitorId"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMarker is the lightweight analytics-side record of a chat being
// opened. The full transcript lives in the chat store.
type ChatMarker struct {
	VisitorID string    `json:"visitorId"`
	StartTime time.Time `json:"startTime"`
}

type ContactClick struct {
	ID          string    `json:"id"`
	VisitorID   string    `json:"visitorId"`
	ContactType string    `json:"contactType"` // email, phone, whatsapp
	Value       string    `json:"value"`
	Timestamp   time.Time `json:"timestamp"`
	IP          string    `json:"ip"`
}

// TrackEvent is the payload accepted by the public ingest endpoint,
// discriminated by Type. Everything except Type is optional at the JSON
// level; per-type required fields are checked in the handler.
type TrackEvent struct {
	Type           string `json:"type" binding:"required"`
	VisitorID      string `json:"visitorId"`
	SessionID      string `json:"sessionId"`
	Path           string `json:"path"`
	Title          string `json:"title"`
	Referrer       string `json:"referrer"`
	Device         string `json:"device"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	ScreenWidth    int    `json:"screenWidth"`
	ScreenHeight   int    `json:"screenHeight"`
	Language       string `json:"language"`
	Duration       int64  `json:"duration"`
	ScrollDepth    int    `json:"scrollDepth"`
	ContactType    string `json:"contactType"`
	Value          string `json:"value"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Funnel struct {
	Visitors        int `json:"visitors"`
	ChatbotUsers    int `json:"chatbotUsers"`
	ContactAttempts int `json:"contactAttempts"`
	ConversionRate  int `json:"conversionRate"`
}

// Insights is the dashboard rollup computed from the event store.
type Insights struct {
	TodayVisitors     int         `json:"todayVisitors"`
	YesterdayVisitors int         `json:"yesterdayVisitors"`
	GrowthPercent     int         `json:"growthPercent"`
	TopPages          []PathCount `json:"topPages"`
	Browsers          []NameCount `json:"browsers"`
	Devices           []NameCount `json:"devices"`
	PeakHour          int         `json:"peakHour"`
	Funnel            Funnel      `json:"funnel"`
	Highlights        []string    `json:"highlights"`
}

// VisitorDetail is the per-visitor report: profile, history and the
// contact signals derived from chat transcripts.
type VisitorDetail struct {
	Visitor         Visitor        `json:"visitor"`
	PageViews       []PageView     `json:"pageViews"`
	ContactClicks   []ContactClick `json:"contactClicks"`
	ChatSessions    []ChatSession  `json:"chatSessions"`
	UserName        string         `json:"userName,omitempty"`
	UserPhone       string         `json:"userPhone,omitempty"`
	BookingDetected bool           `json:"bookingDetected"`
	TimeOnSiteSec   int64          `json:"timeOnSiteSec"`
}
