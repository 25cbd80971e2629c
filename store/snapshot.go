// api/store/snapshot.go
package store

import (
	"sort"
	"time"

	"cristalclean/api/models"
)

// Persisted document names inside the data directory.
const (
	analyticsFile     = "analytics.json"
	contactClicksFile = "contact-clicks.json"
	chatSessionsFile  = "chat-sessions.json"
	settingsFile      = "settings.json"
)

const documentVersion = 1

// AnalyticsDocument is the durable form of the event store. Dates are
// RFC 3339 strings and the visitor/session maps keep their original
// client-supplied keys.
type AnalyticsDocument struct {
	Version   int                      `json:"version"`
	Visitors  map[string]VisitorRecord `json:"visitors"`
	Sessions  map[string]SessionRecord `json:"sessions"`
	PageViews []PageViewRecord         `json:"pageViews"`
	ChatStart []ChatMarkerRecord       `json:"chatSessions"`
}

type VisitorRecord struct {
	ID             string `json:"id"`
	IP             string `json:"ip"`
	Device         string `json:"device"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	ScreenWidth    int    `json:"screenWidth"`
	ScreenHeight   int    `json:"screenHeight"`
	Language       string `json:"language"`
	Referrer       string `json:"referrer"`
	FirstVisit     string `json:"firstVisit"`
	LastVisit      string `json:"lastVisit"`
	TotalVisits    int    `json:"totalVisits"`
	HasChatted     bool   `json:"hasChatted"`
}

type SessionRecord struct {
	ID        string `json:"id"`
	VisitorID string `json:"visitorId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	Duration  *int64 `json:"duration,omitempty"`
	IsActive  bool   `json:"isActive"`
}

type PageViewRecord struct {
	ID        string `json:"id"`
	VisitorID string `json:"visitorId"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

type ChatMarkerRecord struct {
	VisitorID string `json:"visitorId"`
	StartTime string `json:"startTime"`
}

type ContactClickRecord struct {
	ID          string `json:"id"`
	VisitorID   string `json:"visitorId"`
	ContactType string `json:"contactType"`
	Value       string `json:"value"`
	Timestamp   string `json:"timestamp"`
	IP          string `json:"ip"`
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Snapshot converts the live store into its storage format. It holds
// the store mutex only for the conversion; the actual write happens in
// the bridge against the returned copy.
func (es *EventStore) Snapshot() *AnalyticsDocument {
	es.mu.Lock()
	defer es.mu.Unlock()

	doc := &AnalyticsDocument{
		Version:   documentVersion,
		Visitors:  make(map[string]VisitorRecord, len(es.visitors)),
		Sessions:  make(map[string]SessionRecord, len(es.sessions)),
		PageViews: make([]PageViewRecord, 0, len(es.pageViews)),
		ChatStart: make([]ChatMarkerRecord, 0, len(es.chatMarkers)),
	}

	for key, v := range es.visitors {
		doc.Visitors[key] = VisitorRecord{
			ID:             v.ID,
			IP:             v.IP,
			Device:         v.Device,
			Browser:        v.Browser,
			BrowserVersion: v.BrowserVersion,
			OS:             v.OS,
			ScreenWidth:    v.ScreenWidth,
			ScreenHeight:   v.ScreenHeight,
			Language:       v.Language,
			Referrer:       v.Referrer,
			FirstVisit:     formatTime(v.FirstVisit),
			LastVisit:      formatTime(v.LastVisit),
			TotalVisits:    v.TotalVisits,
			HasChatted:     v.HasChatted,
		}
	}
	for key, s := range es.sessions {
		rec := SessionRecord{
			ID:        s.ID,
			VisitorID: s.VisitorID,
			StartTime: formatTime(s.StartTime),
			Duration:  s.Duration,
			IsActive:  s.IsActive,
		}
		if s.EndTime != nil {
			rec.EndTime = formatTime(*s.EndTime)
		}
		doc.Sessions[key] = rec
	}
	for _, pv := range es.pageViews {
		doc.PageViews = append(doc.PageViews, PageViewRecord{
			ID:        pv.ID,
			VisitorID: pv.VisitorID,
			Path:      pv.Path,
			Timestamp: formatTime(pv.Timestamp),
		})
	}
	for _, m := range es.chatMarkers {
		doc.ChatStart = append(doc.ChatStart, ChatMarkerRecord{
			VisitorID: m.VisitorID,
			StartTime: formatTime(m.StartTime),
		})
	}
	return doc
}

// restore is the inverse conversion. Caller holds the mutex. EndTime
// and Duration stay unset when the document does not carry them.
func (es *EventStore) restore(doc *AnalyticsDocument) {
	es.visitors = make(map[string]*models.Visitor, len(doc.Visitors))
	es.visitorOrder = es.visitorOrder[:0]
	for key, rec := range doc.Visitors {
		es.visitors[key] = &models.Visitor{
			ID:             rec.ID,
			IP:             rec.IP,
			Device:         rec.Device,
			Browser:        rec.Browser,
			BrowserVersion: rec.BrowserVersion,
			OS:             rec.OS,
			ScreenWidth:    rec.ScreenWidth,
			ScreenHeight:   rec.ScreenHeight,
			Language:       rec.Language,
			Referrer:       rec.Referrer,
			FirstVisit:     parseTime(rec.FirstVisit),
			LastVisit:      parseTime(rec.LastVisit),
			TotalVisits:    rec.TotalVisits,
			HasChatted:     rec.HasChatted,
		}
		es.visitorOrder = append(es.visitorOrder, key)
	}
	// JSON objects carry no order, so rebuild a stable iteration order
	// from first-visit times.
	sort.SliceStable(es.visitorOrder, func(i, j int) bool {
		return es.visitors[es.visitorOrder[i]].FirstVisit.Before(es.visitors[es.visitorOrder[j]].FirstVisit)
	})

	es.sessions = make(map[string]*models.Session, len(doc.Sessions))
	for key, rec := range doc.Sessions {
		s := &models.Session{
			ID:        rec.ID,
			VisitorID: rec.VisitorID,
			StartTime: parseTime(rec.StartTime),
			Duration:  rec.Duration,
			IsActive:  rec.IsActive,
		}
		if rec.EndTime != "" {
			t := parseTime(rec.EndTime)
			s.EndTime = &t
		}
		es.sessions[key] = s
	}

	es.pageViews = make([]models.PageView, 0, len(doc.PageViews))
	for _, rec := range doc.PageViews {
		es.pageViews = append(es.pageViews, models.PageView{
			ID:        rec.ID,
			VisitorID: rec.VisitorID,
			Path:      rec.Path,
			Timestamp: parseTime(rec.Timestamp),
		})
	}

	es.chatMarkers = make([]models.ChatMarker, 0, len(doc.ChatStart))
	for _, rec := range doc.ChatStart {
		es.chatMarkers = append(es.chatMarkers, models.ChatMarker{
			VisitorID: rec.VisitorID,
			StartTime: parseTime(rec.StartTime),
		})
	}
}
