// api/store/event_store.go
package store

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cristalclean/api/models"
	"cristalclean/api/storage"
)

const (
	pageViewCap    = 10000
	pageViewKeep   = 5000
	chatMarkerCap  = 1000
	chatMarkerKeep = 500
)

// EventStore is the authoritative runtime state for site analytics.
// Visitors and sessions are keyed by the client-supplied ids (that key
// is the identity contract with the tracking snippet, the internal
// record ids are informational). All mutations take the store mutex so
// two concurrent pageviews for a new visitor cannot create two records.
type EventStore struct {
	mu sync.Mutex

	visitors     map[string]*models.Visitor
	visitorOrder []string // insertion order, keeps aggregations deterministic
	sessions     map[string]*models.Session
	pageViews    []models.PageView
	chatMarkers  []models.ChatMarker

	bridge *PersistenceBridge
}

func NewEventStore(files *storage.Client) *EventStore {
	es := &EventStore{
		visitors: make(map[string]*models.Visitor),
		sessions: make(map[string]*models.Session),
	}
	es.bridge = NewPersistenceBridge(files, analyticsFile, es.Snapshot)
	return es
}

// Load restores prior state from disk. Called once at startup, before
// the store is handed to any handler.
func (es *EventStore) Load() {
	doc := es.bridge.Load()
	if doc == nil {
		return
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	es.restore(doc)
}

// Close flushes any pending snapshot. Called on shutdown.
func (es *EventStore) Close() {
	es.bridge.Flush()
}

// RecordPageview creates or updates the visitor and session for the
// event, appends a page view and schedules a save. It returns the
// internal visitor and session record ids.
func (es *EventStore) RecordPageview(ev models.TrackEvent, ip string, now time.Time) (visitorID, sessionID string) {
	es.mu.Lock()

	v, ok := es.visitors[ev.VisitorID]
	if !ok {
		v = &models.Visitor{
			ID:             uuid.New().String(),
			IP:             ip,
			Device:         orUnknown(ev.Device),
			Browser:        orUnknown(ev.Browser),
			BrowserVersion: orUnknown(ev.BrowserVersion),
			OS:             orUnknown(ev.OS),
			ScreenWidth:    ev.ScreenWidth,
			ScreenHeight:   ev.ScreenHeight,
			Language:       ev.Language,
			Referrer:       ev.Referrer,
			FirstVisit:     now,
			LastVisit:      now,
			TotalVisits:    1,
		}
		es.visitors[ev.VisitorID] = v
		es.visitorOrder = append(es.visitorOrder, ev.VisitorID)
	} else {
		v.LastVisit = now
		v.TotalVisits++
		// Never overwrite a known IP with "unknown".
		if ip != "" && ip != "unknown" {
			v.IP = ip
		}
	}
	visitorID = v.ID

	if ev.SessionID != "" {
		s, ok := es.sessions[ev.SessionID]
		if !ok {
			s = &models.Session{
				ID:        uuid.New().String(),
				VisitorID: ev.VisitorID,
				StartTime: now,
				IsActive:  true,
			}
			es.sessions[ev.SessionID] = s
		}
		sessionID = s.ID
	}

	es.pageViews = append(es.pageViews, models.PageView{
		ID:        uuid.New().String(),
		VisitorID: ev.VisitorID,
		Path:      ev.Path,
		Timestamp: now,
	})
	if len(es.pageViews) > pageViewCap {
		trimmed := make([]models.PageView, pageViewKeep)
		copy(trimmed, es.pageViews[len(es.pageViews)-pageViewKeep:])
		es.pageViews = trimmed
	}

	es.mu.Unlock()
	es.bridge.ScheduleSave()
	return visitorID, sessionID
}

// EndSession closes the session: duration in whole seconds, set once.
// Unknown ids are silently ignored.
func (es *EventStore) EndSession(sessionID string, now time.Time) {
	es.mu.Lock()
	s, ok := es.sessions[sessionID]
	if ok && s.EndTime == nil {
		d := int64(now.Sub(s.StartTime) / time.Second)
		s.EndTime = &now
		s.Duration = &d
		s.IsActive = false
	}
	es.mu.Unlock()
	if ok {
		es.bridge.ScheduleSave()
	}
}

// RecordChatStart flags the visitor as having chatted and appends a
// chat marker. A chat from an unknown visitor still gets its marker,
// only the flag update is dropped.
func (es *EventStore) RecordChatStart(visitorID string, now time.Time) {
	es.mu.Lock()
	if v, ok := es.visitors[visitorID]; ok {
		v.HasChatted = true
	}
	es.chatMarkers = append(es.chatMarkers, models.ChatMarker{
		VisitorID: visitorID,
		StartTime: now,
	})
	if len(es.chatMarkers) > chatMarkerCap {
		trimmed := make([]models.ChatMarker, chatMarkerKeep)
		copy(trimmed, es.chatMarkers[len(es.chatMarkers)-chatMarkerKeep:])
		es.chatMarkers = trimmed
	}
	es.mu.Unlock()
	es.bridge.ScheduleSave()
}

// Visitor returns the visitor record for a client visitor id.
func (es *EventStore) Visitor(visitorID string) (models.Visitor, bool) {
	es.mu.Lock()
	defer es.mu.Unlock()
	v, ok := es.visitors[visitorID]
	if !ok {
		return models.Visitor{}, false
	}
	return *v, true
}

// PageViewsByVisitor returns the visitor's page views in record order.
func (es *EventStore) PageViewsByVisitor(visitorID string) []models.PageView {
	es.mu.Lock()
	defer es.mu.Unlock()
	var out []models.PageView
	for _, pv := range es.pageViews {
		if pv.VisitorID == visitorID {
			out = append(out, pv)
		}
	}
	return out
}

// ComputeInsights builds the dashboard rollup. Pure read, no mutation.
func (es *EventStore) ComputeInsights(now time.Time) models.Insights {
	es.mu.Lock()
	defer es.mu.Unlock()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	var todayCount, yesterdayCount, chatted int
	browserCounts := make(map[string]int)
	deviceCounts := make(map[string]int)
	var browserOrder, deviceOrder []string

	for _, key := range es.visitorOrder {
		v := es.visitors[key]
		if !v.LastVisit.Before(today) {
			todayCount++
		} else if !v.LastVisit.Before(yesterday) {
			yesterdayCount++
		}
		if v.HasChatted {
			chatted++
		}
		if _, seen := browserCounts[v.Browser]; !seen {
			browserOrder = append(browserOrder, v.Browser)
		}
		browserCounts[v.Browser]++
		if _, seen := deviceCounts[v.Device]; !seen {
			deviceOrder = append(deviceOrder, v.Device)
		}
		deviceCounts[v.Device]++
	}

	growth := 0
	switch {
	case yesterdayCount > 0:
		growth = int(math.Round(float64(todayCount-yesterdayCount) / float64(yesterdayCount) * 100))
	case todayCount > 0:
		growth = 100
	}

	pathCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	var pathOrder []string
	var hourOrder []int
	contactAttempts := 0
	for _, pv := range es.pageViews {
		if _, seen := pathCounts[pv.Path]; !seen {
			pathOrder = append(pathOrder, pv.Path)
		}
		pathCounts[pv.Path]++
		h := pv.Timestamp.Hour()
		if _, seen := hourCounts[h]; !seen {
			hourOrder = append(hourOrder, h)
		}
		hourCounts[h]++
		if strings.Contains(pv.Path, "/contact") {
			contactAttempts++
		}
	}

	topPages := rankPaths(pathCounts, pathOrder, 5)
	browsers := rankNames(browserCounts, browserOrder, 5)
	devices := rankNames(deviceCounts, deviceOrder, 0)

	// Peak hour over all history; ties go to the hour seen first.
	peakHour := 0
	peakCount := 0
	for _, h := range hourOrder {
		if hourCounts[h] > peakCount {
			peakHour = h
			peakCount = hourCounts[h]
		}
	}

	funnel := models.Funnel{
		Visitors:        len(es.visitors),
		ChatbotUsers:    chatted,
		ContactAttempts: contactAttempts,
	}
	if funnel.Visitors > 0 {
		funnel.ConversionRate = int(math.Round(float64(chatted) / float64(funnel.Visitors) * 100))
	}

	ins := models.Insights{
		TodayVisitors:     todayCount,
		YesterdayVisitors: yesterdayCount,
		GrowthPercent:     growth,
		TopPages:          topPages,
		Browsers:          browsers,
		Devices:           devices,
		PeakHour:          peakHour,
		Funnel:            funnel,
	}
	ins.Highlights = buildHighlights(ins)
	return ins
}

func rankPaths(counts map[string]int, order []string, limit int) []models.PathCount {
	out := make([]models.PathCount, 0, len(order))
	for _, p := range order {
		out = append(out, models.PathCount{Path: p, Count: counts[p]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rankNames(counts map[string]int, order []string, limit int) []models.NameCount {
	out := make([]models.NameCount, 0, len(order))
	for _, n := range order {
		out = append(out, models.NameCount{Name: n, Count: counts[n]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
