// api/handlers/track_handlers.go
package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cristalclean/api/leads"
	"cristalclean/api/models"
	"cristalclean/api/store"
	"cristalclean/api/utils"
)

// visitGap separates page views into distinct visits when estimating
// time on site.
const visitGap = 30 * time.Minute

type TrackingHandlers struct {
	Events *store.EventStore
	Clicks *store.ContactClickLedger
	Chats  *store.ChatStore
}

func NewTrackingHandlers(events *store.EventStore, clicks *store.ContactClickLedger, chats *store.ChatStore) *TrackingHandlers {
	return &TrackingHandlers{Events: events, Clicks: clicks, Chats: chats}
}

// Track is the single ingestion endpoint. The JSON body is
// discriminated by its "type" field; unknown types are acknowledged as
// a no-op so newer tracking snippets keep working against older
// servers.
func (h *TrackingHandlers) Track(c *gin.Context) {
	var ev models.TrackEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		log.Printf("Error binding track event JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ip := utils.ClientIP(c.Request)
	now := time.Now()

	switch ev.Type {
	case "pageview":
		if ev.VisitorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visitorId is required"})
			return
		}
		visitorID, sessionID := h.Events.RecordPageview(ev, ip, now)
		resp := gin.H{"success": true, "visitorId": visitorID}
		if sessionID != "" {
			resp["sessionId"] = sessionID
		}
		c.JSON(http.StatusOK, resp)

	case "session_end":
		if ev.SessionID != "" {
			h.Events.EndSession(ev.SessionID, now)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case "chat_start":
		if ev.VisitorID != "" {
			h.Events.RecordChatStart(ev.VisitorID, now)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case "contact_click":
		if ev.VisitorID == "" || ev.ContactType == "" || ev.Value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visitorId, contactType and value are required"})
			return
		}
		h.Clicks.Append(ev.VisitorID, ev.ContactType, ev.Value, ip, now)
		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetInsights returns the dashboard rollup.
func (h *TrackingHandlers) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, h.Events.ComputeInsights(time.Now()))
}

// GetVisitorDetail returns the full profile for one client visitor id:
// history, contact clicks, transcripts and the signals derived from
// them.
func (h *TrackingHandlers) GetVisitorDetail(c *gin.Context) {
	visitorID := c.Param("id")
	visitor, ok := h.Events.Visitor(visitorID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor not found"})
		return
	}

	pageViews := h.Events.PageViewsByVisitor(visitorID)
	sessions := h.Chats.ByVisitor(visitorID)

	detail := models.VisitorDetail{
		Visitor:         visitor,
		PageViews:       pageViews,
		ContactClicks:   h.Clicks.ByVisitor(visitorID),
		ChatSessions:    sessions,
		BookingDetected: bookingDetected(sessions),
		TimeOnSiteSec:   timeOnSite(pageViews),
	}
	for _, s := range sessions {
		if detail.UserName == "" {
			detail.UserName = s.UserName
		}
		if detail.UserPhone == "" {
			detail.UserPhone = s.UserPhone
		}
	}
	if detail.UserPhone == "" {
		detail.UserPhone = leads.ExtractPhone(allMessages(sessions))
	}

	c.JSON(http.StatusOK, detail)
}

// GetLeads returns the merged, scored lead list with summary counts.
func (h *TrackingHandlers) GetLeads(c *gin.Context) {
	list := leads.BuildLeads(h.Chats.All())
	if list == nil {
		list = []models.Lead{}
	}
	c.JSON(http.StatusOK, gin.H{
		"leads":   list,
		"summary": leads.Summarize(list),
	})
}

// bookingDetected flags visitors whose chats look like an appointment
// request, either by declared intent or by message wording.
func bookingDetected(sessions []models.ChatSession) bool {
	keywords := []string{"rendez-vous", "rdv", "randevu", "rendezvous"}
	for _, s := range sessions {
		intent := strings.ToLower(s.Intent)
		if intent == "appointment" || intent == "randevu" {
			return true
		}
		for _, m := range s.Messages {
			if m.Sender != "user" {
				continue
			}
			text := strings.ToLower(m.Message)
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					return true
				}
			}
		}
	}
	return false
}

// timeOnSite approximates total seconds on site by grouping page views
// into visits separated by gaps over 30 minutes and summing each
// visit's span.
func timeOnSite(pageViews []models.PageView) int64 {
	if len(pageViews) < 2 {
		return 0
	}
	sorted := append([]models.PageView(nil), pageViews...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var total time.Duration
	visitStart := sorted[0].Timestamp
	prev := sorted[0].Timestamp
	for _, pv := range sorted[1:] {
		if pv.Timestamp.Sub(prev) > visitGap {
			total += prev.Sub(visitStart)
			visitStart = pv.Timestamp
		}
		prev = pv.Timestamp
	}
	total += prev.Sub(visitStart)
	return int64(total / time.Second)
}

func allMessages(sessions []models.ChatSession) []models.ChatMessage {
	var out []models.ChatMessage
	for _, s := range sessions {
		out = append(out, s.Messages...)
	}
	return out
}
