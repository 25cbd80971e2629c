// api/store/contact_ledger.go
package store

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"cristalclean/api/models"
	"cristalclean/api/storage"
)

const (
	contactClickCap  = 1000
	contactClickKeep = 500
)

type ledgerDocument struct {
	Version int                  `json:"version"`
	Clicks  []ContactClickRecord `json:"clicks"`
}

// ContactClickLedger records every contact-affordance click (email,
// phone, whatsapp). Unlike page views it is persisted synchronously on
// each append; the mutex sequences concurrent writers so the full-file
// rewrites never interleave.
type ContactClickLedger struct {
	mu     sync.Mutex
	files  *storage.Client
	clicks []models.ContactClick
	loaded bool
}

func NewContactClickLedger(files *storage.Client) *ContactClickLedger {
	return &ContactClickLedger{files: files}
}

// Load reads the ledger from disk, once per process. Later calls are
// no-ops; external file changes need a restart to be picked up.
func (l *ContactClickLedger) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return
	}
	l.loaded = true

	var doc ledgerDocument
	if !l.files.ReadJSON(contactClicksFile, &doc) {
		return
	}
	l.clicks = make([]models.ContactClick, 0, len(doc.Clicks))
	for _, rec := range doc.Clicks {
		l.clicks = append(l.clicks, models.ContactClick{
			ID:          rec.ID,
			VisitorID:   rec.VisitorID,
			ContactType: rec.ContactType,
			Value:       rec.Value,
			Timestamp:   parseTime(rec.Timestamp),
			IP:          rec.IP,
		})
	}
}

// Append records a click and immediately persists the whole ledger.
// The contactType is stored as sent, unknown values included.
func (l *ContactClickLedger) Append(visitorID, contactType, value, ip string, now time.Time) models.ContactClick {
	l.mu.Lock()
	defer l.mu.Unlock()

	click := models.ContactClick{
		ID:          uuid.New().String(),
		VisitorID:   visitorID,
		ContactType: contactType,
		Value:       value,
		Timestamp:   now,
		IP:          ip,
	}
	l.clicks = append(l.clicks, click)
	if len(l.clicks) > contactClickCap {
		trimmed := make([]models.ContactClick, contactClickKeep)
		copy(trimmed, l.clicks[len(l.clicks)-contactClickKeep:])
		l.clicks = trimmed
	}

	if err := l.files.WriteJSON(contactClicksFile, l.document()); err != nil {
		log.Printf("Error persisting contact clicks (in-memory state kept): %v", err)
	}
	return click
}

// ByVisitor returns the visitor's clicks in ledger order.
func (l *ContactClickLedger) ByVisitor(visitorID string) []models.ContactClick {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.ContactClick
	for _, c := range l.clicks {
		if c.VisitorID == visitorID {
			out = append(out, c)
		}
	}
	return out
}

func (l *ContactClickLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clicks)
}

// document converts to storage form. Caller holds the mutex.
func (l *ContactClickLedger) document() ledgerDocument {
	doc := ledgerDocument{Version: documentVersion, Clicks: make([]ContactClickRecord, 0, len(l.clicks))}
	for _, c := range l.clicks {
		doc.Clicks = append(doc.Clicks, ContactClickRecord{
			ID:          c.ID,
			VisitorID:   c.VisitorID,
			ContactType: c.ContactType,
			Value:       c.Value,
			Timestamp:   formatTime(c.Timestamp),
			IP:          c.IP,
		})
	}
	return doc
}
