// api/store/chat_store.go
package store

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cristalclean/api/models"
	"cristalclean/api/storage"
)

type chatDocument struct {
	Version  int                            `json:"version"`
	Sessions map[string]*models.ChatSession `json:"sessions"`
}

// ChatStore holds the full chatbot transcripts, keyed by session id.
// The chat widget upserts sessions here; the lead report and the
// per-visitor detail read them back.
type ChatStore struct {
	mu       sync.Mutex
	files    *storage.Client
	sessions map[string]*models.ChatSession
	order    []string // session ids, stable iteration order for reports
	loaded   bool
}

func NewChatStore(files *storage.Client) *ChatStore {
	return &ChatStore{files: files, sessions: make(map[string]*models.ChatSession)}
}

// Load reads the transcript document once per process.
func (cs *ChatStore) Load() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.loaded {
		return
	}
	cs.loaded = true

	var doc chatDocument
	if !cs.files.ReadJSON(chatSessionsFile, &doc) {
		return
	}
	cs.sessions = doc.Sessions
	if cs.sessions == nil {
		cs.sessions = make(map[string]*models.ChatSession)
	}
	cs.order = cs.order[:0]
	for id := range cs.sessions {
		cs.order = append(cs.order, id)
	}
	sort.SliceStable(cs.order, func(i, j int) bool {
		return cs.sessions[cs.order[i]].StartTime.Before(cs.sessions[cs.order[j]].StartTime)
	})
}

// Upsert stores a transcript, replacing any prior record with the same
// session id, and persists the document.
func (cs *ChatStore) Upsert(s models.ChatSession) models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.StartTime.IsZero() {
		s.StartTime = time.Now()
	}
	if s.MessageCount == 0 {
		s.MessageCount = len(s.Messages)
	}
	if _, seen := cs.sessions[s.ID]; !seen {
		cs.order = append(cs.order, s.ID)
	}
	cs.sessions[s.ID] = &s

	if err := cs.files.WriteJSON(chatSessionsFile, cs.document()); err != nil {
		log.Printf("Error persisting chat sessions (in-memory state kept): %v", err)
	}
	return s
}

// All returns every transcript in stable (first-seen) order.
func (cs *ChatStore) All() []models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]models.ChatSession, 0, len(cs.order))
	for _, id := range cs.order {
		out = append(out, *cs.sessions[id])
	}
	return out
}

// ByVisitor returns the visitor's transcripts in stable order.
func (cs *ChatStore) ByVisitor(visitorID string) []models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	var out []models.ChatSession
	for _, id := range cs.order {
		if cs.sessions[id].VisitorID == visitorID {
			out = append(out, *cs.sessions[id])
		}
	}
	return out
}

func (cs *ChatStore) document() chatDocument {
	return chatDocument{Version: documentVersion, Sessions: cs.sessions}
}
