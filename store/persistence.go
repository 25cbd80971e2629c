// api/store/persistence.go
package store

import (
	"log"
	"time"

	"cristalclean/api/storage"
)

const saveDebounce = 5 * time.Second

// PersistenceBridge connects the event store to its JSON document.
// Saves are best effort: a failed write is logged and swallowed, the
// in-memory store stays authoritative for the running process.
type PersistenceBridge struct {
	files    *storage.Client
	name     string
	snapshot func() *AnalyticsDocument
	sched    *SaveScheduler
}

func NewPersistenceBridge(files *storage.Client, name string, snapshot func() *AnalyticsDocument) *PersistenceBridge {
	b := &PersistenceBridge{
		files:    files,
		name:     name,
		snapshot: snapshot,
	}
	b.sched = NewSaveScheduler(saveDebounce, b.SaveNow)
	return b
}

// Load reads the document; nil means no usable prior state.
func (b *PersistenceBridge) Load() *AnalyticsDocument {
	var doc AnalyticsDocument
	if !b.files.ReadJSON(b.name, &doc) {
		return nil
	}
	return &doc
}

// SaveNow snapshots the current store state and writes it. Writes that
// arrive while serializing are picked up by the next scheduled save.
func (b *PersistenceBridge) SaveNow() {
	doc := b.snapshot()
	if err := b.files.WriteJSON(b.name, doc); err != nil {
		log.Printf("Error saving %s (in-memory state kept): %v", b.name, err)
	}
}

// ScheduleSave coalesces bursts of writes into one save 5s after the
// last one.
func (b *PersistenceBridge) ScheduleSave() {
	b.sched.Schedule()
}

// Flush forces a synchronous save, used on shutdown.
func (b *PersistenceBridge) Flush() {
	b.sched.FlushNow()
}
