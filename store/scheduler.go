// api/store/scheduler.go
package store

import (
	"sync"
	"time"
)

// SaveScheduler debounces persistence: every Schedule call resets the
// timer, so the flush runs once things have been quiet for the full
// delay rather than on a fixed interval.
type SaveScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	flush func()
}

func NewSaveScheduler(delay time.Duration, flush func()) *SaveScheduler {
	return &SaveScheduler{delay: delay, flush: flush}
}

// Schedule arms the timer, cancelling any pending one.
func (s *SaveScheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.flush)
}

// FlushNow cancels any pending timer and runs the flush synchronously.
func (s *SaveScheduler) FlushNow() {
	s.Cancel()
	s.flush()
}

// Cancel drops any pending flush without running it.
func (s *SaveScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
