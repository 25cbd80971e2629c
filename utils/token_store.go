package utils

import (
	"sync"
	"time"
)

// TokenStore tracks live admin tokens in memory so logout can revoke a
// JWT before it expires. State is per-process; a restart logs every
// admin out, which is acceptable for a single-admin back-office.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token id -> expiry
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]time.Time)}
}

func (ts *TokenStore) Put(tokenID string, expires time.Time) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tokens[tokenID] = expires
}

func (ts *TokenStore) Valid(tokenID string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	exp, ok := ts.tokens[tokenID]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(ts.tokens, tokenID)
		return false
	}
	return true
}

func (ts *TokenStore) Revoke(tokenID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.tokens, tokenID)
}
