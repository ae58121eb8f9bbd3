// Package session maps opaque cookie tokens to shopper session IDs. The
// session ID keys both the in-memory cart store and its persisted snapshot.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultTTL = 30 * 24 * time.Hour

type meta struct {
	SessionID string
	ExpiresAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]meta
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]meta),
		ttl:      ttl,
	}
}

// Issue mints a new token and the session ID behind it.
func (m *Manager) Issue() (token, sessionID string, err error) {
	token, err = randomToken()
	if err != nil {
		return "", "", err
	}
	sessionID = uuid.NewString()

	m.mu.Lock()
	m.sessions[token] = meta{
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return token, sessionID, nil
}

// Resolve returns the session ID for a token, dropping expired entries.
func (m *Manager) Resolve(token string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(entry.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return "", false
	}
	return entry.SessionID, true
}

// TTLSeconds is the cookie max-age matching the session lifetime.
func (m *Manager) TTLSeconds() int {
	return int(m.ttl.Seconds())
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
