package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFile is the well-known name the session token is persisted under.
// An absent file means "not logged in".
const TokenFile = "admin_token"

// Session owns the bearer token. Many in-flight requests read it
// concurrently; only Login and Logout write it.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string
}

// NewSession restores a session from the token persisted in dir, if any.
func NewSession(dir string) *Session {
	s := &Session{path: filepath.Join(dir, TokenFile)}
	if data, err := os.ReadFile(s.path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// NewMemorySession returns a session that is not persisted anywhere.
func NewMemorySession() *Session {
	return &Session{}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path != "" {
		// Persistence is best effort; the in-memory token stays correct.
		_ = os.WriteFile(s.path, []byte(token), 0o600)
	}
}

func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path != "" {
		_ = os.Remove(s.path)
	}
}
