package service

import (
	"errors"
	"sync"

	"github.com/boazcstrike/silayan-laundry/models"
)

// ErrSessionBusy is returned when an action is attempted while another
// operation is still in flight for the same session
var ErrSessionBusy = errors.New("another operation is in progress")

// SessionState is the orchestration state observed by the UI layer
type SessionState string

const (
	StateIdle            SessionState = "idle"
	StateGeneratingImage SessionState = "generatingImage"
	StateUploading       SessionState = "uploading"
)

// Session holds one user's tally state: a Count Store, the current
// orchestration state and the single user-visible error string
type Session struct {
	ID    string
	Store *CountStore

	mu        sync.Mutex
	state     SessionState
	lastError string
}

// State returns the current orchestration state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the current user-visible error string, if any
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// begin moves the session from idle into the given state and clears the
// previous error. Actions are mutually exclusive: a non-idle session
// rejects new actions.
func (s *Session) begin(next SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrSessionBusy
	}
	s.lastError = ""
	s.state = next
	return nil
}

// advance moves between non-idle states (generatingImage -> uploading)
func (s *Session) advance(next SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
}

// finish returns the session to idle, setting the user-visible error
// string (empty on success)
func (s *Session) finish(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.lastError = errMsg
}

// SessionManager hands out per-session state. Only the session map
// itself is guarded; each session's data is owned by its user.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  *models.Catalog
}

// NewSessionManager creates an empty session manager for the given catalog
func NewSessionManager(catalog *models.Catalog) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
	}
}

// Get returns the session for the given ID, creating it on first use
// with all predefined counts at 0
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess
	}
	sess := &Session{
		ID:    id,
		Store: NewCountStore(m.catalog),
		state: StateIdle,
	}
	m.sessions[id] = sess
	return sess
}
