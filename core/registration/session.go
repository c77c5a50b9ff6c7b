package registration

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found or expired")

// Session binds a wizard to an opaque client token. One session per browser
// tab; losing the token loses all progress, which is by design.
type Session struct {
	Token    string
	Wizard   *Wizard
	LastSeen time.Time

	mu sync.Mutex
}

// Do runs fn with the session's wizard while holding the session lock.
func (s *Session) Do(fn func(w *Wizard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Wizard)
}

// SessionStore holds live wizard sessions in memory. Nothing is persisted;
// expired sessions are purged lazily on access.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	nowFunc func() time.Time // mockable
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		nowFunc:  time.Now,
	}
}

// Start creates a session for the given wizard and returns it.
func (store *SessionStore) Start(w *Wizard) *Session {
	sess := &Session{
		Token:    uuid.New().String(),
		Wizard:   w,
		LastSeen: store.nowFunc(),
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.purge()
	store.sessions[sess.Token] = sess
	return sess
}

// Get resolves a session token, refreshing its last-seen timestamp.
func (store *SessionStore) Get(token string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.purge()

	sess, ok := store.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.LastSeen = store.nowFunc()
	return sess, nil
}

// Drop removes a session explicitly.
func (store *SessionStore) Drop(token string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, token)
}

// purge evicts expired sessions; callers must hold the write lock.
func (store *SessionStore) purge() {
	if store.ttl <= 0 {
		return
	}
	deadline := store.nowFunc().Add(-store.ttl)
	for token, sess := range store.sessions {
		if sess.LastSeen.Before(deadline) {
			delete(store.sessions, token)
		}
	}
}
