package session

import (
	"errors"
	"sync"
	"time"

	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/llm"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// Store is an in-memory session store with TTL-based expiry. All
// mutations go through the store so locking stays in one place; Get
// returns a copy of the session, never a shared pointer.
type Store struct {
	mu       sync.RWMutex
	sessions map[common.SessionID]*Session
	ttl      time.Duration
	clock    common.Clock
	logger   *zap.Logger

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// NewStore creates a new in-memory session store.
func NewStore(cfg config.SessionConfig, clock common.Clock, logger *zap.Logger) *Store {
	return &Store{
		sessions:        make(map[common.SessionID]*Session),
		ttl:             time.Duration(cfg.TTL) * time.Second,
		clock:           clock,
		logger:          logger,
		cleanupInterval: time.Duration(cfg.CleanupInterval) * time.Second,
		stopCleanup:     make(chan struct{}),
	}
}

// Create creates and stores a new session with the default provider
// selection.
func (s *Store) Create(provider llm.Kind, model string) *Session {
	now := s.clock.Now()
	sess := &Session{
		ID:              common.SessionID(common.NewID()),
		Provider:        provider,
		Model:           model,
		FeedbackHistory: make([]string, 0),
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("Session created", zap.String("sessionID", string(sess.ID)))
	return copySession(sess)
}

// Get retrieves a copy of the session.
func (s *Store) Get(id common.SessionID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if sess.IsExpired(s.clock.Now()) {
		return nil, ErrSessionExpired
	}

	return copySession(sess), nil
}

// SetModel replaces the session's current model wholesale.
func (s *Store) SetModel(id common.SessionID, bpmnXML string) (*Session, error) {
	return s.update(id, func(sess *Session) {
		sess.CurrentModelXML = bpmnXML
	})
}

// AddFeedback appends one refinement round to the feedback history.
func (s *Store) AddFeedback(id common.SessionID, feedback string) (*Session, error) {
	return s.update(id, func(sess *Session) {
		sess.FeedbackHistory = append(sess.FeedbackHistory, feedback)
	})
}

// SetProvider records the provider and model selection for the session.
func (s *Store) SetProvider(id common.SessionID, provider llm.Kind, model string) (*Session, error) {
	return s.update(id, func(sess *Session) {
		sess.Provider = provider
		sess.Model = model
	})
}

// Reset clears the current model and feedback history, returning the
// session to the empty state.
func (s *Store) Reset(id common.SessionID) (*Session, error) {
	return s.update(id, func(sess *Session) {
		sess.CurrentModelXML = ""
		sess.FeedbackHistory = make([]string, 0)
	})
}

// Delete removes a session from the store.
func (s *Store) Delete(id common.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (s *Store) Cleanup() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartCleanupLoop runs Cleanup on the configured interval until
// StopCleanupLoop is called.
func (s *Store) StartCleanupLoop() {
	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := s.Cleanup(); removed > 0 {
					s.logger.Info("Expired sessions removed", zap.Int("count", removed))
				}
			case <-s.stopCleanup:
				return
			}
		}
	}()
}

// StopCleanupLoop stops the background cleanup loop.
func (s *Store) StopCleanupLoop() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *Store) update(id common.SessionID, mutate func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if sess.IsExpired(s.clock.Now()) {
		return nil, ErrSessionExpired
	}

	mutate(sess)
	return copySession(sess), nil
}

func copySession(sess *Session) *Session {
	cp := *sess
	cp.FeedbackHistory = make([]string, len(sess.FeedbackHistory))
	copy(cp.FeedbackHistory, sess.FeedbackHistory)
	return &cp
}
