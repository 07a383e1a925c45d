package session

import (
	"context"
	"sync"
	"time"
)

// MemStore is the fallback session store used when Redis is not
// configured. Expiry is checked lazily on Get.
type MemStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
}

func NewMemStore(ttl time.Duration) *MemStore {
	return &MemStore{ttl: ttl, sessions: map[string]Session{}}
}

func (s *MemStore) Create(ctx context.Context, id, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = newSession(actorID, s.ttl)
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if time.Now().Unix() > sess.ExpiresAt {
		delete(s.sessions, id)
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemStore) RevokeAllForActor(ctx context.Context, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.ActorID == actorID {
			delete(s.sessions, id)
		}
	}
	return nil
}
