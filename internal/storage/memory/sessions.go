package memory

import (
	"context"
	"sync"
	"time"

	"liok_hotels/internal/adapters/observability"
	"liok_hotels/internal/domain"
)

// SessionStore is the in-process counterpart of the Redis session store.
type SessionStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	data      map[string]sessionEntry
	nextSweep time.Time
}

// sweepEvery bounds how often Save walks the map for expired entries.
const sweepEvery = time.Minute

type sessionEntry struct {
	sess    domain.Session
	expires time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, data: map[string]sessionEntry{}}
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[id]
	if !ok || !s.now().Before(e.expires) {
		delete(s.data, id)
		observability.ObserveSession("memory", "miss")
		return domain.Session{}, domain.ErrNotFound
	}
	observability.ObserveSession("memory", "hit")
	e.sess.Flashes = append([]domain.Flash(nil), e.sess.Flashes...)
	return e.sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(sweepEvery)
	}
	sess.Flashes = append([]domain.Flash(nil), sess.Flashes...)
	s.data[sess.ID] = sessionEntry{sess: sess, expires: now.Add(s.ttl)}
	observability.ObserveSession("memory", "save")
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	observability.ObserveSession("memory", "del")
	return nil
}

func (s *SessionStore) sweep(now time.Time) {
	for id, e := range s.data {
		if !now.Before(e.expires) {
			delete(s.data, id)
		}
	}
}
