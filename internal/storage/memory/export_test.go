package memory

import "time"

func (s *SessionStore) SetClock(now func() time.Time) { s.now = now }

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
