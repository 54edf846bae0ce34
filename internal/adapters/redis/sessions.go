package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"liok_hotels/internal/adapters/observability"
	"liok_hotels/internal/domain"
)

// SessionStore keeps sessions as JSON under session:<id>. Every save
// refreshes the expiry.
type SessionStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewSessionStore(c *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{c: c, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	b, err := s.c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("redis", "miss")
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	observability.ObserveSession("redis", "hit")
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	observability.ObserveSession("redis", "save")
	return s.c.Set(ctx, sessionKey(sess.ID), b, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	observability.ObserveSession("redis", "del")
	return s.c.Del(ctx, sessionKey(id)).Err()
}
