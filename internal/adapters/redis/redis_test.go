package redisad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "liok_hotels/internal/adapters/redis"
	"liok_hotels/internal/domain"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redisad.SessionStore, *redisad.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return mr, redisad.NewSessionStore(c, time.Hour), redisad.NewCache(c)
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	mr, store, _ := newRedis(t)
	ctx := context.Background()

	sess := domain.Session{
		ID: "abc", UserID: 7, Username: "staff", IsStaff: true,
		Flashes: []domain.Flash{{Level: "success", Text: "Welcome back, staff!"}},
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("session:abc") {
		t.Fatalf("expected session:abc key")
	}
	if ttl := mr.TTL("session:abc"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 7 || !got.Authenticated() || len(got.Flashes) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSessionStore_Expires(t *testing.T) {
	mr, store, _ := newRedis(t)
	ctx := context.Background()
	if err := store.Save(ctx, domain.Session{ID: "old"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "old"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want expired session, got %v", err)
	}
}

func TestCache_MissThenHit(t *testing.T) {
	_, _, cache := newRedis(t)
	ctx := context.Background()

	var got []string
	if ok, err := cache.Get(ctx, "nav", &got); ok || err != nil {
		t.Fatalf("first get should miss: ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "nav", []string{"a", "b"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, err := cache.Get(ctx, "nav", &got); !ok || err != nil || len(got) != 2 {
		t.Fatalf("second get should hit: ok=%v err=%v got=%v", ok, err, got)
	}
	if err := cache.Del(ctx, "nav"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := cache.Get(ctx, "nav", &got); ok {
		t.Fatalf("expected miss after del")
	}
}
