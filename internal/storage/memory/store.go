// Package memory keeps every record in process memory. It follows the same
// ordering, uniqueness and cascade rules as the MySQL schema and backs
// STORAGE=memory and the tests.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"liok_hotels/internal/domain"
)

var errForeignKey = errors.New("memory: foreign key constraint fails")

// DB owns all tables behind a single lock so cascades stay atomic.
type DB struct {
	mu sync.RWMutex

	properties   *store[domain.Property]
	rooms        *store[domain.RoomCategory]
	nearby       *store[domain.NearbyLocation]
	blogs        *store[domain.Blog]
	testimonials *store[domain.Testimonial]
	categories   *store[domain.Category]
	gallery      *store[domain.GalleryImage]
	contacts     *store[domain.ContactMessage]
	bookings     *store[domain.BookingInquiry]
	users        *store[domain.User]
}

// store is one table. Hooks run with db.mu held.
type store[T any] struct {
	db   *DB
	rows map[int64]T
	seq  int64

	id func(*T) *int64
	// less orders List; ties always fall back to id descending.
	less     func(a, b *T) int
	check    func(v *T) error
	onDelete func(id int64)
	decorate func(v *T)
}

func newStore[T any](db *DB, id func(*T) *int64, less func(a, b *T) int) *store[T] {
	return &store[T]{db: db, rows: map[int64]T{}, id: id, less: less}
}

func (s *store[T]) List(ctx context.Context) ([]T, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.listLocked(func(*T) bool { return true }), nil
}

func (s *store[T]) listLocked(keep func(*T) bool) []T {
	out := make([]T, 0, len(s.rows))
	for _, v := range s.rows {
		if keep(&v) {
			if s.decorate != nil {
				s.decorate(&v)
			}
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := s.less(&a, &b); c != 0 {
			return c
		}
		ia, ib := *s.id(&a), *s.id(&b)
		switch {
		case ia > ib:
			return -1
		case ia < ib:
			return 1
		}
		return 0
	})
	return out
}

func (s *store[T]) Get(ctx context.Context, id int64) (T, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.getLocked(id)
}

func (s *store[T]) getLocked(id int64) (T, error) {
	v, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	if s.decorate != nil {
		s.decorate(&v)
	}
	return v, nil
}

func (s *store[T]) Count(ctx context.Context) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *store[T]) Create(ctx context.Context, v *T) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	*s.id(v) = 0
	if s.check != nil {
		if err := s.check(v); err != nil {
			return err
		}
	}
	s.seq++
	*s.id(v) = s.seq
	s.rows[s.seq] = *v
	return nil
}

func (s *store[T]) Update(ctx context.Context, v *T) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.rows[*s.id(v)]; !ok {
		return domain.ErrNotFound
	}
	if s.check != nil {
		if err := s.check(v); err != nil {
			return err
		}
	}
	s.rows[*s.id(v)] = *v
	return nil
}

func (s *store[T]) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.deleteLocked(id)
	return nil
}

func (s *store[T]) deleteLocked(id int64) {
	if _, ok := s.rows[id]; !ok {
		return
	}
	delete(s.rows, id)
	if s.onDelete != nil {
		s.onDelete(id)
	}
}

// deleteWhere removes every row matching match, running cascades.
func (s *store[T]) deleteWhere(match func(*T) bool) {
	for id, v := range s.rows {
		if match(&v) {
			s.deleteLocked(id)
		}
	}
}

// exists reports whether any row other than self matches.
func (s *store[T]) exists(self int64, match func(*T) bool) bool {
	for id, v := range s.rows {
		if id != self && match(&v) {
			return true
		}
	}
	return false
}

func (s *store[T]) has(id int64) bool {
	_, ok := s.rows[id]
	return ok
}
