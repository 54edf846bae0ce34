package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"liok_hotels/internal/domain"
)

func newestFirst(a, b time.Time) int { return b.Compare(a) }

func New() *DB {
	db := &DB{}
	db.properties = newStore(db, func(p *domain.Property) *int64 { return &p.ID },
		func(a, b *domain.Property) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	db.rooms = newStore(db, func(r *domain.RoomCategory) *int64 { return &r.ID },
		func(a, b *domain.RoomCategory) int { return cmp.Compare(a.ID, b.ID) })
	db.nearby = newStore(db, func(n *domain.NearbyLocation) *int64 { return &n.ID },
		func(a, b *domain.NearbyLocation) int { return cmp.Compare(a.ID, b.ID) })
	db.blogs = newStore(db, func(b *domain.Blog) *int64 { return &b.ID },
		func(a, b *domain.Blog) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	db.testimonials = newStore(db, func(t *domain.Testimonial) *int64 { return &t.ID },
		func(a, b *domain.Testimonial) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	db.categories = newStore(db, func(c *domain.Category) *int64 { return &c.ID },
		func(a, b *domain.Category) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	db.gallery = newStore(db, func(g *domain.GalleryImage) *int64 { return &g.ID },
		func(a, b *domain.GalleryImage) int { return newestFirst(a.UploadedAt, b.UploadedAt) })
	db.contacts = newStore(db, func(c *domain.ContactMessage) *int64 { return &c.ID },
		func(a, b *domain.ContactMessage) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	db.bookings = newStore(db, func(b *domain.BookingInquiry) *int64 { return &b.ID },
		func(a, b *domain.BookingInquiry) int { return newestFirst(a.CreatedAt, b.CreatedAt) })
	db.users = newStore(db, func(u *domain.User) *int64 { return &u.ID },
		func(a, b *domain.User) int { return cmp.Compare(a.Username, b.Username) })

	db.properties.check = func(p *domain.Property) error {
		if db.properties.exists(p.ID, func(o *domain.Property) bool { return o.Slug == p.Slug }) {
			return domain.ErrConflict
		}
		return nil
	}
	db.properties.onDelete = func(id int64) {
		db.rooms.deleteWhere(func(r *domain.RoomCategory) bool { return r.PropertyID == id })
		db.nearby.deleteWhere(func(n *domain.NearbyLocation) bool { return n.PropertyID == id })
		db.bookings.deleteWhere(func(b *domain.BookingInquiry) bool { return b.PropertyID == id })
	}
	db.rooms.check = func(r *domain.RoomCategory) error { return db.requireProperty(r.PropertyID) }
	db.nearby.check = func(n *domain.NearbyLocation) error { return db.requireProperty(n.PropertyID) }
	db.bookings.check = func(b *domain.BookingInquiry) error {
		b.PropertyName = ""
		return db.requireProperty(b.PropertyID)
	}
	db.bookings.decorate = func(b *domain.BookingInquiry) {
		if p, ok := db.properties.rows[b.PropertyID]; ok {
			b.PropertyName = p.Name
		}
	}

	db.blogs.check = func(b *domain.Blog) error {
		if db.blogs.exists(b.ID, func(o *domain.Blog) bool { return o.Slug == b.Slug }) {
			return domain.ErrConflict
		}
		return nil
	}
	db.categories.check = func(c *domain.Category) error {
		if db.categories.exists(c.ID, func(o *domain.Category) bool { return strings.EqualFold(o.Name, c.Name) }) {
			return domain.ErrConflict
		}
		return nil
	}
	db.categories.onDelete = func(id int64) {
		db.gallery.deleteWhere(func(g *domain.GalleryImage) bool { return g.CategoryID == id })
	}
	db.gallery.check = func(g *domain.GalleryImage) error {
		if !db.categories.has(g.CategoryID) {
			return errForeignKey
		}
		return nil
	}
	db.users.check = func(u *domain.User) error {
		if db.users.exists(u.ID, func(o *domain.User) bool { return o.Username == u.Username }) {
			return domain.ErrConflict
		}
		return nil
	}
	return db
}

func (db *DB) requireProperty(id int64) error {
	if !db.properties.has(id) {
		return errForeignKey
	}
	return nil
}

// Repositories exposes the tables through the domain ports.
func (db *DB) Repositories() domain.Repositories {
	return domain.Repositories{
		Properties:   &PropertyRepo{db.properties},
		Rooms:        &RoomRepo{db.rooms},
		Nearby:       &NearbyRepo{db.nearby},
		Blogs:        &BlogRepo{db.blogs},
		Testimonials: &TestimonialRepo{db.testimonials},
		Categories:   &CategoryRepo{db.categories},
		Gallery:      &GalleryRepo{db.gallery},
		Contacts:     &ContactRepo{db.contacts},
		Bookings:     &BookingRepo{db.bookings},
		Users:        &UserRepo{db.users},
	}
}

type PropertyRepo struct{ *store[domain.Property] }

func (r *PropertyRepo) GetBySlug(ctx context.Context, slug string) (domain.Property, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.rows {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrNotFound
}

func (r *PropertyRepo) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.exists(exceptID, func(p *domain.Property) bool { return p.Slug == slug }), nil
}

func (r *PropertyRepo) ListByName(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := func(a, b domain.Property) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
	slices.SortFunc(rows, byName)
	return rows, nil
}

type RoomRepo struct{ *store[domain.RoomCategory] }

func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID int64) ([]domain.RoomCategory, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.listLocked(func(v *domain.RoomCategory) bool { return v.PropertyID == propertyID }), nil
}

type NearbyRepo struct{ *store[domain.NearbyLocation] }

func (r *NearbyRepo) ListByProperty(ctx context.Context, propertyID int64) ([]domain.NearbyLocation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.listLocked(func(v *domain.NearbyLocation) bool { return v.PropertyID == propertyID }), nil
}

type BlogRepo struct{ *store[domain.Blog] }

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, b := range r.rows {
		if b.Slug == slug {
			return b, nil
		}
	}
	return domain.Blog{}, domain.ErrNotFound
}

func (r *BlogRepo) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.exists(exceptID, func(b *domain.Blog) bool { return b.Slug == slug }), nil
}

type TestimonialRepo struct{ *store[domain.Testimonial] }

type CategoryRepo struct{ *store[domain.Category] }

type GalleryRepo struct{ *store[domain.GalleryImage] }

func (r *GalleryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.GalleryImage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.listLocked(func(g *domain.GalleryImage) bool { return g.CategoryID == categoryID }), nil
}

type ContactRepo struct{ *store[domain.ContactMessage] }

func (r *ContactRepo) Recent(ctx context.Context, n int) ([]domain.ContactMessage, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return head(rows, n), nil
}

type BookingRepo struct{ *store[domain.BookingInquiry] }

func (r *BookingRepo) Recent(ctx context.Context, n int) ([]domain.BookingInquiry, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return head(rows, n), nil
}

func (r *BookingRepo) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for _, b := range r.rows {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) MonthlyCounts(ctx context.Context, from, to time.Time) ([]domain.MonthCount, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	type ym struct {
		y int
		m time.Month
	}
	counts := map[ym]int64{}
	for _, b := range r.rows {
		t := b.CreatedAt.UTC()
		if t.Before(from) || !t.Before(to) {
			continue
		}
		counts[ym{t.Year(), t.Month()}]++
	}
	keys := make([]ym, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ym) int {
		if c := cmp.Compare(a.y, b.y); c != 0 {
			return c
		}
		return cmp.Compare(a.m, b.m)
	})
	out := make([]domain.MonthCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.MonthCount{Month: k.m, Count: counts[k]})
	}
	return out, nil
}

func (r *BookingRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	counts := map[domain.BookingStatus]int64{}
	for _, b := range r.rows {
		counts[b.Status]++
	}
	out := make([]domain.StatusCount, 0, len(counts))
	for st, n := range counts {
		out = append(out, domain.StatusCount{Status: st, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.StatusCount) int { return cmp.Compare(a.Status, b.Status) })
	return out, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	r.rows[id] = b
	return nil
}

type UserRepo struct{ *store[domain.User] }

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
