package domain

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict") // unique key already taken
)

// Store is the CRUD contract every record type shares. List returns all rows
// in the record's fixed display order; paging happens above it.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
}

type PropertyRepository interface {
	Store[Property]
	GetBySlug(ctx context.Context, slug string) (Property, error)
	SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error)
	ListByName(ctx context.Context) ([]Property, error)
}

type RoomRepository interface {
	Store[RoomCategory]
	ListByProperty(ctx context.Context, propertyID int64) ([]RoomCategory, error)
}

type NearbyRepository interface {
	Store[NearbyLocation]
	ListByProperty(ctx context.Context, propertyID int64) ([]NearbyLocation, error)
}

type BlogRepository interface {
	Store[Blog]
	GetBySlug(ctx context.Context, slug string) (Blog, error)
	SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error)
}

type TestimonialRepository interface {
	Store[Testimonial]
}

type CategoryRepository interface {
	Store[Category]
}

type GalleryRepository interface {
	Store[GalleryImage]
	ListByCategory(ctx context.Context, categoryID int64) ([]GalleryImage, error)
}

type ContactRepository interface {
	Store[ContactMessage]
	Recent(ctx context.Context, n int) ([]ContactMessage, error)
}

type BookingRepository interface {
	Store[BookingInquiry]
	Recent(ctx context.Context, n int) ([]BookingInquiry, error)
	CountByStatus(ctx context.Context, status BookingStatus) (int64, error)
	// MonthlyCounts buckets bookings created in [from, to) by month,
	// ascending; months without bookings are absent.
	MonthlyCounts(ctx context.Context, from, to time.Time) ([]MonthCount, error)
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	UpdateStatus(ctx context.Context, id int64, status BookingStatus) error
}

type UserRepository interface {
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// Repositories bundles one implementation of every record store.
type Repositories struct {
	Properties   PropertyRepository
	Rooms        RoomRepository
	Nearby       NearbyRepository
	Blogs        BlogRepository
	Testimonials TestimonialRepository
	Categories   CategoryRepository
	Gallery      GalleryRepository
	Contacts     ContactRepository
	Bookings     BookingRepository
	Users        UserRepository
}

// Cache holds JSON-serialisable read models for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

// Upload is one file taken from a form submission.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

type MediaStore interface {
	// Save writes the upload under folder and returns the stored relative path.
	Save(ctx context.Context, folder string, u *Upload) (string, error)
}
