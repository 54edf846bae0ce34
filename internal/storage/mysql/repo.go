package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"liok_hotels/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Repositories() domain.Repositories {
	return domain.Repositories{
		Properties:   &PropertyRepo{r.properties()},
		Rooms:        &RoomRepo{r.rooms()},
		Nearby:       &NearbyRepo{r.nearby()},
		Blogs:        &BlogRepo{r.blogs()},
		Testimonials: &TestimonialRepo{r.testimonials()},
		Categories:   &CategoryRepo{r.categories()},
		Gallery:      &GalleryRepo{r.gallery()},
		Contacts:     &ContactRepo{r.contacts()},
		Bookings:     &BookingRepo{r.bookings()},
		Users:        &UserRepo{db: r.db},
	}
}

// ---- properties ----

type PropertyRepo struct{ *table[domain.Property] }

func (r *Repo) properties() *table[domain.Property] {
	return &table[domain.Property]{
		db: r.db, base: "properties", from: "properties p", cols: propertyCols,
		idCol: "p.id", order: "p.created_at DESC, p.id DESC",
		insertSQL: insertPropertySQL, updateSQL: updatePropertySQL,
		insertArgs: func(p *domain.Property) []any {
			return []any{p.Name, p.Slug, p.Overview, p.Address, p.MapEmbedCode,
				p.WhatsAppNumber, p.ContactPhone, p.CoverImage, p.Amenities, p.CreatedAt}
		},
		updateArgs: func(p *domain.Property) []any {
			return []any{p.Name, p.Slug, p.Overview, p.Address, p.MapEmbedCode,
				p.WhatsAppNumber, p.ContactPhone, p.CoverImage, p.Amenities, p.ID}
		},
		scan: func(s scanner, p *domain.Property) error {
			return s.Scan(&p.ID, &p.Name, &p.Slug, &p.Overview, &p.Address, &p.MapEmbedCode,
				&p.WhatsAppNumber, &p.ContactPhone, &p.CoverImage, &p.Amenities, &p.CreatedAt)
		},
		id: func(p *domain.Property) *int64 { return &p.ID },
	}
}

func (r *PropertyRepo) GetBySlug(ctx context.Context, slug string) (domain.Property, error) {
	rows, err := r.query(ctx, "p.slug = ?", slug)
	if err != nil {
		return domain.Property{}, err
	}
	if len(rows) == 0 {
		return domain.Property{}, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r *PropertyRepo) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, propertySlugTakenSQL, slug, exceptID).Scan(&taken)
	return taken, err
}

func (r *PropertyRepo) ListByName(ctx context.Context) ([]domain.Property, error) {
	byName := *r.table
	byName.order = "p.name, p.id"
	return byName.query(ctx, "")
}

// ---- rooms ----

type RoomRepo struct{ *table[domain.RoomCategory] }

func (r *Repo) rooms() *table[domain.RoomCategory] {
	return &table[domain.RoomCategory]{
		db: r.db, base: "room_categories", from: "room_categories r", cols: roomCols,
		idCol: "r.id", order: "r.id",
		insertSQL: insertRoomSQL, updateSQL: updateRoomSQL,
		insertArgs: func(v *domain.RoomCategory) []any {
			return []any{v.PropertyID, v.Name, v.Description, v.PricePerNight, v.MaxOccupancy, v.Image}
		},
		updateArgs: func(v *domain.RoomCategory) []any {
			return []any{v.PropertyID, v.Name, v.Description, v.PricePerNight, v.MaxOccupancy, v.Image, v.ID}
		},
		scan: func(s scanner, v *domain.RoomCategory) error {
			return s.Scan(&v.ID, &v.PropertyID, &v.Name, &v.Description, &v.PricePerNight, &v.MaxOccupancy, &v.Image)
		},
		id: func(v *domain.RoomCategory) *int64 { return &v.ID },
	}
}

func (r *RoomRepo) ListByProperty(ctx context.Context, propertyID int64) ([]domain.RoomCategory, error) {
	return r.query(ctx, "r.property_id = ?", propertyID)
}

// ---- nearby ----

type NearbyRepo struct{ *table[domain.NearbyLocation] }

func (r *Repo) nearby() *table[domain.NearbyLocation] {
	return &table[domain.NearbyLocation]{
		db: r.db, base: "nearby_locations", from: "nearby_locations n", cols: nearbyCols,
		idCol: "n.id", order: "n.id",
		insertSQL: insertNearbySQL, updateSQL: updateNearbySQL,
		insertArgs: func(v *domain.NearbyLocation) []any {
			return []any{v.PropertyID, v.Name, v.Distance, v.Description, nullStr(v.Image)}
		},
		updateArgs: func(v *domain.NearbyLocation) []any {
			return []any{v.PropertyID, v.Name, v.Distance, v.Description, nullStr(v.Image), v.ID}
		},
		scan: func(s scanner, v *domain.NearbyLocation) error {
			var img sql.NullString
			if err := s.Scan(&v.ID, &v.PropertyID, &v.Name, &v.Distance, &v.Description, &img); err != nil {
				return err
			}
			v.Image = img.String
			return nil
		},
		id: func(v *domain.NearbyLocation) *int64 { return &v.ID },
	}
}

func (r *NearbyRepo) ListByProperty(ctx context.Context, propertyID int64) ([]domain.NearbyLocation, error) {
	return r.query(ctx, "n.property_id = ?", propertyID)
}

// ---- blogs ----

type BlogRepo struct{ *table[domain.Blog] }

func (r *Repo) blogs() *table[domain.Blog] {
	return &table[domain.Blog]{
		db: r.db, base: "blogs", from: "blogs b", cols: blogCols,
		idCol: "b.id", order: "b.created_at DESC, b.id DESC",
		insertSQL: insertBlogSQL, updateSQL: updateBlogSQL,
		insertArgs: func(v *domain.Blog) []any {
			return []any{v.Title, v.Slug, v.Description, v.Image, v.CreatedAt}
		},
		updateArgs: func(v *domain.Blog) []any {
			return []any{v.Title, v.Slug, v.Description, v.Image, v.ID}
		},
		scan: func(s scanner, v *domain.Blog) error {
			return s.Scan(&v.ID, &v.Title, &v.Slug, &v.Description, &v.Image, &v.CreatedAt)
		},
		id: func(v *domain.Blog) *int64 { return &v.ID },
	}
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	rows, err := r.query(ctx, "b.slug = ?", slug)
	if err != nil {
		return domain.Blog{}, err
	}
	if len(rows) == 0 {
		return domain.Blog{}, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r *BlogRepo) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, blogSlugTakenSQL, slug, exceptID).Scan(&taken)
	return taken, err
}

// ---- testimonials ----

type TestimonialRepo struct{ *table[domain.Testimonial] }

func (r *Repo) testimonials() *table[domain.Testimonial] {
	return &table[domain.Testimonial]{
		db: r.db, base: "testimonials", from: "testimonials t", cols: testimonialCols,
		idCol: "t.id", order: "LOWER(t.name), t.id DESC",
		insertSQL: insertTestimonialSQL, updateSQL: updateTestimonialSQL,
		insertArgs: func(v *domain.Testimonial) []any {
			return []any{v.Name, v.Review, nullStr(v.Image), v.CreatedAt, v.UpdatedAt}
		},
		updateArgs: func(v *domain.Testimonial) []any {
			return []any{v.Name, v.Review, nullStr(v.Image), v.UpdatedAt, v.ID}
		},
		scan: func(s scanner, v *domain.Testimonial) error {
			var img sql.NullString
			if err := s.Scan(&v.ID, &v.Name, &v.Review, &img, &v.CreatedAt, &v.UpdatedAt); err != nil {
				return err
			}
			v.Image = img.String
			return nil
		},
		id: func(v *domain.Testimonial) *int64 { return &v.ID },
	}
}

// ---- gallery ----

type CategoryRepo struct{ *table[domain.Category] }

func (r *Repo) categories() *table[domain.Category] {
	return &table[domain.Category]{
		db: r.db, base: "categories", from: "categories c", cols: categoryCols,
		idCol: "c.id", order: "c.created_at DESC, c.id DESC",
		insertSQL: insertCategorySQL, updateSQL: updateCategorySQL,
		insertArgs: func(v *domain.Category) []any { return []any{v.Name, v.CreatedAt} },
		updateArgs: func(v *domain.Category) []any { return []any{v.Name, v.ID} },
		scan: func(s scanner, v *domain.Category) error {
			return s.Scan(&v.ID, &v.Name, &v.CreatedAt)
		},
		id: func(v *domain.Category) *int64 { return &v.ID },
	}
}

type GalleryRepo struct{ *table[domain.GalleryImage] }

func (r *Repo) gallery() *table[domain.GalleryImage] {
	return &table[domain.GalleryImage]{
		db: r.db, base: "gallery_images", from: "gallery_images g", cols: galleryCols,
		idCol: "g.id", order: "g.uploaded_at DESC, g.id DESC",
		insertSQL: insertGallerySQL, updateSQL: updateGallerySQL,
		insertArgs: func(v *domain.GalleryImage) []any {
			return []any{v.CategoryID, nullStr(v.Title), v.Image, v.UploadedAt}
		},
		updateArgs: func(v *domain.GalleryImage) []any {
			return []any{v.CategoryID, nullStr(v.Title), v.Image, v.ID}
		},
		scan: func(s scanner, v *domain.GalleryImage) error {
			var title sql.NullString
			if err := s.Scan(&v.ID, &v.CategoryID, &title, &v.Image, &v.UploadedAt); err != nil {
				return err
			}
			v.Title = title.String
			return nil
		},
		id: func(v *domain.GalleryImage) *int64 { return &v.ID },
	}
}

func (r *GalleryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.GalleryImage, error) {
	return r.query(ctx, "g.category_id = ?", categoryID)
}

// ---- contacts ----

type ContactRepo struct{ *table[domain.ContactMessage] }

func (r *Repo) contacts() *table[domain.ContactMessage] {
	return &table[domain.ContactMessage]{
		db: r.db, base: "contact_messages", from: "contact_messages m", cols: contactCols,
		idCol: "m.id", order: "m.created_at DESC, m.id DESC",
		insertSQL: insertContactSQL, updateSQL: updateContactSQL,
		insertArgs: func(v *domain.ContactMessage) []any {
			return []any{v.FirstName, v.LastName, v.Phone, nullStr(v.Email), v.Message, v.CreatedAt}
		},
		updateArgs: func(v *domain.ContactMessage) []any {
			return []any{v.FirstName, v.LastName, v.Phone, nullStr(v.Email), v.Message, v.ID}
		},
		scan: func(s scanner, v *domain.ContactMessage) error {
			var email sql.NullString
			if err := s.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Phone, &email, &v.Message, &v.CreatedAt); err != nil {
				return err
			}
			v.Email = email.String
			return nil
		},
		id: func(v *domain.ContactMessage) *int64 { return &v.ID },
	}
}

func (r *ContactRepo) Recent(ctx context.Context, n int) ([]domain.ContactMessage, error) {
	return r.queryN(ctx, "", n)
}

// ---- bookings ----

type BookingRepo struct{ *table[domain.BookingInquiry] }

func (r *Repo) bookings() *table[domain.BookingInquiry] {
	return &table[domain.BookingInquiry]{
		db: r.db, base: "booking_inquiries", from: bookingFrom, cols: bookingCols,
		idCol: "bk.id", order: "bk.created_at DESC, bk.id DESC",
		insertSQL: insertBookingSQL, updateSQL: updateBookingSQL,
		insertArgs: func(v *domain.BookingInquiry) []any {
			return []any{v.PropertyID, v.FirstName, v.LastName, v.Phone, nullStr(v.Email),
				nullStr(v.RoomCategory), string(v.Status), v.CheckIn, v.CheckOut, v.Guests, v.Message, v.CreatedAt}
		},
		updateArgs: func(v *domain.BookingInquiry) []any {
			return []any{v.PropertyID, v.FirstName, v.LastName, v.Phone, nullStr(v.Email),
				nullStr(v.RoomCategory), string(v.Status), v.CheckIn, v.CheckOut, v.Guests, v.Message, v.ID}
		},
		scan: func(s scanner, v *domain.BookingInquiry) error {
			var email, room sql.NullString
			if err := s.Scan(&v.ID, &v.PropertyID, &v.PropertyName, &v.FirstName, &v.LastName, &v.Phone,
				&email, &room, &v.Status, &v.CheckIn, &v.CheckOut, &v.Guests, &v.Message, &v.CreatedAt); err != nil {
				return err
			}
			v.Email = email.String
			v.RoomCategory = room.String
			return nil
		},
		id: func(v *domain.BookingInquiry) *int64 { return &v.ID },
	}
}

func (r *BookingRepo) Recent(ctx context.Context, n int) ([]domain.BookingInquiry, error) {
	return r.queryN(ctx, "", n)
}

func (r *BookingRepo) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countBookingsByStatusSQL, string(status)).Scan(&n)
	return n, err
}

func (r *BookingRepo) MonthlyCounts(ctx context.Context, from, to time.Time) ([]domain.MonthCount, error) {
	rows, err := r.db.QueryContext(ctx, monthlyBookingsSQL, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.MonthCount{}
	for rows.Next() {
		var m int
		var c domain.MonthCount
		if err := rows.Scan(&m, &c.Count); err != nil {
			return nil, err
		}
		c.Month = time.Month(m)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *BookingRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, bookingStatusCountsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.StatusCount{}
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	if err != nil {
		return err
	}
	return r.requireRow(ctx, res, id)
}

// ---- users ----

type UserRepo struct{ db *sql.DB }

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsStaff, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

func (r *UserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByNameSQL, username))
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.IsStaff, u.IsActive, u.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, updateUserSQL, u.Username, u.PasswordHash, u.IsStaff, u.IsActive, u.ID)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.Get(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}
