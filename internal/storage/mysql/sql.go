package mysql

// -----------------------------------------------------------------------------
// PROPERTIES
// -----------------------------------------------------------------------------

const propertyCols = `p.id, p.name, p.slug, p.overview, p.address, p.map_embed_code,
  p.whatsapp_number, p.contact_phone, p.cover_image, p.amenities_list, p.created_at`

const insertPropertySQL = `
INSERT INTO properties
  (name, slug, overview, address, map_embed_code, whatsapp_number, contact_phone, cover_image, amenities_list, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updatePropertySQL = `
UPDATE properties SET
  name            = ?,
  slug            = ?,
  overview        = ?,
  address         = ?,
  map_embed_code  = ?,
  whatsapp_number = ?,
  contact_phone   = ?,
  cover_image     = ?,
  amenities_list  = ?
WHERE id = ?
`

const propertySlugTakenSQL = `SELECT EXISTS(SELECT 1 FROM properties WHERE slug = ? AND id <> ?)`

// -----------------------------------------------------------------------------
// ROOMS & NEARBY
// -----------------------------------------------------------------------------

const roomCols = `r.id, r.property_id, r.name, r.description, r.price_per_night, r.max_occupancy, r.image`

const insertRoomSQL = `
INSERT INTO room_categories
  (property_id, name, description, price_per_night, max_occupancy, image)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE room_categories SET
  property_id     = ?,
  name            = ?,
  description     = ?,
  price_per_night = ?,
  max_occupancy   = ?,
  image           = ?
WHERE id = ?
`

const nearbyCols = `n.id, n.property_id, n.name, n.distance, n.description, n.image`

const insertNearbySQL = `
INSERT INTO nearby_locations
  (property_id, name, distance, description, image)
VALUES
  (?, ?, ?, ?, ?)
`

const updateNearbySQL = `
UPDATE nearby_locations SET
  property_id = ?,
  name        = ?,
  distance    = ?,
  description = ?,
  image       = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// CONTENT
// -----------------------------------------------------------------------------

const blogCols = `b.id, b.title, b.slug, b.description, b.image, b.created_at`

const insertBlogSQL = `
INSERT INTO blogs (title, slug, description, image, created_at)
VALUES (?, ?, ?, ?, ?)
`

const updateBlogSQL = `
UPDATE blogs SET
  title       = ?,
  slug        = ?,
  description = ?,
  image       = ?
WHERE id = ?
`

const blogSlugTakenSQL = `SELECT EXISTS(SELECT 1 FROM blogs WHERE slug = ? AND id <> ?)`

const testimonialCols = `t.id, t.name, t.review, t.image, t.created_at, t.updated_at`

const insertTestimonialSQL = `
INSERT INTO testimonials (name, review, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`

const updateTestimonialSQL = `
UPDATE testimonials SET
  name       = ?,
  review     = ?,
  image      = ?,
  updated_at = ?
WHERE id = ?
`

const categoryCols = `c.id, c.name, c.created_at`

const insertCategorySQL = `INSERT INTO categories (name, created_at) VALUES (?, ?)`

const updateCategorySQL = `UPDATE categories SET name = ? WHERE id = ?`

const galleryCols = `g.id, g.category_id, g.title, g.image, g.uploaded_at`

const insertGallerySQL = `
INSERT INTO gallery_images (category_id, title, image, uploaded_at)
VALUES (?, ?, ?, ?)
`

const updateGallerySQL = `
UPDATE gallery_images SET
  category_id = ?,
  title       = ?,
  image       = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// INQUIRIES
// -----------------------------------------------------------------------------

const contactCols = `m.id, m.first_name, m.last_name, m.phone, m.email, m.message, m.created_at`

const insertContactSQL = `
INSERT INTO contact_messages (first_name, last_name, phone, email, message, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateContactSQL = `
UPDATE contact_messages SET
  first_name = ?,
  last_name  = ?,
  phone      = ?,
  email      = ?,
  message    = ?
WHERE id = ?
`

// Bookings always join their property so lists can show its name.
const bookingCols = `bk.id, bk.property_id, p.name, bk.first_name, bk.last_name, bk.phone, bk.email,
  bk.room_category, bk.status, bk.check_in, bk.check_out, bk.guests, bk.message, bk.created_at`

const bookingFrom = `booking_inquiries bk JOIN properties p ON p.id = bk.property_id`

const insertBookingSQL = `
INSERT INTO booking_inquiries
  (property_id, first_name, last_name, phone, email, room_category, status, check_in, check_out, guests, message, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE booking_inquiries SET
  property_id   = ?,
  first_name    = ?,
  last_name     = ?,
  phone         = ?,
  email         = ?,
  room_category = ?,
  status        = ?,
  check_in      = ?,
  check_out     = ?,
  guests        = ?,
  message       = ?
WHERE id = ?
`

const updateBookingStatusSQL = `UPDATE booking_inquiries SET status = ? WHERE id = ?`

const countBookingsByStatusSQL = `SELECT COUNT(*) FROM booking_inquiries WHERE status = ?`

// Months without bookings produce no row.
const monthlyBookingsSQL = `
SELECT MONTH(created_at) AS m, COUNT(*) AS n
FROM booking_inquiries
WHERE created_at >= ? AND created_at < ?
GROUP BY m
ORDER BY m
`

const bookingStatusCountsSQL = `
SELECT status, COUNT(*) AS n
FROM booking_inquiries
GROUP BY status
ORDER BY status
`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const userCols = `id, username, password_hash, is_staff, is_active, created_at`

const getUserSQL = `SELECT ` + userCols + ` FROM users WHERE id = ?`

const getUserByNameSQL = `SELECT ` + userCols + ` FROM users WHERE username = ?`

const insertUserSQL = `
INSERT INTO users (username, password_hash, is_staff, is_active, created_at)
VALUES (?, ?, ?, ?, ?)
`

const updateUserSQL = `
UPDATE users SET
  username      = ?,
  password_hash = ?,
  is_staff      = ?,
  is_active     = ?
WHERE id = ?
`
