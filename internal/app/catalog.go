package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"liok_hotels/internal/domain"
)

// Upload folders, relative to the media root.
const (
	FolderPropertyCovers = "properties/covers"
	FolderRooms          = "properties/rooms"
	FolderNearby         = "properties/nearby"
	FolderBlogs          = "blogs"
	FolderTestimonials   = "testimonials"
	FolderGallery        = "gallery"
)

type CatalogService struct {
	properties domain.PropertyRepository
	rooms      domain.RoomRepository
	nearby     domain.NearbyRepository
	media      domain.MediaStore
	cache      domain.Cache
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewCatalogService wires the catalog. A nil cache disables caching of the
// navigation list.
func NewCatalogService(r domain.Repositories, m domain.MediaStore, c domain.Cache, ttl time.Duration) *CatalogService {
	if c == nil {
		c = noCache{}
	}
	return &CatalogService{
		properties: r.Properties, rooms: r.Rooms, nearby: r.Nearby,
		media: m, cache: c, cacheTTL: ttl, now: utcNow,
	}
}

const navCacheKey = "nav:properties"

type noCache struct{}

func (noCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, any, int) error    { return nil }
func (noCache) Del(context.Context, string) error              { return nil }

func utcNow() time.Time { return time.Now().UTC() }

type PropertyInput struct {
	Name           string         `form:"name" json:"name" validate:"required,max=200"`
	Slug           string         `form:"slug" json:"slug" validate:"max=255"`
	Overview       string         `form:"overview" json:"overview" validate:"required"`
	Address        string         `form:"address" json:"address" validate:"required,max=255"`
	MapEmbedCode   string         `form:"map_embed_code" json:"map_embed_code"`
	WhatsAppNumber string         `form:"whatsapp_number" json:"whatsapp_number" validate:"required,max=20"`
	ContactPhone   string         `form:"contact_phone" json:"contact_phone" validate:"max=20"`
	Amenities      string         `form:"amenities_list" json:"amenities_list" validate:"required"`
	CoverImage     *domain.Upload `form:"cover_image" json:"-"`
}

func PropertyInputFrom(p domain.Property) PropertyInput {
	return PropertyInput{
		Name: p.Name, Slug: p.Slug, Overview: p.Overview, Address: p.Address,
		MapEmbedCode: p.MapEmbedCode, WhatsAppNumber: p.WhatsAppNumber,
		ContactPhone: p.ContactPhone, Amenities: p.Amenities,
	}
}

// PropertyDetail is a property with everything its public page shows.
type PropertyDetail struct {
	Property  domain.Property         `json:"property"`
	Amenities []string                `json:"amenities"`
	Rooms     []domain.RoomCategory   `json:"rooms"`
	Nearby    []domain.NearbyLocation `json:"nearby_locations"`
}

type PropertyRooms struct {
	Property domain.Property       `json:"property"`
	Rooms    []domain.RoomCategory `json:"rooms"`
}

type PropertyNearby struct {
	Property domain.Property         `json:"property"`
	Nearby   []domain.NearbyLocation `json:"nearby_locations"`
}

// ---- properties ----

func (s *CatalogService) ListProperties(ctx context.Context, page string) (Page[domain.Property], error) {
	rows, err := s.properties.List(ctx)
	if err != nil {
		return Page[domain.Property]{}, err
	}
	return Paginate(rows, page, PropertiesPerPage), nil
}

// NavProperties lists every property by name for site navigation and form choices.
// Every public view carries it, so it is served from the cache when possible.
func (s *CatalogService) NavProperties(ctx context.Context) ([]domain.Property, error) {
	var nav []domain.Property
	if ok, _ := s.cache.Get(ctx, navCacheKey, &nav); ok {
		return nav, nil
	}
	nav, err := s.properties.ListByName(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, navCacheKey, nav, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Msg("nav cache set")
	}
	return nav, nil
}

func (s *CatalogService) dropNav(ctx context.Context) {
	if err := s.cache.Del(ctx, navCacheKey); err != nil {
		log.Warn().Err(err).Msg("nav cache invalidate")
	}
}

func (s *CatalogService) GetProperty(ctx context.Context, id int64) (domain.Property, error) {
	return s.properties.Get(ctx, id)
}

func (s *CatalogService) PropertyDetail(ctx context.Context, slug string) (PropertyDetail, error) {
	p, err := s.properties.GetBySlug(ctx, slug)
	if err != nil {
		return PropertyDetail{}, err
	}
	rooms, err := s.rooms.ListByProperty(ctx, p.ID)
	if err != nil {
		return PropertyDetail{}, err
	}
	nearby, err := s.nearby.ListByProperty(ctx, p.ID)
	if err != nil {
		return PropertyDetail{}, err
	}
	return PropertyDetail{Property: p, Amenities: p.AmenityList(), Rooms: rooms, Nearby: nearby}, nil
}

func (s *CatalogService) CreateProperty(ctx context.Context, in PropertyInput) (domain.Property, error) {
	fe, slug := s.checkProperty(ctx, &in, 0)
	if in.CoverImage == nil {
		fe.add("cover_image", msgRequired)
	}
	if err := invalid(fe); err != nil {
		return domain.Property{}, err
	}

	p := domain.Property{Slug: slug, CreatedAt: s.now()}
	applyProperty(&p, in)
	cover, err := s.media.Save(ctx, FolderPropertyCovers, in.CoverImage)
	if err != nil {
		return domain.Property{}, err
	}
	p.CoverImage = cover

	if err := s.properties.Create(ctx, &p); err != nil {
		return domain.Property{}, slugConflict(err, in.Slug)
	}
	s.dropNav(ctx)
	return p, nil
}

func (s *CatalogService) UpdateProperty(ctx context.Context, id int64, in PropertyInput) (domain.Property, error) {
	p, err := s.properties.Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = p.Slug // the slug is fixed once the property exists
	}
	fe, slug := s.checkProperty(ctx, &in, id)
	if err := invalid(fe); err != nil {
		return domain.Property{}, err
	}

	applyProperty(&p, in)
	p.Slug = slug
	if in.CoverImage != nil {
		cover, err := s.media.Save(ctx, FolderPropertyCovers, in.CoverImage)
		if err != nil {
			return domain.Property{}, err
		}
		p.CoverImage = cover
	}
	if err := s.properties.Update(ctx, &p); err != nil {
		return domain.Property{}, slugConflict(err, in.Slug)
	}
	s.dropNav(ctx)
	return p, nil
}

func (s *CatalogService) DeleteProperty(ctx context.Context, id int64) error {
	if _, err := s.properties.Get(ctx, id); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return err
	}
	s.dropNav(ctx)
	return nil
}

// checkProperty validates the input and resolves the slug it will be stored under.
func (s *CatalogService) checkProperty(ctx context.Context, in *PropertyInput, selfID int64) (FieldErrors, string) {
	trim(&in.Name, &in.Slug, &in.Overview, &in.Address, &in.MapEmbedCode,
		&in.WhatsAppNumber, &in.ContactPhone, &in.Amenities)
	fe := check(in)

	field, src := "name", in.Name
	if in.Slug != "" {
		field, src = "slug", in.Slug
	}
	if src == "" {
		return fe, ""
	}
	slug := Slugify(src)
	if slug == "" {
		fe.add(field, "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		return fe, ""
	}
	taken, err := s.properties.SlugTaken(ctx, slug, selfID)
	switch {
	case err != nil:
		fe.add("__all__", "Could not check the slug, please try again.")
	case taken:
		fe.add(field, "Property with this Slug already exists.")
	}
	return fe, slug
}

func applyProperty(p *domain.Property, in PropertyInput) {
	p.Name = in.Name
	p.Overview = in.Overview
	p.Address = in.Address
	p.MapEmbedCode = in.MapEmbedCode
	p.WhatsAppNumber = in.WhatsAppNumber
	p.ContactPhone = in.ContactPhone
	p.Amenities = in.Amenities
}

// slugConflict turns a unique-key race on insert into the same field error
// the pre-check would have produced.
func slugConflict(err error, suppliedSlug string) error {
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}
	field := "name"
	if suppliedSlug != "" {
		field = "slug"
	}
	return &ValidationError{Fields: FieldErrors{field: "Property with this Slug already exists."}}
}

// ---- room categories ----

type RoomInput struct {
	Property      string         `form:"property" json:"property" validate:"required"`
	Name          string         `form:"name" json:"name" validate:"required,max=100"`
	Description   string         `form:"description" json:"description"`
	PricePerNight string         `form:"price_per_night" json:"price_per_night" validate:"required"`
	MaxOccupancy  string         `form:"max_occupancy" json:"max_occupancy" validate:"required"`
	Image         *domain.Upload `form:"image" json:"-"`
}

func RoomInputFrom(r domain.RoomCategory) RoomInput {
	return RoomInput{
		Property: strconv.FormatInt(r.PropertyID, 10), Name: r.Name, Description: r.Description,
		PricePerNight: r.PricePerNight.String(), MaxOccupancy: strconv.Itoa(r.MaxOccupancy),
	}
}

// RoomGroups lists every property with its room categories.
func (s *CatalogService) RoomGroups(ctx context.Context) ([]PropertyRooms, error) {
	props, err := s.properties.ListByName(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	byProp := map[int64][]domain.RoomCategory{}
	for _, r := range rooms {
		byProp[r.PropertyID] = append(byProp[r.PropertyID], r)
	}
	out := make([]PropertyRooms, 0, len(props))
	for _, p := range props {
		rs := byProp[p.ID]
		if rs == nil {
			rs = []domain.RoomCategory{}
		}
		out = append(out, PropertyRooms{Property: p, Rooms: rs})
	}
	return out, nil
}

// PropertyRooms is the public room list of one property.
func (s *CatalogService) PropertyRooms(ctx context.Context, slug string) (PropertyRooms, error) {
	p, err := s.properties.GetBySlug(ctx, slug)
	if err != nil {
		return PropertyRooms{}, err
	}
	rooms, err := s.rooms.ListByProperty(ctx, p.ID)
	if err != nil {
		return PropertyRooms{}, err
	}
	return PropertyRooms{Property: p, Rooms: rooms}, nil
}

func (s *CatalogService) GetRoom(ctx context.Context, id int64) (domain.RoomCategory, error) {
	return s.rooms.Get(ctx, id)
}

func (s *CatalogService) CreateRoom(ctx context.Context, in RoomInput) (domain.RoomCategory, error) {
	var r domain.RoomCategory
	fe := s.checkRoom(ctx, &in, &r)
	if in.Image == nil {
		fe.add("image", msgRequired)
	}
	if err := invalid(fe); err != nil {
		return domain.RoomCategory{}, err
	}
	img, err := s.media.Save(ctx, FolderRooms, in.Image)
	if err != nil {
		return domain.RoomCategory{}, err
	}
	r.Image = img
	if err := s.rooms.Create(ctx, &r); err != nil {
		return domain.RoomCategory{}, err
	}
	return r, nil
}

func (s *CatalogService) UpdateRoom(ctx context.Context, id int64, in RoomInput) (domain.RoomCategory, error) {
	r, err := s.rooms.Get(ctx, id)
	if err != nil {
		return domain.RoomCategory{}, err
	}
	if err := invalid(s.checkRoom(ctx, &in, &r)); err != nil {
		return domain.RoomCategory{}, err
	}
	if in.Image != nil {
		img, err := s.media.Save(ctx, FolderRooms, in.Image)
		if err != nil {
			return domain.RoomCategory{}, err
		}
		r.Image = img
	}
	if err := s.rooms.Update(ctx, &r); err != nil {
		return domain.RoomCategory{}, err
	}
	return r, nil
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.rooms.Get(ctx, id); err != nil {
		return err
	}
	return s.rooms.Delete(ctx, id)
}

// checkRoom validates in and, when it is clean, copies it onto r.
func (s *CatalogService) checkRoom(ctx context.Context, in *RoomInput, r *domain.RoomCategory) FieldErrors {
	trim(&in.Property, &in.Name, &in.Description, &in.PricePerNight, &in.MaxOccupancy)
	fe := check(in)

	pid := s.resolveProperty(ctx, in.Property, fe)
	price, perr := domain.ParsePrice(in.PricePerNight)
	if in.PricePerNight != "" && perr != nil {
		fe.add("price_per_night", priceMessage(perr))
	}
	occ, oerr := strconv.Atoi(in.MaxOccupancy)
	if in.MaxOccupancy != "" && oerr != nil {
		fe.add("max_occupancy", "Enter a whole number.")
	}
	if len(fe) > 0 {
		return fe
	}
	r.PropertyID = pid
	r.Name = in.Name
	r.Description = in.Description
	r.PricePerNight = price
	r.MaxOccupancy = occ
	return fe
}

func priceMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPriceDigits):
		return "Ensure that there are no more than 10 digits in total."
	case errors.Is(err, domain.ErrPricePlaces):
		return "Ensure that there are no more than 2 decimal places."
	}
	return "Enter a number."
}

// resolveProperty parses a submitted property id and checks it exists.
func (s *CatalogService) resolveProperty(ctx context.Context, raw string, fe FieldErrors) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fe.add("property", msgChoice)
		return 0
	}
	if _, err := s.properties.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fe.add("property", msgChoice)
		} else {
			fe.add("__all__", "Could not load the property, please try again.")
		}
		return 0
	}
	return id
}

// ---- nearby locations ----

type NearbyInput struct {
	Property    string         `form:"property" json:"property" validate:"required"`
	Name        string         `form:"name" json:"name" validate:"required,max=200"`
	Distance    string         `form:"distance" json:"distance" validate:"max=50"`
	Description string         `form:"description" json:"description"`
	Image       *domain.Upload `form:"image" json:"-"`
}

func NearbyInputFrom(n domain.NearbyLocation) NearbyInput {
	return NearbyInput{
		Property: strconv.FormatInt(n.PropertyID, 10), Name: n.Name,
		Distance: n.Distance, Description: n.Description,
	}
}

func (s *CatalogService) NearbyGroups(ctx context.Context) ([]PropertyNearby, error) {
	props, err := s.properties.ListByName(ctx)
	if err != nil {
		return nil, err
	}
	locs, err := s.nearby.List(ctx)
	if err != nil {
		return nil, err
	}
	byProp := map[int64][]domain.NearbyLocation{}
	for _, l := range locs {
		byProp[l.PropertyID] = append(byProp[l.PropertyID], l)
	}
	out := make([]PropertyNearby, 0, len(props))
	for _, p := range props {
		ls := byProp[p.ID]
		if ls == nil {
			ls = []domain.NearbyLocation{}
		}
		out = append(out, PropertyNearby{Property: p, Nearby: ls})
	}
	return out, nil
}

func (s *CatalogService) GetNearby(ctx context.Context, id int64) (domain.NearbyLocation, error) {
	return s.nearby.Get(ctx, id)
}

func (s *CatalogService) CreateNearby(ctx context.Context, in NearbyInput) (domain.NearbyLocation, error) {
	var n domain.NearbyLocation
	if err := invalid(s.checkNearby(ctx, &in, &n)); err != nil {
		return domain.NearbyLocation{}, err
	}
	if err := s.saveNearbyImage(ctx, &n, in.Image); err != nil {
		return domain.NearbyLocation{}, err
	}
	if err := s.nearby.Create(ctx, &n); err != nil {
		return domain.NearbyLocation{}, err
	}
	return n, nil
}

func (s *CatalogService) UpdateNearby(ctx context.Context, id int64, in NearbyInput) (domain.NearbyLocation, error) {
	n, err := s.nearby.Get(ctx, id)
	if err != nil {
		return domain.NearbyLocation{}, err
	}
	if err := invalid(s.checkNearby(ctx, &in, &n)); err != nil {
		return domain.NearbyLocation{}, err
	}
	if err := s.saveNearbyImage(ctx, &n, in.Image); err != nil {
		return domain.NearbyLocation{}, err
	}
	if err := s.nearby.Update(ctx, &n); err != nil {
		return domain.NearbyLocation{}, err
	}
	return n, nil
}

func (s *CatalogService) DeleteNearby(ctx context.Context, id int64) error {
	if _, err := s.nearby.Get(ctx, id); err != nil {
		return err
	}
	return s.nearby.Delete(ctx, id)
}

func (s *CatalogService) checkNearby(ctx context.Context, in *NearbyInput, n *domain.NearbyLocation) FieldErrors {
	trim(&in.Property, &in.Name, &in.Distance, &in.Description)
	fe := check(in)
	pid := s.resolveProperty(ctx, in.Property, fe)
	if len(fe) > 0 {
		return fe
	}
	n.PropertyID = pid
	n.Name = in.Name
	n.Distance = in.Distance
	n.Description = in.Description
	return fe
}

func (s *CatalogService) saveNearbyImage(ctx context.Context, n *domain.NearbyLocation, u *domain.Upload) error {
	if u == nil {
		return nil
	}
	img, err := s.media.Save(ctx, FolderNearby, u)
	if err != nil {
		return err
	}
	n.Image = img
	return nil
}

// Slugify is re-exported so callers outside the domain share one rule.
func Slugify(s string) string { return domain.Slugify(s) }
