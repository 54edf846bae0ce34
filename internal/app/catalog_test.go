package app_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/storage/memory"
)

func newCatalog(t *testing.T) (*app.CatalogService, domain.Repositories, *fakeCache) {
	t.Helper()
	repos := memory.New().Repositories()
	cache := &fakeCache{}
	return app.NewCatalogService(repos, &fakeMedia{}, cache, 10*time.Minute), repos, cache
}

func propertyInput(name string) app.PropertyInput {
	return app.PropertyInput{
		Name: name, Overview: "Quiet hills.", Address: "1 Hill Road",
		WhatsAppNumber: "+911234567890", Amenities: "Pool, Wi-Fi,, Spa ",
		CoverImage: upload("cover.jpg"),
	}
}

func fieldErr(t *testing.T, err error, field string) string {
	t.Helper()
	ve, ok := app.AsValidation(err)
	if !ok {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	msg, ok := ve.Fields[field]
	if !ok {
		t.Fatalf("no error on %q: %v", field, ve.Fields)
	}
	return msg
}

func TestCreateProperty_SlugFromName(t *testing.T) {
	cat, _, _ := newCatalog(t)
	ctx := context.Background()

	p, err := cat.CreateProperty(ctx, propertyInput("Liok Hill Resort"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "liok-hill-resort" {
		t.Fatalf("slug = %q", p.Slug)
	}
	if p.CoverImage != app.FolderPropertyCovers+"/cover.jpg" {
		t.Fatalf("cover = %q", p.CoverImage)
	}

	_, err = cat.CreateProperty(ctx, propertyInput("Liok  Hill  Resort!"))
	if msg := fieldErr(t, err, "name"); msg != "Property with this Slug already exists." {
		t.Fatalf("collision message = %q", msg)
	}

	in := propertyInput("Liok Hill Resort")
	in.Slug = "hill"
	if _, err := cat.CreateProperty(ctx, in); err != nil {
		t.Fatalf("explicit slug should avoid the collision: %v", err)
	}
}

func TestCreateProperty_RequiresCover(t *testing.T) {
	cat, repos, _ := newCatalog(t)
	in := propertyInput("Liok Resort")
	in.CoverImage = nil
	in.Address = ""
	_, err := cat.CreateProperty(context.Background(), in)
	fieldErr(t, err, "cover_image")
	fieldErr(t, err, "address")
	if n, _ := repos.Properties.Count(context.Background()); n != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestUpdateProperty_KeepsSlug(t *testing.T) {
	cat, _, _ := newCatalog(t)
	ctx := context.Background()
	p, err := cat.CreateProperty(ctx, propertyInput("Liok Resort"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	in := app.PropertyInputFrom(p)
	in.Name = "Liok Grand Resort"
	got, err := cat.UpdateProperty(ctx, p.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Slug != "liok-resort" || got.CoverImage != p.CoverImage {
		t.Fatalf("slug or cover changed: %+v", got)
	}
	if _, err := cat.UpdateProperty(ctx, 999, in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestNavProperties_CacheMissThenHit(t *testing.T) {
	cat, repos, cache := newCatalog(t)
	ctx := context.Background()
	if _, err := cat.CreateProperty(ctx, propertyInput("Zeta")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cat.CreateProperty(ctx, propertyInput("Alpha")); err != nil {
		t.Fatalf("create: %v", err)
	}

	nav, err := cat.NavProperties(ctx)
	if err != nil {
		t.Fatalf("nav: %v", err)
	}
	if len(nav) != 2 || nav[0].Name != "Alpha" {
		t.Fatalf("want name order, got %+v", nav)
	}

	// Written behind the service's back: the cached list must still be served.
	extra := domain.Property{Name: "Beta", Slug: "beta"}
	if err := repos.Properties.Create(ctx, &extra); err != nil {
		t.Fatalf("seed: %v", err)
	}
	nav, _ = cat.NavProperties(ctx)
	if len(nav) != 2 || cache.hits != 1 {
		t.Fatalf("expected cached list, got %d items, %d hits", len(nav), cache.hits)
	}

	if err := cat.DeleteProperty(ctx, extra.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := cache.store["nav:properties"]; ok {
		t.Fatalf("delete should invalidate the navigation cache")
	}
	nav, _ = cat.NavProperties(ctx)
	if len(nav) != 2 || cache.hits != 1 {
		t.Fatalf("expected a fresh read after invalidation, got %d items, %d hits", len(nav), cache.hits)
	}
}

func TestRooms_ValidationAndGrouping(t *testing.T) {
	cat, _, _ := newCatalog(t)
	ctx := context.Background()
	p, _ := cat.CreateProperty(ctx, propertyInput("Liok Resort"))
	pid := strconv.FormatInt(p.ID, 10)

	_, err := cat.CreateRoom(ctx, app.RoomInput{Property: pid, Name: "Deluxe", PricePerNight: "12.345", MaxOccupancy: "2", Image: upload("r.jpg")})
	if msg := fieldErr(t, err, "price_per_night"); msg != "Ensure that there are no more than 2 decimal places." {
		t.Fatalf("price message = %q", msg)
	}
	_, err = cat.CreateRoom(ctx, app.RoomInput{Property: "999", Name: "Deluxe", PricePerNight: "10", MaxOccupancy: "2", Image: upload("r.jpg")})
	fieldErr(t, err, "property")

	r, err := cat.CreateRoom(ctx, app.RoomInput{Property: pid, Name: "Deluxe", PricePerNight: "4500.50", MaxOccupancy: "3", Image: upload("r.jpg")})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if r.PricePerNight.String() != "4500.50" || r.MaxOccupancy != 3 {
		t.Fatalf("unexpected room: %+v", r)
	}

	groups, err := cat.RoomGroups(ctx)
	if err != nil || len(groups) != 1 || len(groups[0].Rooms) != 1 {
		t.Fatalf("groups: %+v err %v", groups, err)
	}
	rooms, err := cat.PropertyRooms(ctx, "liok-resort")
	if err != nil || len(rooms.Rooms) != 1 {
		t.Fatalf("property rooms: %+v err %v", rooms, err)
	}
}

func TestDeleteProperty_CascadesThroughService(t *testing.T) {
	cat, repos, _ := newCatalog(t)
	ctx := context.Background()
	p, _ := cat.CreateProperty(ctx, propertyInput("Liok Resort"))
	pid := strconv.FormatInt(p.ID, 10)
	if _, err := cat.CreateRoom(ctx, app.RoomInput{Property: pid, Name: "Deluxe", PricePerNight: "10", MaxOccupancy: "2", Image: upload("r.jpg")}); err != nil {
		t.Fatalf("room: %v", err)
	}
	if _, err := cat.CreateNearby(ctx, app.NearbyInput{Property: pid, Name: "Falls", Distance: "2 km"}); err != nil {
		t.Fatalf("nearby: %v", err)
	}

	if err := cat.DeleteProperty(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := repos.Rooms.Count(ctx); n != 0 {
		t.Fatalf("rooms left: %d", n)
	}
	if n, _ := repos.Nearby.Count(ctx); n != 0 {
		t.Fatalf("nearby left: %d", n)
	}
	if err := cat.DeleteProperty(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestPropertyDetail(t *testing.T) {
	cat, _, _ := newCatalog(t)
	ctx := context.Background()
	if _, err := cat.CreateProperty(ctx, propertyInput("Liok Resort")); err != nil {
		t.Fatalf("create: %v", err)
	}
	d, err := cat.PropertyDetail(ctx, "liok-resort")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	want := []string{"Pool", "Wi-Fi", "Spa"}
	if len(d.Amenities) != len(want) {
		t.Fatalf("amenities = %v", d.Amenities)
	}
	for i := range want {
		if d.Amenities[i] != want[i] {
			t.Fatalf("amenities = %v", d.Amenities)
		}
	}
	if _, err := cat.PropertyDetail(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
