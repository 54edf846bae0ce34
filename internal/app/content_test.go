package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/storage/memory"
)

func newContent(t *testing.T) (*app.ContentService, domain.Repositories) {
	t.Helper()
	repos := memory.New().Repositories()
	return app.NewContentService(repos, &fakeMedia{}), repos
}

func TestCreateBlog_SlugSuffixes(t *testing.T) {
	svc, _ := newContent(t)
	ctx := context.Background()

	want := []string{"monsoon-in-liok", "monsoon-in-liok-1", "monsoon-in-liok-2"}
	for _, w := range want {
		b, err := svc.CreateBlog(ctx, app.BlogInput{Title: "Monsoon in Liok", Description: "Rain.", Image: upload("b.jpg")})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if b.Slug != w {
			t.Fatalf("slug = %q, want %q", b.Slug, w)
		}
	}
}

func TestCreateBlog_FillsGapInSuffixes(t *testing.T) {
	svc, repos := newContent(t)
	ctx := context.Background()
	for _, slug := range []string{"news", "news-2"} {
		if err := repos.Blogs.Create(ctx, &domain.Blog{Title: "News", Slug: slug}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	b, err := svc.CreateBlog(ctx, app.BlogInput{Title: "News", Description: "x", Image: upload("b.jpg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Slug != "news-1" {
		t.Fatalf("slug = %q, want news-1", b.Slug)
	}
}

func TestUpdateBlog_SlugIsStable(t *testing.T) {
	svc, _ := newContent(t)
	ctx := context.Background()
	b, _ := svc.CreateBlog(ctx, app.BlogInput{Title: "Old title", Description: "x", Image: upload("b.jpg")})
	got, err := svc.UpdateBlog(ctx, b.ID, app.BlogInput{Title: "New title", Description: "y"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Slug != "old-title" || got.Title != "New title" || got.Image != b.Image {
		t.Fatalf("unexpected blog: %+v", got)
	}
}

func TestCreateBlog_TitleWithoutLetters(t *testing.T) {
	svc, _ := newContent(t)
	_, err := svc.CreateBlog(context.Background(), app.BlogInput{Title: "!!!", Description: "x", Image: upload("b.jpg")})
	fieldErr(t, err, "title")
}

func TestCategoryNameIsUnique(t *testing.T) {
	svc, _ := newContent(t)
	ctx := context.Background()
	if _, err := svc.CreateCategory(ctx, app.CategoryInput{Name: "Rooms"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateCategory(ctx, app.CategoryInput{Name: "Rooms"})
	if msg := fieldErr(t, err, "name"); msg != "Category with this Name already exists." {
		t.Fatalf("message = %q", msg)
	}
}

func TestAddImages(t *testing.T) {
	svc, repos := newContent(t)
	ctx := context.Background()
	c, _ := svc.CreateCategory(ctx, app.CategoryInput{Name: "Pool"})
	cid := c.ID

	_, err := svc.AddImages(ctx, app.GalleryUpload{Category: itoa(cid)})
	if msg := fieldErr(t, err, "images"); msg != "Choose at least one image." {
		t.Fatalf("message = %q", msg)
	}
	_, err = svc.AddImages(ctx, app.GalleryUpload{Category: "42", Images: []*domain.Upload{upload("a.jpg")}})
	fieldErr(t, err, "category")

	n, err := svc.AddImages(ctx, app.GalleryUpload{
		Category: itoa(cid),
		Images:   []*domain.Upload{upload("sunset.jpg"), upload(`C:\photos\deck.png`)},
	})
	if err != nil || n != 2 {
		t.Fatalf("add: n=%d err=%v", n, err)
	}
	imgs, _ := repos.Gallery.ListByCategory(ctx, cid)
	titles := map[string]bool{}
	for _, img := range imgs {
		titles[img.Title] = true
	}
	if !titles["sunset.jpg"] || len(imgs) != 2 {
		t.Fatalf("titles = %v", titles)
	}
}

func TestAddImages_FailureKeepsEarlierImages(t *testing.T) {
	repos := memory.New().Repositories()
	svc := app.NewContentService(repos, &fakeMedia{failOn: "broken.jpg"})
	ctx := context.Background()
	c, _ := svc.CreateCategory(ctx, app.CategoryInput{Name: "Spa"})

	n, err := svc.AddImages(ctx, app.GalleryUpload{
		Category: itoa(c.ID),
		Images:   []*domain.Upload{upload("one.jpg"), upload("broken.jpg"), upload("three.jpg")},
	})
	if !errors.Is(err, errDiskFull) || n != 1 {
		t.Fatalf("n=%d err=%v; want 1 saved then the storage error", n, err)
	}
	imgs, _ := repos.Gallery.ListByCategory(ctx, c.ID)
	if len(imgs) != 1 || imgs[0].Title != "one.jpg" {
		t.Fatalf("images = %+v", imgs)
	}
}

func TestGallery_PagesPerCategory(t *testing.T) {
	svc, repos := newContent(t)
	ctx := context.Background()
	a, _ := svc.CreateCategory(ctx, app.CategoryInput{Name: "A"})
	b, _ := svc.CreateCategory(ctx, app.CategoryInput{Name: "B"})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		img := domain.GalleryImage{CategoryID: a.ID, Title: "a", Image: "gallery/a.jpg", UploadedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repos.Gallery.Create(ctx, &img); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	params := map[string]string{app.GalleryPageKey(a.ID): "2"}
	groups, err := svc.Gallery(ctx, func(k string) string { return params[k] })
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d", len(groups))
	}
	for _, g := range groups {
		switch g.Category.ID {
		case a.ID:
			if g.Images.Number != 2 || len(g.Images.Items) != 2 || g.PageKey != "page_"+itoa(a.ID) {
				t.Fatalf("category A page: %+v", g.Images)
			}
		case b.ID:
			if g.Images.Number != 1 || len(g.Images.Items) != 0 {
				t.Fatalf("category B page: %+v", g.Images)
			}
		}
	}
}
