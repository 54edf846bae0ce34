package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"liok_hotels/internal/domain"
)

// ContentService manages the editorial records: blog posts, testimonials and
// the photo gallery.
type ContentService struct {
	blogs        domain.BlogRepository
	testimonials domain.TestimonialRepository
	categories   domain.CategoryRepository
	gallery      domain.GalleryRepository
	media        domain.MediaStore
	now          func() time.Time
}

func NewContentService(r domain.Repositories, m domain.MediaStore) *ContentService {
	return &ContentService{
		blogs: r.Blogs, testimonials: r.Testimonials, categories: r.Categories,
		gallery: r.Gallery, media: m, now: utcNow,
	}
}

// ---- blogs ----

type BlogInput struct {
	Title       string         `form:"title" json:"title" validate:"required,max=200"`
	Description string         `form:"description" json:"description" validate:"required"`
	Image       *domain.Upload `form:"image" json:"-"`
}

func BlogInputFrom(b domain.Blog) BlogInput {
	return BlogInput{Title: b.Title, Description: b.Description}
}

func (s *ContentService) ListBlogs(ctx context.Context, page string) (Page[domain.Blog], error) {
	rows, err := s.blogs.List(ctx)
	if err != nil {
		return Page[domain.Blog]{}, err
	}
	return Paginate(rows, page, BlogsPerPage), nil
}

// RecentBlogs returns up to n posts, newest first.
func (s *ContentService) RecentBlogs(ctx context.Context, n int) ([]domain.Blog, error) {
	rows, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (s *ContentService) GetBlog(ctx context.Context, id int64) (domain.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *ContentService) BlogBySlug(ctx context.Context, slug string) (domain.Blog, error) {
	return s.blogs.GetBySlug(ctx, slug)
}

func (s *ContentService) CreateBlog(ctx context.Context, in BlogInput) (domain.Blog, error) {
	trim(&in.Title, &in.Description)
	fe := check(&in)
	if in.Image == nil {
		fe.add("image", msgRequired)
	}
	base := Slugify(in.Title)
	if in.Title != "" && base == "" {
		fe.add("title", "Title must contain at least one letter or digit.")
	}
	if err := invalid(fe); err != nil {
		return domain.Blog{}, err
	}

	img, err := s.media.Save(ctx, FolderBlogs, in.Image)
	if err != nil {
		return domain.Blog{}, err
	}
	b := domain.Blog{Title: in.Title, Description: in.Description, Image: img, CreatedAt: s.now()}

	// A concurrent insert can still win the slug between the check and the
	// write; retry with the next free suffix.
	for attempt := 0; attempt < 3; attempt++ {
		b.Slug, err = s.uniqueBlogSlug(ctx, base)
		if err != nil {
			return domain.Blog{}, err
		}
		err = s.blogs.Create(ctx, &b)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return domain.Blog{}, err
	}
	return b, nil
}

// uniqueBlogSlug returns base, or base-N for the smallest free N >= 1.
func (s *ContentService) uniqueBlogSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for n := 1; ; n++ {
		taken, err := s.blogs.SlugTaken(ctx, slug, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// UpdateBlog changes title, body and optionally the image; the slug stays.
func (s *ContentService) UpdateBlog(ctx context.Context, id int64, in BlogInput) (domain.Blog, error) {
	b, err := s.blogs.Get(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}
	trim(&in.Title, &in.Description)
	if err := invalid(check(&in)); err != nil {
		return domain.Blog{}, err
	}
	b.Title = in.Title
	b.Description = in.Description
	if in.Image != nil {
		if b.Image, err = s.media.Save(ctx, FolderBlogs, in.Image); err != nil {
			return domain.Blog{}, err
		}
	}
	if err := s.blogs.Update(ctx, &b); err != nil {
		return domain.Blog{}, err
	}
	return b, nil
}

func (s *ContentService) DeleteBlog(ctx context.Context, id int64) error {
	if _, err := s.blogs.Get(ctx, id); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, id)
}

// ---- testimonials ----

type TestimonialInput struct {
	Name   string         `form:"name" json:"name" validate:"required,max=100"`
	Review string         `form:"review" json:"review" validate:"required"`
	Image  *domain.Upload `form:"image" json:"-"`
}

func TestimonialInputFrom(t domain.Testimonial) TestimonialInput {
	return TestimonialInput{Name: t.Name, Review: t.Review}
}

func (s *ContentService) ListTestimonials(ctx context.Context, page string) (Page[domain.Testimonial], error) {
	rows, err := s.testimonials.List(ctx)
	if err != nil {
		return Page[domain.Testimonial]{}, err
	}
	return Paginate(rows, page, TestimonialsPerPage), nil
}

func (s *ContentService) AllTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return s.testimonials.List(ctx)
}

func (s *ContentService) GetTestimonial(ctx context.Context, id int64) (domain.Testimonial, error) {
	return s.testimonials.Get(ctx, id)
}

func (s *ContentService) CreateTestimonial(ctx context.Context, in TestimonialInput) (domain.Testimonial, error) {
	trim(&in.Name, &in.Review)
	if err := invalid(check(&in)); err != nil {
		return domain.Testimonial{}, err
	}
	now := s.now()
	t := domain.Testimonial{Name: in.Name, Review: in.Review, CreatedAt: now, UpdatedAt: now}
	if in.Image != nil {
		img, err := s.media.Save(ctx, FolderTestimonials, in.Image)
		if err != nil {
			return domain.Testimonial{}, err
		}
		t.Image = img
	}
	if err := s.testimonials.Create(ctx, &t); err != nil {
		return domain.Testimonial{}, err
	}
	return t, nil
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, id int64, in TestimonialInput) (domain.Testimonial, error) {
	t, err := s.testimonials.Get(ctx, id)
	if err != nil {
		return domain.Testimonial{}, err
	}
	trim(&in.Name, &in.Review)
	if err := invalid(check(&in)); err != nil {
		return domain.Testimonial{}, err
	}
	t.Name = in.Name
	t.Review = in.Review
	t.UpdatedAt = s.now()
	if in.Image != nil {
		if t.Image, err = s.media.Save(ctx, FolderTestimonials, in.Image); err != nil {
			return domain.Testimonial{}, err
		}
	}
	if err := s.testimonials.Update(ctx, &t); err != nil {
		return domain.Testimonial{}, err
	}
	return t, nil
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, id int64) error {
	if _, err := s.testimonials.Get(ctx, id); err != nil {
		return err
	}
	return s.testimonials.Delete(ctx, id)
}

// ---- categories ----

type CategoryInput struct {
	Name string `form:"name" json:"name" validate:"required,max=100"`
}

func CategoryInputFrom(c domain.Category) CategoryInput {
	return CategoryInput{Name: c.Name}
}

const msgCategoryTaken = "Category with this Name already exists."

func (s *ContentService) ListCategories(ctx context.Context, page string) (Page[domain.Category], error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return Page[domain.Category]{}, err
	}
	return Paginate(rows, page, CategoriesPerPage), nil
}

func (s *ContentService) AllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *ContentService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *ContentService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	trim(&in.Name)
	if err := invalid(check(&in)); err != nil {
		return domain.Category{}, err
	}
	c := domain.Category{Name: in.Name, CreatedAt: s.now()}
	if err := s.categories.Create(ctx, &c); err != nil {
		return domain.Category{}, categoryConflict(err)
	}
	return c, nil
}

// RenameCategory is the only update a category supports.
func (s *ContentService) RenameCategory(ctx context.Context, id int64, in CategoryInput) (domain.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	trim(&in.Name)
	if err := invalid(check(&in)); err != nil {
		return domain.Category{}, err
	}
	c.Name = in.Name
	if err := s.categories.Update(ctx, &c); err != nil {
		return domain.Category{}, categoryConflict(err)
	}
	return c, nil
}

func categoryConflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return &ValidationError{Fields: FieldErrors{"name": msgCategoryTaken}}
	}
	return err
}

func (s *ContentService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// ---- gallery ----

// GalleryUpload adds several images to one category at once.
type GalleryUpload struct {
	Category string           `form:"category" json:"category" validate:"required"`
	Images   []*domain.Upload `form:"images" json:"-"`
}

// CategoryImages is one category with a page of its images.
type CategoryImages struct {
	Category domain.Category           `json:"category"`
	Images   Page[domain.GalleryImage] `json:"images"`
	PageKey  string                    `json:"page_param"`
}

// GalleryPageKey is the query parameter carrying the page of one category.
func GalleryPageKey(categoryID int64) string {
	return "page_" + strconv.FormatInt(categoryID, 10)
}

// Gallery pages each category independently; pageOf returns the raw page
// parameter for a key such as "page_3".
func (s *ContentService) Gallery(ctx context.Context, pageOf func(key string) string) ([]CategoryImages, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	images, err := s.gallery.List(ctx)
	if err != nil {
		return nil, err
	}
	byCat := map[int64][]domain.GalleryImage{}
	for _, img := range images {
		byCat[img.CategoryID] = append(byCat[img.CategoryID], img)
	}
	out := make([]CategoryImages, 0, len(cats))
	for _, c := range cats {
		key := GalleryPageKey(c.ID)
		out = append(out, CategoryImages{
			Category: c,
			Images:   Paginate(byCat[c.ID], pageOf(key), GalleryPerPage),
			PageKey:  key,
		})
	}
	return out, nil
}

func (s *ContentService) GetImage(ctx context.Context, id int64) (domain.GalleryImage, error) {
	return s.gallery.Get(ctx, id)
}

// AddImages stores every upload under the chosen category, titled with the
// uploaded file name. It returns how many images were stored.
func (s *ContentService) AddImages(ctx context.Context, in GalleryUpload) (int, error) {
	trim(&in.Category)
	fe := check(&in)
	var catID int64
	if in.Category != "" {
		id, err := strconv.ParseInt(in.Category, 10, 64)
		if err == nil {
			_, err = s.categories.Get(ctx, id)
		}
		switch {
		case err == nil:
			catID = id
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, strconv.ErrSyntax), errors.Is(err, strconv.ErrRange):
			fe.add("category", msgChoice)
		default:
			return 0, err
		}
	}
	if len(in.Images) == 0 {
		fe.add("images", "Choose at least one image.")
	}
	if err := invalid(fe); err != nil {
		return 0, err
	}

	// Images saved before a failure stay; n reports how many.
	for i, u := range in.Images {
		path, err := s.media.Save(ctx, FolderGallery, u)
		if err != nil {
			return i, err
		}
		img := domain.GalleryImage{
			CategoryID: catID,
			Title:      galleryTitle(u.Filename),
			Image:      path,
			UploadedAt: s.now(),
		}
		if err := s.gallery.Create(ctx, &img); err != nil {
			return i, err
		}
	}
	return len(in.Images), nil
}

func galleryTitle(filename string) string {
	t := filepath.Base(filename)
	if r := []rune(t); len(r) > 150 {
		t = string(r[:150])
	}
	return t
}

func (s *ContentService) DeleteImage(ctx context.Context, id int64) error {
	if _, err := s.gallery.Get(ctx, id); err != nil {
		return err
	}
	return s.gallery.Delete(ctx, id)
}
