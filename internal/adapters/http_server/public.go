package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
)

const homeBlogs = 3

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	var (
		blogs        []domain.Blog
		testimonials []domain.Testimonial
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		blogs, err = h.Content.RecentBlogs(ctx, homeBlogs)
		return err
	})
	g.Go(func() (err error) {
		testimonials, err = h.Content.AllTestimonials(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "home", map[string]any{
		"recent_blogs": blogs,
		"testimonials": testimonials,
	})
}

func (h *Handlers) propertyList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.ListProperties(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "properties", p)
}

func (h *Handlers) propertyDetail(w http.ResponseWriter, r *http.Request) {
	d, err := h.Catalog.PropertyDetail(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "property_detail", d)
}

func (h *Handlers) propertyRooms(w http.ResponseWriter, r *http.Request) {
	d, err := h.Catalog.PropertyRooms(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "property_rooms", d)
}

func (h *Handlers) blogList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Content.ListBlogs(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "blogs", p)
}

func (h *Handlers) blogDetail(w http.ResponseWriter, r *http.Request) {
	b, err := h.Content.BlogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	recent, err := h.Content.RecentBlogs(r.Context(), homeBlogs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "blog_detail", map[string]any{"blog": b, "recent_blogs": recent})
}

func (h *Handlers) gallery(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Content.Gallery(r.Context(), r.URL.Query().Get)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "gallery", groups)
}

func (h *Handlers) testimonials(w http.ResponseWriter, r *http.Request) {
	p, err := h.Content.ListTestimonials(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPublic(w, r, http.StatusOK, "testimonials", p)
}

func (h *Handlers) contact() http.HandlerFunc {
	return serveForm(h, form[app.ContactInput]{
		view: "contact", redirect: "/contact", public: true,
		success: "Thank you for contacting us! We'll get back to you soon.",
		save: func(r *http.Request, in app.ContactInput) error {
			_, err := h.Inquiries.SubmitContact(r.Context(), in)
			return err
		},
	})
}

func (h *Handlers) booking() http.HandlerFunc {
	return serveForm(h, form[app.BookingInput]{
		view: "booking", redirect: "/booking", public: true,
		success: "Thank you! Your booking inquiry has been submitted. We will contact you shortly.",
		// ?property=<id> preselects the property on the blank form.
		initial: func(r *http.Request) (app.BookingInput, any, error) {
			return app.BookingInput{Property: r.URL.Query().Get("property")}, nil, nil
		},
		choices: h.propertyChoices,
		save: func(r *http.Request, in app.BookingInput) error {
			_, err := h.Inquiries.SubmitBooking(r.Context(), in)
			return err
		},
	})
}
