package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"liok_hotels/internal/app"
)

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Build(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/dashboard", d)
}

func (h *Handlers) propertyChoices(r *http.Request) (any, error) {
	return h.Catalog.NavProperties(r.Context())
}

func (h *Handlers) categoryChoices(r *http.Request) (any, error) {
	return h.Content.AllCategories(r.Context())
}

// pathID is idParam for save callbacks, which only run after the record
// named by the path has been loaded.
func pathID(r *http.Request) int64 {
	id, _ := idParam(r)
	return id
}

func (h *Handlers) mountCatalog(r chi.Router) {
	const properties = "/admin/properties"
	r.Get("/properties", listPage(h, "admin/properties", h.Catalog.ListProperties))
	formRoute(r, "/properties/add", serveForm(h, form[app.PropertyInput]{
		view: "admin/property_form", redirect: properties,
		success: "Property created successfully!", invalid: "Please correct the errors below.",
		save: func(r *http.Request, in app.PropertyInput) error {
			_, err := h.Catalog.CreateProperty(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/properties/{id}/update", serveForm(h, form[app.PropertyInput]{
		view: "admin/property_form", redirect: properties,
		success: "Property updated successfully!", invalid: "Please correct the errors below.",
		initial: editing(h.Catalog.GetProperty, app.PropertyInputFrom),
		save: func(r *http.Request, in app.PropertyInput) error {
			_, err := h.Catalog.UpdateProperty(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/properties/{id}/delete", h.serveDelete(remover{
		view: "admin/property_confirm_delete", redirect: properties,
		success: "Property deleted successfully!",
		get:     getter(h.Catalog.GetProperty), del: h.Catalog.DeleteProperty,
	}))

	const rooms = "/admin/rooms"
	r.Get("/rooms", func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.Catalog.RoomGroups(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, http.StatusOK, "admin/rooms", groups)
	})
	formRoute(r, "/rooms/add", serveForm(h, form[app.RoomInput]{
		view: "admin/room_form", redirect: rooms,
		success: "Room Category added successfully!", invalid: "Error: Please check the form for missing fields.",
		choices: h.propertyChoices,
		save: func(r *http.Request, in app.RoomInput) error {
			_, err := h.Catalog.CreateRoom(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/rooms/{id}/update", serveForm(h, form[app.RoomInput]{
		view: "admin/room_form", redirect: rooms,
		success: "Room Category updated!",
		choices: h.propertyChoices,
		initial: editing(h.Catalog.GetRoom, app.RoomInputFrom),
		save: func(r *http.Request, in app.RoomInput) error {
			_, err := h.Catalog.UpdateRoom(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/rooms/{id}/delete", h.serveDelete(remover{
		view: "admin/room_confirm_delete", redirect: rooms,
		success: "Room Category deleted.",
		get:     getter(h.Catalog.GetRoom), del: h.Catalog.DeleteRoom,
	}))

	const nearby = "/admin/nearby"
	r.Get("/nearby", func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.Catalog.NearbyGroups(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, http.StatusOK, "admin/nearby", groups)
	})
	formRoute(r, "/nearby/add", serveForm(h, form[app.NearbyInput]{
		view: "admin/nearby_form", redirect: nearby,
		success: "Nearby location added successfully!",
		choices: h.propertyChoices,
		save: func(r *http.Request, in app.NearbyInput) error {
			_, err := h.Catalog.CreateNearby(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/nearby/{id}/update", serveForm(h, form[app.NearbyInput]{
		view: "admin/nearby_form", redirect: nearby,
		success: "Location updated successfully!",
		choices: h.propertyChoices,
		initial: editing(h.Catalog.GetNearby, app.NearbyInputFrom),
		save: func(r *http.Request, in app.NearbyInput) error {
			_, err := h.Catalog.UpdateNearby(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/nearby/{id}/delete", h.serveDelete(remover{
		view: "admin/nearby_confirm_delete", redirect: nearby,
		success: "Location removed.",
		get:     getter(h.Catalog.GetNearby), del: h.Catalog.DeleteNearby,
	}))
}

func (h *Handlers) mountContent(r chi.Router) {
	const blogs = "/admin/blogs"
	r.Get("/blogs", listPage(h, "admin/blogs", h.Content.ListBlogs))
	formRoute(r, "/blogs/add", serveForm(h, form[app.BlogInput]{
		view: "admin/blog_form", redirect: blogs,
		success: "Blog post created!",
		save: func(r *http.Request, in app.BlogInput) error {
			_, err := h.Content.CreateBlog(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/blogs/{id}/update", serveForm(h, form[app.BlogInput]{
		view: "admin/blog_form", redirect: blogs,
		success: "Blog updated!",
		initial: editing(h.Content.GetBlog, app.BlogInputFrom),
		save: func(r *http.Request, in app.BlogInput) error {
			_, err := h.Content.UpdateBlog(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/blogs/{id}/delete", h.serveDelete(remover{
		view: "admin/blog_confirm_delete", redirect: blogs,
		success: "Blog deleted.",
		get:     getter(h.Content.GetBlog), del: h.Content.DeleteBlog,
	}))

	const testimonials = "/admin/testimonials"
	r.Get("/testimonials", listPage(h, "admin/testimonials", h.Content.ListTestimonials))
	formRoute(r, "/testimonials/add", serveForm(h, form[app.TestimonialInput]{
		view: "admin/testimonial_form", redirect: testimonials,
		success: "Testimonial added successfully!",
		save: func(r *http.Request, in app.TestimonialInput) error {
			_, err := h.Content.CreateTestimonial(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/testimonials/{id}/update", serveForm(h, form[app.TestimonialInput]{
		view: "admin/testimonial_form", redirect: testimonials,
		success: "Testimonial updated successfully!",
		initial: editing(h.Content.GetTestimonial, app.TestimonialInputFrom),
		save: func(r *http.Request, in app.TestimonialInput) error {
			_, err := h.Content.UpdateTestimonial(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/testimonials/{id}/delete", h.serveDelete(remover{
		view: "admin/testimonial_confirm_delete", redirect: testimonials,
		success: "Testimonial deleted successfully!",
		get:     getter(h.Content.GetTestimonial), del: h.Content.DeleteTestimonial,
	}))

	const categories = "/admin/categories"
	r.Get("/categories", listPage(h, "admin/categories", h.Content.ListCategories))
	formRoute(r, "/categories/add", serveForm(h, form[app.CategoryInput]{
		view: "admin/category_form", redirect: categories,
		success: "Category created successfully!",
		save: func(r *http.Request, in app.CategoryInput) error {
			_, err := h.Content.CreateCategory(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/categories/{id}/update", serveForm(h, form[app.CategoryInput]{
		view: "admin/category_form", redirect: categories,
		success: "Category updated successfully!",
		initial: editing(h.Content.GetCategory, app.CategoryInputFrom),
		save: func(r *http.Request, in app.CategoryInput) error {
			_, err := h.Content.RenameCategory(r.Context(), pathID(r), in)
			return err
		},
	}))
	formRoute(r, "/categories/{id}/delete", h.serveDelete(remover{
		view: "admin/category_confirm_delete", redirect: categories,
		success: "Category deleted successfully!",
		get:     getter(h.Content.GetCategory), del: h.Content.DeleteCategory,
	}))

	const gallery = "/admin/gallery"
	r.Get("/gallery", func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.Content.Gallery(r.Context(), r.URL.Query().Get)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, http.StatusOK, "admin/gallery", groups)
	})
	formRoute(r, "/gallery/add", serveForm(h, form[app.GalleryUpload]{
		view: "admin/gallery_form", redirect: gallery,
		success: "Images uploaded successfully!",
		choices: h.categoryChoices,
		save: func(r *http.Request, in app.GalleryUpload) error {
			_, err := h.Content.AddImages(r.Context(), in)
			return err
		},
	}))
	formRoute(r, "/gallery/{id}/delete", h.serveDelete(remover{
		view: "admin/gallery_confirm_delete", redirect: gallery,
		success: "Image deleted successfully!",
		get:     getter(h.Content.GetImage), del: h.Content.DeleteImage,
	}))
}

func (h *Handlers) mountInquiries(r chi.Router) {
	const bookings = "/admin/bookings"
	r.Get("/bookings", listPage(h, "admin/bookings", h.Inquiries.ListBookings))
	r.Post("/bookings/{id}/status", h.bookingStatus)
	formRoute(r, "/bookings/{id}/delete", h.serveDelete(remover{
		view: "admin/booking_confirm_delete", redirect: bookings,
		success: "Booking record deleted.",
		get:     getter(h.Inquiries.GetBooking), del: h.Inquiries.DeleteBooking,
	}))

	r.Get("/contacts", listPage(h, "admin/contacts", h.Inquiries.ListContacts))
	formRoute(r, "/contacts/{id}/delete", h.serveDelete(remover{
		view: "admin/contact_confirm_delete", redirect: "/admin/contacts",
		success: "Contact message deleted.",
		get:     getter(h.Inquiries.GetContact), del: h.Inquiries.DeleteContact,
	}))
}

func (h *Handlers) bookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	_, err = h.Inquiries.SetBookingStatus(r.Context(), id, r.PostForm.Get("status"))
	if ve, ok := app.AsValidation(err); ok {
		h.flash(w, r, "error", ve.Fields["status"])
		redirect(w, r, "/admin/bookings")
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.flash(w, r, "success", "Booking status updated.")
	redirect(w, r, "/admin/bookings")
}
