package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
)

type Handlers struct {
	Catalog   *app.CatalogService
	Content   *app.ContentService
	Inquiries *app.InquiryService
	Dashboard *app.DashboardService
	Auth      *app.AuthService

	Sessions domain.SessionStore
	Cookie   CookieConfig
	MediaURL string
}

// formRoute answers GET and POST on one pattern.
func formRoute(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Post(pattern, h)
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(h.LoadSession)

		r.Get("/", h.home)
		r.Get("/properties", h.propertyList)
		r.Get("/properties/{slug}", h.propertyDetail)
		r.Get("/properties/{slug}/rooms", h.propertyRooms)
		r.Get("/blogs", h.blogList)
		r.Get("/blogs/{slug}", h.blogDetail)
		r.Get("/gallery", h.gallery)
		r.Get("/testimonials", h.testimonials)
		formRoute(r, "/contact", h.contact())
		formRoute(r, "/booking", h.booking())

		r.Route("/admin", func(r chi.Router) {
			formRoute(r, "/login", h.adminLogin)
			r.Post("/logout", h.adminLogout)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireStaff)
				r.Get("/", h.dashboard)
				r.Get("/dashboard", h.dashboard)
				h.mountCatalog(r)
				h.mountContent(r)
				h.mountInquiries(r)
			})
		})
	})
}
