package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"liok_hotels/internal/app"
)

const adminHome = "/admin/dashboard"

type loginValues struct {
	Username string `json:"username"`
	Next     string `json:"next,omitempty"`
}

func (h *Handlers) adminLogin(w http.ResponseWriter, r *http.Request) {
	if st := stateOf(r); st.sess.Authenticated() && st.sess.IsStaff && r.Method == http.MethodGet {
		redirect(w, r, adminHome)
		return
	}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "admin/login", formData{Values: loginValues{Next: r.URL.Query().Get("next")}})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	vals := loginValues{Username: r.PostForm.Get("username"), Next: r.PostForm.Get("next")}
	if vals.Next == "" {
		vals.Next = r.URL.Query().Get("next")
	}
	u, err := h.Auth.Authenticate(r.Context(), vals.Username, r.PostForm.Get("password"))
	switch {
	case errors.Is(err, app.ErrMissingCredentials):
		h.render(w, r, http.StatusUnprocessableEntity, "admin/login", formData{Values: vals},
			errorFlash("Both fields are required."))
		return
	case errors.Is(err, app.ErrInvalidCredentials):
		log.Info().Str("username", vals.Username).Msg("admin login rejected")
		h.render(w, r, http.StatusUnauthorized, "admin/login", formData{Values: vals},
			errorFlash("Invalid credentials or unauthorized access."))
		return
	case err != nil:
		log.Error().Err(err).Msg("admin login")
		h.render(w, r, http.StatusInternalServerError, "admin/login", formData{Values: vals},
			errorFlash(msgGenericFailure))
		return
	}

	h.login(w, r, u)
	h.flash(w, r, "success", "Welcome back, "+u.Username+"!")
	redirect(w, r, safeNext(vals.Next))
}

func (h *Handlers) adminLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r)
	h.flash(w, r, "success", "You have been logged out.")
	redirect(w, r, "/admin/login")
}

// safeNext only follows local back-office paths.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") && !strings.Contains(next, `\`) {
		return next
	}
	return adminHome
}
