package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
)

const sessionCookie = "sessionid"

type ctxKey int

const (
	sessionKey ctxKey = iota
	staffKey
)

// sessionState is the request's view of its session. found is false until
// the session exists in the store.
type sessionState struct {
	sess  domain.Session
	found bool
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func stateOf(r *http.Request) *sessionState {
	if st, ok := r.Context().Value(sessionKey).(*sessionState); ok {
		return st
	}
	return &sessionState{}
}

// LoadSession loads the session named by the cookie, if any. Anonymous visitors
// only get a session once something needs storing.
func (h *Handlers) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := &sessionState{}
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sess, err := h.Sessions.Get(r.Context(), c.Value)
			switch {
			case err == nil:
				st.sess, st.found = sess, true
			case !errors.Is(err, domain.ErrNotFound):
				log.Warn().Err(err).Msg("session load failed")
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, st)))
	})
}

func (h *Handlers) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.Cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request, st *sessionState) {
	if !st.found {
		st.sess.ID = uuid.NewString()
		st.sess.CreatedAt = time.Now().UTC()
	}
	if err := h.Sessions.Save(r.Context(), st.sess); err != nil {
		log.Error().Err(err).Msg("session save failed")
		return
	}
	if !st.found {
		st.found = true
		h.setCookie(w, st.sess.ID)
	}
}

func (h *Handlers) flash(w http.ResponseWriter, r *http.Request, level, text string) {
	st := stateOf(r)
	st.sess.Flashes = append(st.sess.Flashes, domain.Flash{Level: level, Text: text})
	h.saveSession(w, r, st)
}

// takeFlashes consumes the pending notices.
func (h *Handlers) takeFlashes(w http.ResponseWriter, r *http.Request) []domain.Flash {
	st := stateOf(r)
	if len(st.sess.Flashes) == 0 {
		return nil
	}
	out := st.sess.Flashes
	st.sess.Flashes = nil
	h.saveSession(w, r, st)
	return out
}

// login binds the user to a fresh session id; pending notices carry over.
func (h *Handlers) login(w http.ResponseWriter, r *http.Request, u domain.User) {
	st := stateOf(r)
	if st.found {
		if err := h.Sessions.Delete(r.Context(), st.sess.ID); err != nil {
			log.Warn().Err(err).Msg("old session delete failed")
		}
	}
	st.sess = domain.Session{
		UserID: u.ID, Username: u.Username, IsStaff: u.IsStaff,
		Flashes: st.sess.Flashes,
	}
	st.found = false
	h.saveSession(w, r, st)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	st := stateOf(r)
	if st.found {
		if err := h.Sessions.Delete(r.Context(), st.sess.ID); err != nil {
			log.Warn().Err(err).Msg("session delete failed")
		}
	}
	*st = sessionState{}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

// RequireStaff lets a request through only for an active staff user, re-read
// from the credential store every time.
func (h *Handlers) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := stateOf(r)
		if !st.sess.Authenticated() {
			h.denyAdmin(w, r)
			return
		}
		u, err := h.Auth.StaffUser(r.Context(), st.sess.UserID)
		if errors.Is(err, app.ErrInvalidCredentials) {
			h.logout(w, r)
			h.denyAdmin(w, r)
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("staff check failed")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), staffKey, u)))
	})
}

func (h *Handlers) denyAdmin(w http.ResponseWriter, r *http.Request) {
	h.flash(w, r, "error", "Please log in with a staff account to continue.")
	target := "/admin/login"
	if r.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func staffUser(r *http.Request) (domain.User, bool) {
	u, ok := r.Context().Value(staffKey).(domain.User)
	return u, ok
}
