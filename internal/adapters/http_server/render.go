package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// viewDoc is what every page renders to.
type viewDoc struct {
	View          string            `json:"view"`
	Messages      []domain.Flash    `json:"messages"`
	AllProperties []domain.Property `json:"all_properties,omitempty"`
	MediaURL      string            `json:"media_url"`
	User          string            `json:"user,omitempty"`
	Data          any               `json:"data"`
}

// formData is the payload of every form view.
type formData struct {
	Values  any             `json:"values"`
	Errors  app.FieldErrors `json:"errors,omitempty"`
	Object  any             `json:"object,omitempty"`
	Choices any             `json:"choices,omitempty"`
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal view")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// render writes a view with the pending flash notices plus extra ones.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, view string, data any, extra ...domain.Flash) {
	doc := viewDoc{View: view, Messages: h.messages(w, r, extra), MediaURL: h.MediaURL, Data: data}
	if u, ok := staffUser(r); ok {
		doc.User = u.Username
	}
	h.write(w, r, status, doc)
}

// renderPublic is render with the site navigation attached.
func (h *Handlers) renderPublic(w http.ResponseWriter, r *http.Request, status int, view string, data any, extra ...domain.Flash) {
	nav, err := h.Catalog.NavProperties(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("navigation properties")
	}
	h.write(w, r, status, viewDoc{View: view, Messages: h.messages(w, r, extra), AllProperties: nav, MediaURL: h.MediaURL, Data: data})
}

func (h *Handlers) messages(w http.ResponseWriter, r *http.Request, extra []domain.Flash) []domain.Flash {
	msgs := append(h.takeFlashes(w, r), extra...)
	if msgs == nil {
		msgs = []domain.Flash{}
	}
	return msgs
}

func (h *Handlers) write(w http.ResponseWriter, r *http.Request, status int, doc viewDoc) {
	etag, body := calcETagAndBody(doc)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	// Only plain page reads are cacheable; anything carrying notices is one-shot.
	cacheable := r.Method == http.MethodGet && status == http.StatusOK && len(doc.Messages) == 0
	if cacheable {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "private, no-cache")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("view", doc.View).Msg("failed to write view")
	}
}

func errorFlash(text string) domain.Flash { return domain.Flash{Level: "error", Text: text} }

const msgGenericFailure = "Something went wrong. Please try again."

// fail answers an error no form can absorb.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no such record")
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
