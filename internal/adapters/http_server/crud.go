package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
)

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// listPage serves a paginated admin listing driven by ?page=.
func listPage[T any](h *Handlers, view string, list func(context.Context, string) (app.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := list(r.Context(), r.URL.Query().Get("page"))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, http.StatusOK, view, p)
	}
}

// form describes one create or update page.
type form[In any] struct {
	view     string
	redirect string
	success  string
	invalid  string // extra notice shown next to field errors
	public   bool

	// initial returns the values shown on GET and the record being edited.
	// A not-found error here answers 404 for GET and POST alike.
	initial func(r *http.Request) (In, any, error)
	choices func(r *http.Request) (any, error)
	save    func(r *http.Request, in In) error
}

func serveForm[In any](h *Handlers, f form[In]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			in  In
			obj any
			err error
		)
		if f.initial != nil {
			if in, obj, err = f.initial(r); err != nil {
				h.fail(w, r, err)
				return
			}
		}
		if r.Method != http.MethodPost {
			showForm(h, w, r, f, http.StatusOK, formData{Values: in, Object: obj})
			return
		}

		var posted In
		err = bindForm(r, &posted)
		// r is a context copy, so the server never sees this form to clean it up.
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		err = f.save(r, posted)
		if err == nil {
			h.flash(w, r, "success", f.success)
			redirect(w, r, f.redirect)
			return
		}

		data := formData{Values: posted, Object: obj}
		if ve, ok := app.AsValidation(err); ok {
			data.Errors = ve.Fields
			var notes []domain.Flash
			if f.invalid != "" {
				notes = append(notes, errorFlash(f.invalid))
			}
			showForm(h, w, r, f, http.StatusUnprocessableEntity, data, notes...)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			h.fail(w, r, err)
			return
		}
		if !errors.Is(err, app.ErrSubmissionFailed) {
			log.Error().Err(err).Str("view", f.view).Msg("form save failed")
		}
		showForm(h, w, r, f, http.StatusInternalServerError, data, errorFlash(msgGenericFailure))
	}
}

func showForm[In any](h *Handlers, w http.ResponseWriter, r *http.Request, f form[In], status int, data formData, notes ...domain.Flash) {
	if f.choices != nil {
		c, err := f.choices(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		data.Choices = c
	}
	if f.public {
		h.renderPublic(w, r, status, f.view, data, notes...)
		return
	}
	h.render(w, r, status, f.view, data, notes...)
}

// remover describes a delete page: GET asks for confirmation, POST deletes.
type remover struct {
	view     string
	redirect string
	success  string
	get      func(ctx context.Context, id int64) (any, error)
	del      func(ctx context.Context, id int64) error
}

func (h *Handlers) serveDelete(d remover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		obj, err := d.get(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if r.Method != http.MethodPost {
			h.render(w, r, http.StatusOK, d.view, map[string]any{"object": obj})
			return
		}
		if err := d.del(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		if d.success != "" {
			h.flash(w, r, "success", d.success)
		}
		redirect(w, r, d.redirect)
	}
}

// getter adapts a typed lookup to remover.get.
func getter[T any](get func(context.Context, int64) (T, error)) func(context.Context, int64) (any, error) {
	return func(ctx context.Context, id int64) (any, error) { return get(ctx, id) }
}

// editing loads the record named by {id} and turns it into form values.
func editing[T, In any](get func(context.Context, int64) (T, error), toInput func(T) In) func(*http.Request) (In, any, error) {
	return func(r *http.Request) (In, any, error) {
		var zero In
		id, err := idParam(r)
		if err != nil {
			return zero, nil, err
		}
		v, err := get(r.Context(), id)
		if err != nil {
			return zero, nil, err
		}
		return toInput(v), v, nil
	}
}
