package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"liok_hotels/internal/domain"
)

var maxUploadMemory int64 = 32 << 20

var (
	uploadType  = reflect.TypeOf((*domain.Upload)(nil))
	uploadsType = reflect.TypeOf([]*domain.Upload(nil))
)

// bindForm fills the `form`-tagged fields of dst (a struct pointer) from the
// request body. String fields take the first submitted value, upload fields
// take the named file parts. Absent fields stay empty.
func bindForm(r *http.Request, dst any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("bindForm: dst must be a struct pointer")
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		switch {
		case f.Type.Kind() == reflect.String:
			if vals := r.PostForm[name]; len(vals) > 0 {
				v.Field(i).SetString(vals[0])
			}
		case f.Type == uploadType:
			if files := fileParts(r, name); len(files) > 0 {
				v.Field(i).Set(reflect.ValueOf(files[0]))
			}
		case f.Type == uploadsType:
			v.Field(i).Set(reflect.ValueOf(fileParts(r, name)))
		}
	}
	return nil
}

// fileParts skips empty file inputs, which browsers submit with no name.
func fileParts(r *http.Request, name string) []*domain.Upload {
	if r.MultipartForm == nil {
		return nil
	}
	var out []*domain.Upload
	for _, fh := range r.MultipartForm.File[name] {
		if fh.Filename == "" {
			continue
		}
		out = append(out, &domain.Upload{Filename: fh.Filename, Open: opener(fh)})
	}
	return out
}

func opener(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) { return fh.Open() }
}
