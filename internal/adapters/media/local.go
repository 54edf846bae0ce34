// Package media stores uploaded files on the local filesystem under a root
// directory, returning paths relative to it.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"liok_hotels/internal/adapters/observability"
	"liok_hotels/internal/domain"
)

const maxNameAttempts = 20

var unsafeChars = regexp.MustCompile(`[^-\w.]`)

type Local struct {
	root   string
	suffix func() string
}

func NewLocal(root string) *Local {
	return &Local{root: root, suffix: randomSuffix}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

// CleanName reduces an uploaded file name to a safe base name.
func CleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(path.Base(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}

func (l *Local) Save(ctx context.Context, folder string, u *domain.Upload) (string, error) {
	if u == nil {
		return "", errors.New("media: nil upload")
	}
	n, rel, err := l.save(ctx, folder, u)
	observability.ObserveUpload(folder, n, err)
	return rel, err
}

func (l *Local) save(ctx context.Context, folder string, u *domain.Upload) (int64, string, error) {
	dir := filepath.Join(l.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, "", err
	}
	src, err := u.Open()
	if err != nil {
		return 0, "", err
	}
	defer src.Close()

	name := CleanName(u.Filename)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, "", err
		}
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			name = stem + "_" + l.suffix() + ext
			continue
		}
		if err != nil {
			return 0, "", err
		}
		n, err := io.Copy(f, src)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(f.Name())
			return 0, "", err
		}
		return n, path.Join(folder, name), nil
	}
	return 0, "", fmt.Errorf("media: no free name for %q in %s", u.Filename, folder)
}
