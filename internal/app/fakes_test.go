package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"liok_hotels/internal/domain"
)

// ---- fakes ----

type fakeMedia struct {
	saved  []string
	failOn string // filename whose save fails
}

var errDiskFull = errors.New("disk full")

func (m *fakeMedia) Save(ctx context.Context, folder string, u *domain.Upload) (string, error) {
	if m.failOn != "" && u.Filename == m.failOn {
		return "", errDiskFull
	}
	p := folder + "/" + u.Filename
	m.saved = append(m.saved, p)
	return p, nil
}

type fakeCache struct {
	store map[string][]byte
	hits  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func upload(name string) *domain.Upload {
	return &domain.Upload{
		Filename: name,
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("img")), nil },
	}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
