//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"golang.org/x/crypto/bcrypt"

	httpserver "liok_hotels/internal/adapters/http_server"
	"liok_hotels/internal/adapters/media"
	redisad "liok_hotels/internal/adapters/redis"
	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	mysqlrepo "liok_hotels/internal/storage/mysql"
)

// ---------- helpers ----------
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=liok"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/liok?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

type page struct {
	View     string          `json:"view"`
	Messages []domain.Flash  `json:"messages"`
	Data     json.RawMessage `json:"data"`
}

// ---------- the test ----------
func TestHTTP_EndToEnd_BookingReachesDashboard(t *testing.T) {
	db := startMySQL(t)
	repos := mysqlrepo.New(db).Repositories()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rc := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })

	store := media.NewLocal(t.TempDir())
	auth := app.NewAuthService(repos.Users, bcrypt.MinCost)
	if _, _, err := auth.CreateStaff(ctx, "staff", "s3cret"); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	prop := domain.Property{
		Name: "Liok Resort", Slug: "liok-resort", Overview: "o", Address: "a",
		WhatsAppNumber: "1", CoverImage: "properties/covers/c.jpg",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repos.Properties.Create(ctx, &prop); err != nil {
		t.Fatalf("seed property: %v", err)
	}

	h := &httpserver.Handlers{
		Catalog:   app.NewCatalogService(repos, store, redisad.NewCache(rc), time.Minute),
		Content:   app.NewContentService(repos, store),
		Inquiries: app.NewInquiryService(repos, nil),
		Dashboard: app.NewDashboardService(repos),
		Auth:      auth,
		Sessions:  redisad.NewSessionStore(rc, time.Hour),
		Cookie:    httpserver.CookieConfig{TTL: time.Hour},
		MediaURL:  "/media/",
	}
	srv := httpserver.New()
	srv.MountHandlers(h)
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	post := func(path string, form url.Values) *http.Response {
		res, err := client.Post(ts.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		res.Body.Close()
		return res
	}
	get := func(path string) (int, page) {
		res, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer res.Body.Close()
		var p page
		_ = json.NewDecoder(res.Body).Decode(&p)
		return res.StatusCode, p
	}

	// Public navigation goes through the Redis cache.
	if status, _ := get("/"); status != http.StatusOK {
		t.Fatalf("home status %d", status)
	}
	if !mr.Exists("cache:nav:properties") {
		t.Fatalf("navigation not cached")
	}

	res := post("/booking", url.Values{
		"first_name": {"Asha"}, "last_name": {"Rao"}, "phone": {"+911234567890"},
		"property": {strconv.FormatInt(prop.ID, 10)}, "room_category": {"Deluxe"},
		"check_in": {"2025-06-01"}, "check_out": {"2025-06-05"},
	})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("booking status %d", res.StatusCode)
	}

	if res := post("/admin/login", url.Values{"username": {"staff"}, "password": {"s3cret"}}); res.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status %d", res.StatusCode)
	}
	status, p := get("/admin/dashboard")
	if status != http.StatusOK {
		t.Fatalf("dashboard status %d", status)
	}
	var d app.Dashboard
	if err := json.Unmarshal(p.Data, &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Stats.TotalBookings != 1 || d.Stats.PendingInquiries != 1 || d.Stats.TotalProperties != 1 {
		t.Fatalf("unexpected stats: %+v", d.Stats)
	}
	if len(d.RecentBookings) != 1 || d.RecentBookings[0].PropertyName != "Liok Resort" {
		t.Fatalf("recent bookings: %+v", d.RecentBookings)
	}
	if len(d.StatusLabels) != 1 || d.StatusLabels[0] != "Pending" {
		t.Fatalf("status labels: %v", d.StatusLabels)
	}

	// Deleting the property takes its inquiries with it.
	del := "/admin/properties/" + strconv.FormatInt(prop.ID, 10) + "/delete"
	if res := post(del, nil); res.StatusCode != http.StatusSeeOther {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	if n, _ := repos.Bookings.Count(ctx); n != 0 {
		t.Fatalf("bookings left after cascade: %d", n)
	}
	if mr.Exists("cache:nav:properties") {
		t.Fatalf("navigation cache not invalidated")
	}
}
