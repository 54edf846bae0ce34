package shared_test

import (
	"testing"
	"time"

	"liok_hotels/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("MEDIA_URL", "")
	c := shared.Load()
	if c.Storage != "mysql" || c.HTTPAddr != ":8080" || c.MediaURL != "/media/" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.SessionTTL != 336*time.Hour {
		t.Fatalf("session ttl = %v", c.SessionTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE", "Memory")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("MEDIA_URL", "/uploads")
	t.Setenv("BCRYPT_COST", "nope")
	t.Setenv("REDIS_DB", "3")
	c := shared.Load()
	if c.Storage != "memory" || !c.SessionSecure || c.MediaURL != "/uploads/" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.BcryptCost != 10 || c.RedisDB != 3 {
		t.Fatalf("integer parsing: cost=%d db=%d", c.BcryptCost, c.RedisDB)
	}
}

func TestLoad_StaffAccount(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("LIOK_STAFF_USERNAME", "admin")
	t.Setenv("LIOK_STAFF_PASSWORD", "s3cret")
	c := shared.Load()
	if c.StaffUsername != "admin" || c.StaffPassword != "s3cret" {
		t.Fatalf("staff account not loaded: %q / %q", c.StaffUsername, c.StaffPassword)
	}
}
